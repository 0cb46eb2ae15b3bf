package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/OmNinave/E-commerce-sub001/models"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// Products is the catalog surface the checkout pipeline reads from.
type Products interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	// DecrementStock subtracts qty from the product's stock in a single
	// conditional statement and reports whether the decrement applied.
	// It never drives stock below zero.
	DecrementStock(ctx context.Context, id uint, qty int) (bool, error)
}

// Addresses resolves a user's own addresses only.
type Addresses interface {
	GetUserAddress(ctx context.Context, userID string, id uint) (*models.Address, error)
}

// GiftCards looks up and redeems stored-value codes.
type GiftCards interface {
	GetGiftCard(ctx context.Context, code string) (*models.GiftCard, error)
	// RedeemGiftCard subtracts amount from the card's balance in a single
	// conditional statement and reports whether the redemption applied.
	RedeemGiftCard(ctx context.Context, code string, amount float64) (bool, error)
}

// Orders persists orders and applies compare-and-swap status moves.
type Orders interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	GetOrderByProviderRef(ctx context.Context, providerOrderID string) (*models.Order, error)
	// UpdateOrderStatus moves the order from one status to another and
	// reports whether the row was in the expected from-status.
	UpdateOrderStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error)
}

// Store is the gorm-backed implementation of every repository interface.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migrations in main.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Tx runs fn against a transaction-scoped Store. Everything fn does through
// the scoped store commits or rolls back as one unit.
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
