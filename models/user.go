package models

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"unique;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `json:"name"`
	Phone        string         `json:"phone"`
	Role         Role           `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	Addresses    []Address      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses"`
	Wishlist     []WishlistItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wishlist"`
	Orders       []Order        `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Address is a user-owned shipping address. At most one address per user
// carries IsDefault = true; the store layer flips the flag for all of a
// user's rows in a single statement.
type Address struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"index;not null" json:"user_id"`
	FullName   string    `json:"full_name"`
	Line1      string    `gorm:"not null" json:"line1"`
	Line2      string    `json:"line2"`
	City       string    `gorm:"not null" json:"city"`
	State      string    `json:"state"`
	Country    string    `gorm:"not null" json:"country"`
	PostalCode string    `gorm:"not null" json:"postal_code"`
	Phone      string    `json:"phone"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"index:idx_wishlist_user_product,unique;not null" json:"user_id"`
	ProductID uint      `gorm:"index:idx_wishlist_user_product,unique;not null" json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}
