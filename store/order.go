package store

import (
	"context"

	"github.com/OmNinave/E-commerce-sub001/models"
)

func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *Store) GetOrderByProviderRef(ctx context.Context, providerOrderID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").
		Where("provider_order_id = ?", providerOrderID).
		First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *Store) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus is a compare-and-swap on the status column: the update
// applies only while the row still holds the expected from-status, which is
// what makes payment confirmation idempotent.
func (s *Store) UpdateOrderStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetOrderPayment records provider references and payment status alongside
// a status move; used by payment confirmation after the CAS succeeds.
func (s *Store) SetOrderPayment(ctx context.Context, id uint, paymentID string, status models.PaymentStatus) error {
	return s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"provider_payment_id": paymentID,
			"payment_status":      status,
		}).Error
}

// SetProviderOrderID attaches the payment provider's order reference once a
// hosted payment order has been created for this order.
func (s *Store) SetProviderOrderID(ctx context.Context, id uint, providerOrderID string) error {
	return s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("provider_order_id", providerOrderID).Error
}

// SetPaymentStatus is used by return/replace resolution (refunds).
func (s *Store) SetPaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error {
	return s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}
