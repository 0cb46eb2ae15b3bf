package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/OmNinave/E-commerce-sub001/models"
)

// GetUserAddress looks up an address scoped to its owner. An address id
// belonging to another user is indistinguishable from a missing one.
func (s *Store) GetUserAddress(ctx context.Context, userID string, id uint) (*models.Address, error) {
	var address models.Address
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error; err != nil {
		return nil, translate(err)
	}
	return &address, nil
}

func (s *Store) ListAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (s *Store) CreateAddress(ctx context.Context, address *models.Address) error {
	return s.db.WithContext(ctx).Create(address).Error
}

func (s *Store) UpdateAddress(ctx context.Context, userID string, id uint, updates map[string]interface{}) (*models.Address, error) {
	res := s.db.WithContext(ctx).Model(&models.Address{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetUserAddress(ctx, userID, id)
}

func (s *Store) DeleteAddress(ctx context.Context, userID string, id uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDefaultAddress flips the default flag across all of the user's rows in
// one statement, so no reader ever observes zero or two defaults.
func (s *Store) SetDefaultAddress(ctx context.Context, userID string, id uint) error {
	if _, err := s.GetUserAddress(ctx, userID, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.Address{}).
		Where("user_id = ?", userID).
		UpdateColumn("is_default", gorm.Expr("(id = ?)", id)).Error
}
