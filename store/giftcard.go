package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/OmNinave/E-commerce-sub001/models"
)

func (s *Store) GetGiftCard(ctx context.Context, code string) (*models.GiftCard, error) {
	var card models.GiftCard
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&card).Error; err != nil {
		return nil, translate(err)
	}
	return &card, nil
}

func (s *Store) CreateGiftCard(ctx context.Context, card *models.GiftCard) error {
	return s.db.WithContext(ctx).Create(card).Error
}

// RedeemGiftCard subtracts amount from the card's balance, conditional on
// the balance still covering it. Same shape as DecrementStock: the WHERE
// clause is what keeps concurrent redemptions from overdrawing the card.
func (s *Store) RedeemGiftCard(ctx context.Context, code string, amount float64) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.GiftCard{}).
		Where("code = ? AND balance >= ?", code, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
