package models

import "time"

// GiftCard is a stored-value code redeemable as a capped discount against
// an order total. Balance is decremented atomically at checkout.
type GiftCard struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Balance   float64   `gorm:"not null" json:"balance"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the card can no longer be redeemed.
func (g *GiftCard) Expired(now time.Time) bool {
	return !g.ExpiresAt.IsZero() && now.After(g.ExpiresAt)
}
