package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OmNinave/E-commerce-sub001/config"
	"github.com/OmNinave/E-commerce-sub001/store"
)

// Fees is the full charge breakdown for a validated cart.
type Fees struct {
	Subtotal         float64 `json:"subtotal"`
	DeliveryCharge   float64 `json:"delivery_charge"`
	MarketplaceFee   float64 `json:"marketplace_fee"`
	Tax              float64 `json:"tax"`
	GiftCardDiscount float64 `json:"gift_card_discount"`
	GrandTotal       float64 `json:"grand_total"`
}

// FeeCalculator derives charges from a validated subtotal. The only
// external lookup is the optional gift card; everything else is a pure
// function of the subtotal and the configured tables.
type FeeCalculator struct {
	cfg       config.Fees
	giftCards store.GiftCards
	now       func() time.Time
}

func NewFeeCalculator(cfg config.Fees, giftCards store.GiftCards) *FeeCalculator {
	return &FeeCalculator{cfg: cfg, giftCards: giftCards, now: time.Now}
}

// Compute derives delivery charge, marketplace fee, tax and gift-card
// discount from the subtotal. Tax is applied to (subtotal + marketplace
// fee) and rounded half-up to the minor unit. The discount is capped so
// the grand total never goes negative.
func (f *FeeCalculator) Compute(ctx context.Context, subtotal float64, shippingMethod string, giftCardCode string) (*Fees, error) {
	shipping, ok := f.cfg.Shipping[shippingMethod]
	if !ok {
		return nil, newError(KindInvalidShipping, "unknown shipping method %q", shippingMethod)
	}

	fees := &Fees{Subtotal: subtotal}

	if subtotal < shipping.FreeAbove {
		fees.DeliveryCharge = shipping.FlatFee
	}

	fees.MarketplaceFee = round2(subtotal * f.cfg.MarketplacePercent / 100)
	fees.Tax = round2((subtotal + fees.MarketplaceFee) * f.cfg.TaxPercent / 100)

	total := round2(subtotal + fees.DeliveryCharge + fees.MarketplaceFee + fees.Tax)

	if giftCardCode != "" {
		card, err := f.giftCards.GetGiftCard(ctx, giftCardCode)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, newError(KindInvalidGiftCard, "gift card %q is not valid", giftCardCode)
			}
			return nil, fmt.Errorf("fetch gift card: %w", err)
		}
		if card.Expired(f.now()) {
			return nil, newError(KindInvalidGiftCard, "gift card %q has expired", giftCardCode)
		}
		fees.GiftCardDiscount = round2(card.Balance)
		if fees.GiftCardDiscount > total {
			fees.GiftCardDiscount = total
		}
	}

	fees.GrandTotal = round2(total - fees.GiftCardDiscount)
	if fees.GrandTotal < 0 {
		fees.GrandTotal = 0
	}
	return fees, nil
}
