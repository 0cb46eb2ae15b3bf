package checkout

import (
	"context"

	"github.com/OmNinave/E-commerce-sub001/config"
	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/store"
)

// Service wires the checkout pipeline: validator, fee calculator, order
// writer and payment confirmation, all over one store.
type Service struct {
	Store         *store.Store
	Fees          *FeeCalculator
	writer        *OrderWriter
	paymentSecret string
}

func NewService(st *store.Store, feeCfg config.Fees, paymentSecret string) *Service {
	return &Service{
		Store:         st,
		Fees:          NewFeeCalculator(feeCfg, st),
		writer:        NewOrderWriter(st),
		paymentSecret: paymentSecret,
	}
}

// Validate runs the read-only half of checkout: authoritative re-pricing
// plus the fee breakdown the client will be charged.
func (s *Service) Validate(ctx context.Context, lines []CartLineInput, shippingMethod, giftCardCode string) (*ValidatedCart, *Fees, error) {
	cart, err := ValidateCart(ctx, s.Store, lines)
	if err != nil {
		return nil, nil, err
	}
	fees, err := s.Fees.Compute(ctx, cart.Subtotal, shippingMethod, giftCardCode)
	if err != nil {
		return nil, nil, err
	}
	return cart, fees, nil
}

// PlaceOrder runs the whole pipeline: validate against live stock and
// price, compute fees, then persist. Stock races surface from the writer
// as StockRaceLost; the client may retry.
func (s *Service) PlaceOrder(
	ctx context.Context,
	userID string,
	addressID uint,
	paymentMethod models.PaymentMethod,
	shippingMethod models.ShippingMethod,
	lines []CartLineInput,
	giftCardCode string,
) (*models.Order, error) {
	cart, fees, err := s.Validate(ctx, lines, string(shippingMethod), giftCardCode)
	if err != nil {
		return nil, err
	}
	return s.writer.Create(ctx, userID, addressID, paymentMethod, shippingMethod, cart, fees, giftCardCode)
}
