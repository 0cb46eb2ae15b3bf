package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/store"
)

// OrderWriter persists validated carts as orders. It owns the only writes
// in the pipeline: the conditional stock decrements, the gift-card
// redemption and the order insert, all inside one transaction.
type OrderWriter struct {
	st *store.Store
}

func NewOrderWriter(st *store.Store) *OrderWriter {
	return &OrderWriter{st: st}
}

// orderRef builds a unique human-sortable order reference.
func orderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// Create checks address ownership, then atomically decrements stock for
// every line, consumes the gift-card balance and inserts the order. A
// conditional decrement that applies to zero rows means a concurrent order
// won the stock this validation assumed was free; the whole transaction
// rolls back with StockRaceLost rather than overcommitting.
func (w *OrderWriter) Create(
	ctx context.Context,
	userID string,
	addressID uint,
	paymentMethod models.PaymentMethod,
	shippingMethod models.ShippingMethod,
	cart *ValidatedCart,
	fees *Fees,
	giftCardCode string,
) (*models.Order, error) {
	address, err := w.st.GetUserAddress(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindAddressMismatch, "address %d does not belong to this account", addressID)
		}
		return nil, fmt.Errorf("fetch address: %w", err)
	}

	status := models.OrderStatusPending
	if paymentMethod == models.PaymentMethodCOD {
		// Cash on delivery skips the online payment leg entirely.
		status = models.OrderStatusPaid
	}

	order := &models.Order{
		OrderRef:       orderRef(),
		UserID:         userID,
		Subtotal:       fees.Subtotal,
		DeliveryCharge: fees.DeliveryCharge,
		MarketplaceFee: fees.MarketplaceFee,
		Tax:            fees.Tax,

		GiftCardDiscount: fees.GiftCardDiscount,
		GrandTotal:       fees.GrandTotal,
		Status:           status,
		PaymentStatus:    models.PaymentStatusPending,
		PaymentMethod:    paymentMethod,
		ShippingMethod:   shippingMethod,
		GiftCardCode:     giftCardCode,
		ShipName:         address.FullName,
		ShipLine1:        address.Line1,
		ShipLine2:        address.Line2,
		ShipCity:         address.City,
		ShipState:        address.State,
		ShipCountry:      address.Country,
		ShipPostalCode:   address.PostalCode,
		ShipPhone:        address.Phone,
	}
	for _, line := range cart.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal,
		})
	}

	err = w.st.Tx(ctx, func(tx *store.Store) error {
		for _, line := range cart.Lines {
			ok, err := tx.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock for product %d: %w", line.ProductID, err)
			}
			if !ok {
				return lineError(KindStockRaceLost, line.ProductID,
					"stock for %q was taken by a concurrent order", line.ProductName)
			}
		}

		if fees.GiftCardDiscount > 0 && giftCardCode != "" {
			ok, err := tx.RedeemGiftCard(ctx, giftCardCode, fees.GiftCardDiscount)
			if err != nil {
				return fmt.Errorf("redeem gift card: %w", err)
			}
			if !ok {
				return newError(KindInvalidGiftCard, "gift card %q balance no longer covers the discount", giftCardCode)
			}
		}

		return tx.InsertOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
