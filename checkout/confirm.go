package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/payment"
	"github.com/OmNinave/E-commerce-sub001/store"
)

// ConfirmPayment verifies the provider callback signature and moves the
// order from pending to paid. The status move is a compare-and-swap, so a
// repeated callback finds the order already paid and fails with
// OrderNotPending instead of double-applying.
func (s *Service) ConfirmPayment(ctx context.Context, providerOrderID, providerPaymentID, signature string) (*models.Order, error) {
	if !payment.VerifySignature(providerOrderID, providerPaymentID, signature, s.paymentSecret) {
		// A bad signature on a well-formed callback is a forgery attempt.
		log.Printf("payment callback signature mismatch for provider order %s", providerOrderID)
		return nil, newError(KindSignatureMismatch, "payment signature verification failed")
	}

	order, err := s.Store.GetOrderByProviderRef(ctx, providerOrderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("order for provider ref %s: %w", providerOrderID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("fetch order: %w", err)
	}

	// The status swap and the payment record commit together: a paid order
	// always carries its provider payment id.
	err = s.Store.Tx(ctx, func(tx *store.Store) error {
		ok, err := tx.UpdateOrderStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusPaid)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if !ok {
			return newError(KindOrderNotPending, "order %d is not pending", order.ID)
		}
		if err := tx.SetOrderPayment(ctx, order.ID, providerPaymentID, models.PaymentStatusPaid); err != nil {
			return fmt.Errorf("record payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Store.GetOrder(ctx, order.ID)
}
