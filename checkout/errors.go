package checkout

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable failure category surfaced to clients.
type Kind string

const (
	KindProductNotFound   Kind = "ProductNotFound"
	KindInvalidQuantity   Kind = "InvalidQuantity"
	KindInsufficientStock Kind = "InsufficientStock"
	KindInvalidGiftCard   Kind = "InvalidGiftCard"
	KindInvalidShipping   Kind = "InvalidShippingMethod"
	KindAddressMismatch   Kind = "AddressMismatch"
	KindStockRaceLost     Kind = "StockRaceLost"
	KindSignatureMismatch Kind = "SignatureMismatch"
	KindOrderNotPending   Kind = "OrderNotPending"
	KindUnauthorized      Kind = "Unauthorized"
	KindForbidden         Kind = "Forbidden"
)

// Error is a client-facing checkout failure. ProductID is set when the
// failure concerns a specific line.
type Error struct {
	Kind      Kind
	Message   string
	ProductID uint
}

func (e *Error) Error() string {
	if e.ProductID != 0 {
		return fmt.Sprintf("%s: %s (product %d)", e.Kind, e.Message, e.ProductID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func lineError(kind Kind, productID uint, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), ProductID: productID}
}

// KindOf extracts the failure kind, or "" for non-checkout errors
// (store I/O and the like, which map to 500s at the boundary).
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
