// Package respond maps checkout pipeline failures onto HTTP responses so
// every endpoint reports the same machine-readable kinds.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OmNinave/E-commerce-sub001/checkout"
	"github.com/OmNinave/E-commerce-sub001/store"
)

var statusByKind = map[checkout.Kind]int{
	checkout.KindProductNotFound:   http.StatusNotFound,
	checkout.KindInvalidQuantity:   http.StatusBadRequest,
	checkout.KindInsufficientStock: http.StatusBadRequest,
	checkout.KindInvalidGiftCard:   http.StatusBadRequest,
	checkout.KindInvalidShipping:   http.StatusBadRequest,
	checkout.KindAddressMismatch:   http.StatusBadRequest,
	checkout.KindStockRaceLost:     http.StatusConflict,
	checkout.KindSignatureMismatch: http.StatusBadRequest,
	checkout.KindOrderNotPending:   http.StatusBadRequest,
	checkout.KindUnauthorized:      http.StatusUnauthorized,
	checkout.KindForbidden:         http.StatusForbidden,
}

// Error writes the failure as JSON. Checkout kinds get their mapped status
// and kind field; missing rows get 404; anything else is a 500 with no
// internal detail leaked.
func Error(c *gin.Context, err error) {
	if kind := checkout.KindOf(err); kind != "" {
		status, ok := statusByKind[kind]
		if !ok {
			status = http.StatusBadRequest
		}
		body := gin.H{"error": err.Error(), "kind": kind}
		var ce *checkout.Error
		if errors.As(err, &ce) && ce.ProductID != 0 {
			body["product_id"] = ce.ProductID
		}
		c.JSON(status, body)
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
