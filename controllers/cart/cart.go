package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OmNinave/E-commerce-sub001/checkout"
	"github.com/OmNinave/E-commerce-sub001/controllers/respond"
)

type ValidateCartInput struct {
	Items          []checkout.CartLineInput `json:"items" binding:"required"`
	ShippingMethod string                   `json:"shippingMethod" binding:"required"`
	GiftCardCode   string                   `json:"giftCardCode"`
}

// POST /api/cart/validate
//
// Re-prices the cart against the catalog and returns the charges the
// client would pay. Any price the client sent is ignored.
func ValidateCart(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ValidateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, fees, err := svc.Validate(c.Request.Context(), input.Items, input.ShippingMethod, input.GiftCardCode)
		if err != nil {
			respond.Error(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"subtotal": cart.Subtotal,
			"lines":    cart.Lines,
			"fees":     fees,
		})
	}
}
