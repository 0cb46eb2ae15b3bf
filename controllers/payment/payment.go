package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OmNinave/E-commerce-sub001/checkout"
	"github.com/OmNinave/E-commerce-sub001/controllers/respond"
	"github.com/OmNinave/E-commerce-sub001/middleware"
	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/payment"
)

type CreatePaymentOrderInput struct {
	OrderID uint `json:"orderId" binding:"required"`
}

type VerifyPaymentInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// POST /api/payment/create-order
//
// Registers the order's grand total with the hosted checkout provider and
// stores the provider's reference so the later callback can find the order.
func CreatePaymentOrder(svc *checkout.Service, client *payment.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePaymentOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := svc.Store.GetOrder(c.Request.Context(), input.OrderID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		if order.UserID != middleware.UserID(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if order.Status != models.OrderStatusPending || order.PaymentMethod != models.PaymentMethodRazorpay {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order is not awaiting online payment"})
			return
		}

		providerOrder, err := client.CreateOrder(c.Request.Context(), order.GrandTotal, order.OrderRef)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if err := svc.Store.SetProviderOrderID(c.Request.Context(), order.ID, providerOrder.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"providerOrderId": providerOrder.ID,
			"amount":          providerOrder.Amount,
			"currency":        providerOrder.Currency,
		})
	}
}

// POST /api/payment/verify-payment
func VerifyPayment(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := svc.ConfirmPayment(
			c.Request.Context(),
			input.RazorpayOrderID,
			input.RazorpayPaymentID,
			input.RazorpaySignature,
		)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
