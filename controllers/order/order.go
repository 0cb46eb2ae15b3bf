package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/OmNinave/E-commerce-sub001/checkout"
	"github.com/OmNinave/E-commerce-sub001/controllers/respond"
	"github.com/OmNinave/E-commerce-sub001/middleware"
	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/store"
)

type PlaceOrderInput struct {
	AddressID      uint                     `json:"addressId" binding:"required"`
	PaymentMethod  string                   `json:"paymentMethodId" binding:"required"`
	ShippingMethod string                   `json:"shippingMethod" binding:"required"`
	Items          []checkout.CartLineInput `json:"items" binding:"required"`
	GiftCardCode   string                   `json:"giftCardCode"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("orderID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}

// POST /api/orders
func PlaceOrder(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		method, err := models.ParsePaymentMethod(input.PaymentMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.PlaceOrder(
			c.Request.Context(),
			middleware.UserID(c),
			input.AddressID,
			method,
			models.ShippingMethod(input.ShippingMethod),
			input.Items,
			input.GiftCardCode,
		)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

// GET /api/orders
func GetMyOrders(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := st.ListUserOrders(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:orderID
func GetOrderByID(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := orderID(c)
		if !ok {
			return
		}
		order, err := st.GetOrder(c.Request.Context(), id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		if order.UserID != middleware.UserID(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /api/admin/orders
func GetAllOrders(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := st.ListAllOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /api/orders/:orderID/status (admin)
//
// Moves the order along the status machine. Jumps outside the allowed
// transitions are rejected; the swap itself is compare-and-swap so a
// concurrent move loses cleanly.
func UpdateOrderStatus(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := orderID(c)
		if !ok {
			return
		}
		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := st.GetOrder(c.Request.Context(), id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		if !models.CanTransition(order.Status, newStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "cannot move order from " + string(order.Status) + " to " + string(newStatus),
			})
			return
		}

		swapped, err := st.UpdateOrderStatus(c.Request.Context(), id, order.Status, newStatus)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if !swapped {
			c.JSON(http.StatusConflict, gin.H{"error": "order status changed concurrently, retry"})
			return
		}

		order, err = st.GetOrder(c.Request.Context(), id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

type RequestReturnInput struct {
	// Kind is "return" or "replace".
	Kind string `json:"kind" binding:"required"`
}

// POST /api/orders/:orderID/return (user)
func RequestReturn(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := orderID(c)
		if !ok {
			return
		}
		var input RequestReturnInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var target models.OrderStatus
		switch input.Kind {
		case "return":
			target = models.OrderStatusReturnRequested
		case "replace":
			target = models.OrderStatusReplaceRequested
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be return or replace"})
			return
		}

		order, err := st.GetOrder(c.Request.Context(), id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		if order.UserID != middleware.UserID(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		swapped, err := st.UpdateOrderStatus(c.Request.Context(), id, models.OrderStatusCompleted, target)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to request " + input.Kind})
			return
		}
		if !swapped {
			c.JSON(http.StatusBadRequest, gin.H{"error": "only completed orders can be returned or replaced"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": input.Kind + " requested"})
	}
}

type ResolveReturnInput struct {
	Approve bool `json:"approve"`
}

// PUT /api/admin/orders/:orderID/return (admin)
//
// Approval refunds the payment and closes the order; rejection just puts
// the order back to completed.
func ResolveReturn(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := orderID(c)
		if !ok {
			return
		}
		var input ResolveReturnInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := st.GetOrder(c.Request.Context(), id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		if order.Status != models.OrderStatusReturnRequested &&
			order.Status != models.OrderStatusReplaceRequested {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order has no pending return or replace request"})
			return
		}

		swapped, err := st.UpdateOrderStatus(c.Request.Context(), id, order.Status, models.OrderStatusCompleted)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve request"})
			return
		}
		if !swapped {
			c.JSON(http.StatusConflict, gin.H{"error": "order status changed concurrently, retry"})
			return
		}

		if input.Approve && order.Status == models.OrderStatusReturnRequested {
			if err := st.SetPaymentStatus(c.Request.Context(), id, models.PaymentStatusRefunded); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark refund"})
				return
			}
		}

		order, err = st.GetOrder(c.Request.Context(), id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
