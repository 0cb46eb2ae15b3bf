package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/OmNinave/E-commerce-sub001/controllers/cart"
	orderControllers "github.com/OmNinave/E-commerce-sub001/controllers/order"
	paymentControllers "github.com/OmNinave/E-commerce-sub001/controllers/payment"
	"github.com/OmNinave/E-commerce-sub001/middleware"
)

// SetupOrderRoutes registers the checkout pipeline endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, deps Deps) {
	secret := deps.Config.Auth.JWTSecret

	cartGroup := api.Group("/cart")
	cartGroup.Use(middleware.RequireAuth(secret))
	{
		cartGroup.POST("/validate", cartControllers.ValidateCart(deps.Checkout))
	}

	orderGroup := api.Group("/orders")
	orderGroup.Use(middleware.RequireAuth(secret))
	{
		orderGroup.POST("", orderControllers.PlaceOrder(deps.Checkout))
		orderGroup.GET("", orderControllers.GetMyOrders(deps.Store))
		orderGroup.GET("/:orderID", orderControllers.GetOrderByID(deps.Store))
		orderGroup.POST("/:orderID/return", orderControllers.RequestReturn(deps.Store))

		// Admin-only status machine moves.
		orderGroup.PUT("/:orderID/status",
			middleware.RequireAdmin(), orderControllers.UpdateOrderStatus(deps.Store))
	}

	paymentGroup := api.Group("/payment")
	{
		paymentGroup.POST("/create-order",
			middleware.RequireAuth(secret),
			paymentControllers.CreatePaymentOrder(deps.Checkout, deps.Payment))
		// The provider callback carries its own signature; no bearer token.
		paymentGroup.POST("/verify-payment", paymentControllers.VerifyPayment(deps.Checkout))
	}
}
