package routes

import (
	"github.com/gin-gonic/gin"

	adminControllers "github.com/OmNinave/E-commerce-sub001/controllers/admin"
	orderControllers "github.com/OmNinave/E-commerce-sub001/controllers/order"
	productControllers "github.com/OmNinave/E-commerce-sub001/controllers/product"
	"github.com/OmNinave/E-commerce-sub001/middleware"
)

// SetupAdminRoutes registers the admin surface: catalog management, order
// oversight, gift cards and exports.
func SetupAdminRoutes(api *gin.RouterGroup, deps Deps) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(deps.Config.Auth.JWTSecret), middleware.RequireAdmin())
	{
		adminGroup.GET("/orders", orderControllers.GetAllOrders(deps.Store))
		adminGroup.GET("/orders/export", adminControllers.ExportOrdersToExcel(deps.Store))
		adminGroup.PUT("/orders/:orderID/return", orderControllers.ResolveReturn(deps.Store))

		adminGroup.POST("/products", productControllers.CreateProduct(deps.Store))
		adminGroup.PUT("/products/:id", productControllers.UpdateProduct(deps.Store))
		adminGroup.DELETE("/products/:id", productControllers.DeleteProduct(deps.Store))
		adminGroup.POST("/categories", productControllers.CreateCategory(deps.Store))

		adminGroup.POST("/giftcards", adminControllers.CreateGiftCard(deps.Store))
		adminGroup.GET("/giftcards/:code", adminControllers.GetGiftCard(deps.Store))
	}
}
