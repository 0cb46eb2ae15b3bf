package routes

import (
	"github.com/gin-gonic/gin"

	addressControllers "github.com/OmNinave/E-commerce-sub001/controllers/address"
	userControllers "github.com/OmNinave/E-commerce-sub001/controllers/user"
	wishlistControllers "github.com/OmNinave/E-commerce-sub001/controllers/wishlist"
	"github.com/OmNinave/E-commerce-sub001/middleware"
)

// SetupUserRoutes registers account, address and wishlist endpoints.
func SetupUserRoutes(api *gin.RouterGroup, deps Deps) {
	secret := deps.Config.Auth.JWTSecret

	userGroup := api.Group("/user")
	userGroup.Use(middleware.RequireAuth(secret))
	{
		userGroup.GET("", userControllers.GetUser(deps.Store))
		userGroup.PUT("", userControllers.UpdateUser(deps.Store))
		userGroup.PUT("/password", userControllers.ChangePassword(deps.Store))
	}

	addressGroup := api.Group("/addresses")
	addressGroup.Use(middleware.RequireAuth(secret))
	{
		addressGroup.GET("", addressControllers.ListAddresses(deps.Store))
		addressGroup.POST("", addressControllers.CreateAddress(deps.Store))
		addressGroup.PUT("/:id", addressControllers.UpdateAddress(deps.Store))
		addressGroup.PUT("/:id/default", addressControllers.SetDefaultAddress(deps.Store))
		addressGroup.DELETE("/:id", addressControllers.DeleteAddress(deps.Store))
	}

	wishlistGroup := api.Group("/wishlist")
	wishlistGroup.Use(middleware.RequireAuth(secret))
	{
		wishlistGroup.GET("", wishlistControllers.ListWishlist(deps.Store))
		wishlistGroup.POST("", wishlistControllers.AddToWishlist(deps.Store))
		wishlistGroup.DELETE("/:productId", wishlistControllers.RemoveFromWishlist(deps.Store))
	}
}
