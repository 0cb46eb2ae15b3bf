package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/OmNinave/E-commerce-sub001/controllers/auth"
	productControllers "github.com/OmNinave/E-commerce-sub001/controllers/product"
)

func SetupAuthRoutes(api *gin.RouterGroup, deps Deps) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authControllers.RegisterHandler(deps.Store, deps.Config.Auth))
		authGroup.POST("/login", authControllers.LoginHandler(deps.Store, deps.Config.Auth))
	}
}

func SetupCatalogRoutes(api *gin.RouterGroup, deps Deps) {
	api.GET("/products", productControllers.GetProducts(deps.Store))
	api.GET("/products/:id", productControllers.GetProductByID(deps.Store))
	api.GET("/categories", productControllers.GetCategories(deps.Store))
}
