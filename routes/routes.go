package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/OmNinave/E-commerce-sub001/checkout"
	"github.com/OmNinave/E-commerce-sub001/config"
	"github.com/OmNinave/E-commerce-sub001/middleware"
	"github.com/OmNinave/E-commerce-sub001/payment"
	"github.com/OmNinave/E-commerce-sub001/store"
)

// Deps carries everything the route groups wire into handlers.
type Deps struct {
	Store    *store.Store
	Checkout *checkout.Service
	Payment  *payment.Client
	Config   *config.Config
	Limiter  middleware.RateLimiter
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	api := r.Group("/api")
	api.Use(middleware.RateLimit(deps.Limiter))

	// Public: auth + catalog browsing
	SetupAuthRoutes(api, deps)
	SetupCatalogRoutes(api, deps)

	// JWT-protected: account, cart, orders, payment
	SetupUserRoutes(api, deps)
	SetupOrderRoutes(api, deps)

	// JWT + admin role
	SetupAdminRoutes(api, deps)
}
