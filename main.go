package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/OmNinave/E-commerce-sub001/checkout"
	"github.com/OmNinave/E-commerce-sub001/config"
	"github.com/OmNinave/E-commerce-sub001/middleware"
	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/payment"
	"github.com/OmNinave/E-commerce-sub001/routes"
	"github.com/OmNinave/E-commerce-sub001/store"
)

func main() {
	log.Println("✅ Starting storefront API...")

	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db := initDatabase(cfg.Database)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.WishlistItem{},
		&models.Product{},
		&models.Category{},
		&models.Order{},
		&models.OrderItem{},
		&models.GiftCard{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	st := store.New(db)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Store:    st,
		Checkout: checkout.NewService(st, cfg.Fees, cfg.Payment.KeySecret),
		Payment:  payment.NewClient(cfg.Payment),
		Config:   cfg,
		Limiter:  middleware.NewFixedWindowLimiter(cfg.Limits.RequestsPerMinute, time.Minute),
	})

	log.Printf("🚀 Server running on port %s...", cfg.HTTP.Port)
	if err := r.Run(":" + cfg.HTTP.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase opens the GORM connection for the configured driver.
func initDatabase(cfg config.Database) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		path := cfg.DSN
		if path == "" {
			path = "storefront.db"
		}
		dialector = sqlite.Open(path)
	default:
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}
