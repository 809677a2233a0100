package main

import (
	"log"

	"quizshop/config"
	"quizshop/handlers"
	"quizshop/middleware"
	"quizshop/models"
	"quizshop/routes"
	"quizshop/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.UserConfirmation{},
		&models.Subject{},
		&models.Test{},
		&models.Question{},
		&models.Option{},
		&models.ShopItem{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, redisClient, cfg.JWTSecret)
	confirmationService := services.NewConfirmationService(db)
	catalogService := services.NewCatalogService(db)
	shopService := services.NewShopService(db)
	mailer := services.NewMailer(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, confirmationService, mailer)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	shopHandler := handlers.NewShopHandler(shopService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, catalogHandler, shopHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
