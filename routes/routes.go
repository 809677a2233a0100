package routes

import (
	"net/http"

	"quizshop/handlers"
	"quizshop/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	shopHandler *handlers.ShopHandler,
	jwtSecret string,
) {
	// Auth routes (public)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret))
	{
		protected.POST("/confirm-user", authHandler.ConfirmUser)
		protected.POST("/change-password", authHandler.ChangePassword)
		protected.GET("/profile", authHandler.GetProfile)
		protected.PUT("/profile", authHandler.UpdateProfile)

		protected.GET("/subjects", catalogHandler.ListSubjects)
		protected.GET("/subjects/:id", catalogHandler.GetSubject)
		protected.GET("/tests", catalogHandler.ListTests)
		protected.GET("/tests/:id", catalogHandler.GetTest)
		protected.GET("/questions", catalogHandler.ListQuestions)
		protected.GET("/questions/:id", catalogHandler.GetQuestion)

		shop := protected.Group("/shop")
		{
			shop.GET("", shopHandler.ListItems)
			shop.GET("/item/:id", shopHandler.GetItem)
			shop.POST("/buy", shopHandler.Buy)
		}

		// Catalog management (admin only)
		admin := protected.Group("/")
		admin.Use(middleware.AdminOnly())
		{
			admin.POST("/subjects", catalogHandler.CreateSubject)
			admin.POST("/tests", catalogHandler.CreateTest)
			admin.POST("/questions", catalogHandler.CreateQuestion)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
