package api

import (
	"net/http"

	authDelivery "bookworm-backend/internal/auth/delivery"
	authUsecasePkg "bookworm-backend/internal/auth/usecase"
	bookDelivery "bookworm-backend/internal/book/delivery"
	bookUsecasePkg "bookworm-backend/internal/book/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecasePkg.AuthUsecase, bookUsecase bookUsecasePkg.BookUsecase, favoriteUsecase bookUsecasePkg.FavoriteUsecase) {
	authHandler := authDelivery.NewAuthHandler(authUsecase)
	bookHandler := bookDelivery.NewBookHandler(bookUsecase, favoriteUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authDelivery.AuthMiddleware(authUsecase), authHandler.Me)
		}

		// Book routes (protected)
		books := api.Group("/books")
		books.Use(authDelivery.AuthMiddleware(authUsecase))
		{
			books.POST("", bookHandler.Create)
			books.GET("", bookHandler.List)
			books.GET("/user", bookHandler.ListAll)
			books.GET("/favorites", bookHandler.ListFavorites)
			books.POST("/favorites", bookHandler.AddFavorite)
			books.DELETE("/favorites/:bookId", bookHandler.RemoveFavorite)
			books.DELETE("/:id", bookHandler.Delete)
		}
	}
}
