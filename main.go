package main

import (
	"context"
	"log"
	"time"

	api "bookworm-backend/cmd/api"
	authdomain "bookworm-backend/internal/auth/domain"
	authRepo "bookworm-backend/internal/auth/repository"
	authUsecase "bookworm-backend/internal/auth/usecase"
	bookdomain "bookworm-backend/internal/book/domain"
	bookRepo "bookworm-backend/internal/book/repository"
	bookUsecase "bookworm-backend/internal/book/usecase"
	"bookworm-backend/pkg/blobstore"
	"bookworm-backend/pkg/cache"
	"bookworm-backend/pkg/config"
	"bookworm-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &bookdomain.Book{}, &bookdomain.Favorite{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize cache. An unreachable Redis is a warning, not a crash:
	// every read path falls through to Postgres.
	cacheClient, err := cache.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal("Invalid REDIS_URL:", err)
	}
	defer cacheClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Printf("[WARN] Redis not reachable, list reads will skip the cache: %v", err)
	}
	cancel()

	// Initialize blob store
	blobStore, err := blobstore.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatal("Failed to initialize Cloudinary:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	bookRepository := bookRepo.NewBookRepository(db)
	favoriteRepository := bookRepo.NewFavoriteRepository(db)

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg)
	bookUsecaseInstance := bookUsecase.NewBookUsecase(bookRepository, blobStore, cacheClient, cfg.CacheTTL)
	favoriteUsecaseInstance := bookUsecase.NewFavoriteUsecase(favoriteRepository, bookRepository, cacheClient, cfg.CacheTTL)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, bookUsecaseInstance, favoriteUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
