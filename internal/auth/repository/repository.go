package repository

import (
	"context"

	authdomain "bookworm-backend/internal/auth/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByUsername(ctx context.Context, username string) (*authdomain.User, error)
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
}
