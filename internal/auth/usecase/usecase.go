package usecase

import (
	"context"

	authdomain "bookworm-backend/internal/auth/domain"
	authdto "bookworm-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for auth business logic
type AuthUsecase interface {
	// Register creates a new user and returns a signed token
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error)

	// Login verifies credentials and returns a signed token
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error)

	// ValidateToken verifies a bearer token and resolves its user
	ValidateToken(ctx context.Context, token string) (*authdomain.User, error)
}
