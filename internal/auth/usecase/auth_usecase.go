package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"bookworm-backend/internal/apperr"
	authdomain "bookworm-backend/internal/auth/domain"
	authdto "bookworm-backend/internal/auth/dto"
	"bookworm-backend/internal/auth/repository"
	"bookworm-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		config:   cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.New(apperr.ErrValidation, "All fields are required")
	}
	if len(req.Username) < 3 {
		return nil, apperr.New(apperr.ErrValidation, "Username must be at least 3 characters")
	}
	if len(req.Password) < 6 {
		return nil, apperr.New(apperr.ErrValidation, "Password must be at least 6 characters")
	}

	existing, err := u.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.ErrConflict, "Username already exists")
	}

	existing, err = u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.ErrConflict, "Email already exists")
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     hashedPassword,
		ProfileImage: "https://api.dicebear.com/9.x/avataaars/svg?seed=" + url.QueryEscape(req.Username),
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	token, err := u.generateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &authdto.AuthResponse{Token: token, User: user}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.New(apperr.ErrValidation, "All fields are required")
	}

	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	// Same message for unknown email and wrong password.
	if user == nil || !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperr.New(apperr.ErrUnauthorized, "Invalid credentials")
	}

	token, err := u.generateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &authdto.AuthResponse{Token: token, User: user}, nil
}

func (u *authUsecase) generateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(u.config.JWTExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) ValidateToken(ctx context.Context, tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.ErrUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.New(apperr.ErrUnauthorized, "Invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, apperr.New(apperr.ErrUnauthorized, "Invalid token claims")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.ErrUnauthorized, "Invalid token")
	}

	return user, nil
}
