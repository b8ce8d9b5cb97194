// Package service implements the application's business operations on top of the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lendlyapp/lendly-server/internal/auth"
	"github.com/lendlyapp/lendly-server/internal/domain"
	domainerrors "github.com/lendlyapp/lendly-server/internal/errors"
	"github.com/lendlyapp/lendly-server/internal/id"
	"github.com/lendlyapp/lendly-server/internal/store"
	"github.com/lendlyapp/lendly-server/internal/validation"
)

// AuthService handles user registration, login and token verification.
type AuthService struct {
	store        *store.Store
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store *store.Store,
	tokenService *auth.TokenService,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		validator:    validator,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Age      int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Gender   string `json:"gender,omitempty"`
	DOB      string `json:"dob,omitempty"`
	Contact  string `json:"contact" validate:"required,max=20"`
	Photo    string `json:"photo,omitempty"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=6,max=255"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the bearer token and the authenticated user.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Hash password
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	role := domain.RoleUser
	if req.Role == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		DOB:          req.DOB,
		Contact:      req.Contact,
		Photo:        req.Photo,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	user.ID = userID
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User registered",
			"user_id", userID,
			"email", user.Email,
		)
	}

	return user, nil
}

// Login authenticates a user and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Find user by email
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Don't leak whether email exists
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	// Verify password
	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User logged in", "user_id", user.ID)
	}

	return &AuthResponse{
		User:  user,
		Token: token,
	}, nil
}

// VerifyAccessToken validates a token and returns the associated user.
// Used by authentication middleware.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, *auth.AccessClaims, error) {
	// Verify and parse token
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid token: %w", err)
	}

	// Get user
	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil, errors.New("user not found")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	return user, claims, nil
}
