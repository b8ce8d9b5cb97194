package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lendlyapp/lendly-server/internal/auth"
	"github.com/lendlyapp/lendly-server/internal/domain"
	domainerrors "github.com/lendlyapp/lendly-server/internal/errors"
	"github.com/lendlyapp/lendly-server/internal/store"
	"github.com/lendlyapp/lendly-server/internal/validation"
)

// UserService manages user profiles.
type UserService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// UpdateUserRequest contains the editable profile fields.
// Email changes go through here too; password changes do not.
type UpdateUserRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Age     *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Gender  *string `json:"gender,omitempty"`
	DOB     *string `json:"dob,omitempty"`
	Contact *string `json:"contact,omitempty" validate:"omitempty,max=20"`
	Photo   *string `json:"photo,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email,max=50"`
}

// ChangePasswordRequest carries the old and new passwords.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=255"`
}

// List returns all user accounts, most recently registered first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns one user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Update applies a partial profile edit.
// The password hash is never touched through this path, use ChangePassword.
func (s *UserService) Update(ctx context.Context, userID string, req UpdateUserRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.DOB != nil {
		user.DOB = *req.DOB
	}
	if req.Contact != nil {
		user.Contact = *req.Contact
	}
	if req.Photo != nil {
		user.Photo = *req.Photo
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return nil, domainerrors.NotFound("user not found")
		case errors.Is(err, store.ErrEmailExists):
			return nil, domainerrors.AlreadyExists("email already in use")
		default:
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("User profile updated", "user_id", userID)
	}

	return user, nil
}

// ChangePassword replaces a user's password after verifying the old one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.OldPassword)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return domainerrors.InvalidCredentials("old password does not match")
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = newHash
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User password changed", "user_id", userID)
	}

	return nil
}

// Delete removes a user account.
// Administrative side operation, tickets referencing the user are kept.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	// Surface NotFound for missing accounts, the store delete itself is idempotent.
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User deleted", "user_id", userID)
	}

	return nil
}
