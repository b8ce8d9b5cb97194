package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/lendlyapp/lendly-server/internal/domain"
)

// CreateUser creates a new user account.
// Returns ErrEmailExists when the email address is already registered.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if err := s.Users.Create(ctx, user.ID, user); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address. Lookup is case-insensitive.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "email", email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// UpdateUser persists changes to an existing user.
// Returns ErrEmailExists if the new email collides with another account.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	if err := s.Users.Update(ctx, user.ID, user); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return ErrUserNotFound
		case errors.Is(err, ErrAlreadyExists):
			return ErrEmailExists
		default:
			return fmt.Errorf("update user: %w", err)
		}
	}
	return nil
}

// DeleteUser removes a user account. Idempotent.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ListUsers returns all users ordered most recently created first.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	for user, err := range s.Users.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, user)
	}

	sortByCreatedDesc(users, func(u *domain.User) int64 { return u.CreatedAt.UnixNano() })
	return users, nil
}

// sortByCreatedDesc orders records most recently created first.
// NanoIDs carry no timestamp, so listings sort on the stored CreatedAt.
func sortByCreatedDesc[T any](items []*T, createdAt func(*T) int64) {
	slices.SortFunc(items, func(a, b *T) int {
		switch {
		case createdAt(a) > createdAt(b):
			return -1
		case createdAt(a) < createdAt(b):
			return 1
		default:
			return 0
		}
	})
}
