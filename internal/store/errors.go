package store

import "errors"

// Sentinel errors returned by store operations. Services translate these
// into user-facing errors, the store stays HTTP-agnostic.
var (
	// ErrNotFound is returned when an entity cannot be found by key or index.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a create or update collides with an
	// existing key or unique index entry.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUserNotFound is returned when a user cannot be found by ID or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when attempting to create a user with an email that's already in use.
	ErrEmailExists = errors.New("email already in use")
	// ErrBookNotFound is returned when a book cannot be found by ID.
	ErrBookNotFound = errors.New("book not found")
	// ErrCategoryNotFound is returned when a category cannot be found by ID or name.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned when a category name is already taken.
	ErrCategoryExists = errors.New("category already exists")
	// ErrTicketNotFound is returned when a transaction ticket cannot be found by ID.
	ErrTicketNotFound = errors.New("ticket not found")
)
