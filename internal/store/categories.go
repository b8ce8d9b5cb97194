package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lendlyapp/lendly-server/internal/domain"
)

// CreateCategory adds a category.
// Returns ErrCategoryExists when the name is already taken (case-insensitive).
func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := s.Categories.Create(ctx, category.ID, category); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrCategoryExists
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.Categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// GetCategoryByName retrieves a category by its name, case-insensitively.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := s.Categories.GetByIndex(ctx, "name", name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category. Idempotent.
// Books referencing the category keep their dangling reference, listings
// treat it as uncategorized.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListCategories returns all categories ordered most recently created first.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	for category, err := range s.Categories.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, category)
	}

	sortByCreatedDesc(categories, func(c *domain.Category) int64 { return c.CreatedAt.UnixNano() })
	return categories, nil
}
