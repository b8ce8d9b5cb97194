package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lendlyapp/lendly-server/internal/domain"
	domainerrors "github.com/lendlyapp/lendly-server/internal/errors"
	"github.com/lendlyapp/lendly-server/internal/id"
	"github.com/lendlyapp/lendly-server/internal/store"
	"github.com/lendlyapp/lendly-server/internal/validation"
)

// CatalogService manages books and categories.
type CatalogService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// BookView is a book with its category reference resolved.
// Category is nil for uncategorized books or dangling references.
type BookView struct {
	*domain.Book
	Category *domain.Category `json:"category,omitempty"`
}

// AddBookRequest contains the fields for a new catalog entry.
type AddBookRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Author     string `json:"author" validate:"required,max=255"`
	Image      string `json:"image,omitempty" validate:"omitempty,url"`
	Language   string `json:"language,omitempty"`
	Publisher  string `json:"publisher,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
}

// UpdateBookRequest contains the editable book fields.
// Availability is owned by the loan workflow and not editable here.
type UpdateBookRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Author     *string `json:"author,omitempty" validate:"omitempty,min=1,max=255"`
	Image      *string `json:"image,omitempty" validate:"omitempty,url"`
	Language   *string `json:"language,omitempty"`
	Publisher  *string `json:"publisher,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
}

// CategoryRequest carries a category name.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// AddBook creates a catalog entry. New books start available.
func (s *CatalogService) AddBook(ctx context.Context, req AddBookRequest) (*BookView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := &domain.Book{
		Name:        req.Name,
		Author:      req.Author,
		Image:       req.Image,
		Language:    req.Language,
		Publisher:   req.Publisher,
		IsAvailable: true,
		CategoryID:  req.CategoryID,
	}
	book.ID = bookID
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book added", "book_id", bookID, "name", book.Name)
	}

	return s.resolveBook(ctx, book), nil
}

// GetBook returns one book with its category resolved.
func (s *CatalogService) GetBook(ctx context.Context, bookID string) (*BookView, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return s.resolveBook(ctx, book), nil
}

// ListBooks returns the whole catalog with categories resolved,
// most recently added first.
func (s *CatalogService) ListBooks(ctx context.Context) ([]*BookView, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return s.resolveBooks(ctx, books), nil
}

// FilterBooksByCategory returns books in one category.
// An empty result is reported as NotFound, matching the API contract.
func (s *CatalogService) FilterBooksByCategory(ctx context.Context, categoryID string) ([]*BookView, error) {
	books, err := s.store.ListBooksByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list books by category: %w", err)
	}
	if len(books) == 0 {
		return nil, domainerrors.NotFound("no books found in this category")
	}
	return s.resolveBooks(ctx, books), nil
}

// UpdateBook applies a partial edit to a catalog entry.
func (s *CatalogService) UpdateBook(ctx context.Context, bookID string, req UpdateBookRequest) (*BookView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	if req.Name != nil {
		book.Name = *req.Name
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Image != nil {
		book.Image = *req.Image
	}
	if req.Language != nil {
		book.Language = *req.Language
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.CategoryID != nil {
		book.CategoryID = *req.CategoryID
	}
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	return s.resolveBook(ctx, book), nil
}

// DeleteBook removes a book from the catalog.
func (s *CatalogService) DeleteBook(ctx context.Context, bookID string) error {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return domainerrors.NotFound("book not found")
		}
		return fmt.Errorf("get book: %w", err)
	}

	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book deleted", "book_id", bookID)
	}

	return nil
}

// AddCategory creates a category. Names are unique, case-insensitively.
func (s *CatalogService) AddCategory(ctx context.Context, req CategoryRequest) (*domain.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	categoryID, err := id.Generate("category")
	if err != nil {
		return nil, fmt.Errorf("generate category ID: %w", err)
	}

	category := &domain.Category{Name: req.Name}
	category.ID = categoryID
	category.InitTimestamps()

	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrCategoryExists) {
			return nil, domainerrors.AlreadyExists("category already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Category added", "category_id", categoryID, "name", category.Name)
	}

	return category, nil
}

// GetCategory returns one category by ID.
func (s *CatalogService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// ListCategories returns all categories, most recently created first.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory renames a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, categoryID string, req CategoryRequest) (*domain.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	category.Name = req.Name
	category.Touch()

	if err := s.store.Categories.Update(ctx, category.ID, category); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("category not found")
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.AlreadyExists("category already exists")
		default:
			return nil, fmt.Errorf("update category: %w", err)
		}
	}

	return category, nil
}

// DeleteCategory removes a category.
// Books keep their reference; listings then show them as uncategorized.
func (s *CatalogService) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return domainerrors.NotFound("category not found")
		}
		return fmt.Errorf("get category: %w", err)
	}

	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Category deleted", "category_id", categoryID)
	}

	return nil
}

// resolveBook attaches the referenced category, if any.
func (s *CatalogService) resolveBook(ctx context.Context, book *domain.Book) *BookView {
	view := &BookView{Book: book}
	if book.CategoryID == "" {
		return view
	}

	category, err := s.store.GetCategory(ctx, book.CategoryID)
	if err != nil {
		// Dangling reference, present the book as uncategorized.
		return view
	}
	view.Category = category
	return view
}

// resolveBooks attaches categories to a batch of books, caching lookups.
func (s *CatalogService) resolveBooks(ctx context.Context, books []*domain.Book) []*BookView {
	cache := make(map[string]*domain.Category)
	views := make([]*BookView, 0, len(books))

	for _, book := range books {
		view := &BookView{Book: book}
		if book.CategoryID != "" {
			category, ok := cache[book.CategoryID]
			if !ok {
				if c, err := s.store.GetCategory(ctx, book.CategoryID); err == nil {
					category = c
				}
				cache[book.CategoryID] = category
			}
			view.Category = category
		}
		views = append(views, view)
	}

	return views
}
