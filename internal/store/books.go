package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lendlyapp/lendly-server/internal/domain"
)

// CreateBook adds a catalog entry.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if err := s.Books.Create(ctx, book.ID, book); err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.Books.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// UpdateBook persists changes to an existing book.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	if err := s.Books.Update(ctx, book.ID, book); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// DeleteBook removes a book from the catalog. Idempotent.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	if err := s.Books.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// ListBooks returns the whole catalog ordered most recently added first.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book
	for book, err := range s.Books.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		books = append(books, book)
	}

	sortByCreatedDesc(books, func(b *domain.Book) int64 { return b.CreatedAt.UnixNano() })
	return books, nil
}

// ListBooksByCategory returns all books in one category, most recently added first.
func (s *Store) ListBooksByCategory(ctx context.Context, categoryID string) ([]*domain.Book, error) {
	var books []*domain.Book
	for book, err := range s.Books.ListByIndex(ctx, "category", categoryID) {
		if err != nil {
			return nil, fmt.Errorf("list books by category: %w", err)
		}
		books = append(books, book)
	}

	sortByCreatedDesc(books, func(b *domain.Book) int64 { return b.CreatedAt.UnixNano() })
	return books, nil
}
