// Package store persists domain records in a Badger key-value database.
package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/lendlyapp/lendly-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	Users      *Entity[domain.User]
	Books      *Entity[domain.Book]
	Categories *Entity[domain.Category]
	Tickets    *Entity[domain.Ticket]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initEntities()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// initEntities wires up the generic entities and their indexes.
func (s *Store) initEntities() {
	// Users index by email, case-insensitive.
	s.Users = NewEntity[domain.User](s, "user:").
		WithUniqueIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail, // Transform lookups to be case-insensitive
		)

	// Books index by category for filtered listings. Uncategorized books
	// carry no index entry.
	s.Books = NewEntity[domain.Book](s, "book:").
		WithIndex("category", func(b *domain.Book) []string {
			if b.CategoryID == "" {
				return nil
			}
			return []string{b.CategoryID}
		})

	// Category names are unique, compared case-insensitively.
	s.Categories = NewEntity[domain.Category](s, "category:").
		WithUniqueIndexTransform("name",
			func(c *domain.Category) []string {
				return []string{normalizeName(c.Name)}
			},
			normalizeName,
		)

	// Tickets index by borrower for "my loans" listings and by book for
	// availability housekeeping.
	s.Tickets = NewEntity[domain.Ticket](s, "ticket:").
		WithIndex("borrower", func(t *domain.Ticket) []string {
			return []string{t.BorrowerID}
		}).
		WithIndex("book", func(t *domain.Ticket) []string {
			return []string{t.BookID}
		})
}

// normalizeEmail lowercases and trims an email for index storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName lowercases and trims a display name for index storage and lookup.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
