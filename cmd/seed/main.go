// Package main provides a tool to seed the database with development data.
//
// This creates an admin account, a handful of categories, and a starter
// catalog so the API can be exercised without manual setup.
//
// Usage:
//
//	DB_PATH=~/Lendly/data/db go run ./cmd/seed
//	DB_PATH=~/Lendly/data/db go run ./cmd/seed --borrowers  # Also create borrower accounts
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lendlyapp/lendly-server/internal/auth"
	"github.com/lendlyapp/lendly-server/internal/domain"
	"github.com/lendlyapp/lendly-server/internal/id"
	"github.com/lendlyapp/lendly-server/internal/store"
)

var createBorrowers = flag.Bool("borrowers", false, "Create borrower accounts for loan testing")

var categories = []string{"Fiction", "Non-Fiction", "Science", "History", "Biography"}

var books = []struct {
	name     string
	author   string
	category string
}{
	{"Dune", "Frank Herbert", "Fiction"},
	{"A Brief History of Time", "Stephen Hawking", "Science"},
	{"The Guns of August", "Barbara W. Tuchman", "History"},
	{"Long Walk to Freedom", "Nelson Mandela", "Biography"},
	{"Thinking, Fast and Slow", "Daniel Kahneman", "Non-Fiction"},
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Lendly/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	seedUser(ctx, s, "Librarian", "admin@lendly.local", "changeme123", domain.RoleAdmin)

	if *createBorrowers {
		seedUser(ctx, s, "Test Borrower One", "borrower1@lendly.local", "changeme123", domain.RoleUser)
		seedUser(ctx, s, "Test Borrower Two", "borrower2@lendly.local", "changeme123", domain.RoleUser)
	}

	categoryIDs := make(map[string]string)
	for _, name := range categories {
		categoryIDs[name] = seedCategory(ctx, s, name)
	}

	for _, b := range books {
		seedBook(ctx, s, b.name, b.author, categoryIDs[b.category])
	}

	fmt.Println("Seeding complete")
}

func seedUser(ctx context.Context, s *store.Store, name, email, password string, role domain.Role) {
	if _, err := s.GetUserByEmail(ctx, email); err == nil {
		fmt.Printf("User %s already exists, skipping\n", email)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &domain.User{
		Name:         name,
		Contact:      "0000000000",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	user.ID = id.MustGenerate("user")
	user.InitTimestamps()

	if err := s.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}

	fmt.Printf("Created %s user: %s (password: %s)\n", role, email, password)
}

func seedCategory(ctx context.Context, s *store.Store, name string) string {
	if existing, err := s.GetCategoryByName(ctx, name); err == nil {
		fmt.Printf("Category %q already exists, skipping\n", name)
		return existing.ID
	}

	category := &domain.Category{Name: name}
	category.ID = id.MustGenerate("category")
	category.InitTimestamps()

	if err := s.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrCategoryExists) {
			return category.ID
		}
		log.Fatalf("Failed to create category %q: %v", name, err)
	}

	fmt.Printf("Created category: %s\n", name)
	return category.ID
}

func seedBook(ctx context.Context, s *store.Store, name, author, categoryID string) {
	existing, err := s.ListBooks(ctx)
	if err != nil {
		log.Fatalf("Failed to list books: %v", err)
	}
	for _, b := range existing {
		if b.Name == name {
			fmt.Printf("Book %q already exists, skipping\n", name)
			return
		}
	}

	book := &domain.Book{
		Name:        name,
		Author:      author,
		CategoryID:  categoryID,
		IsAvailable: true,
	}
	book.ID = id.MustGenerate("book")
	book.InitTimestamps()

	if err := s.CreateBook(ctx, book); err != nil {
		log.Fatalf("Failed to create book %q: %v", name, err)
	}

	fmt.Printf("Created book: %s by %s\n", name, author)
}
