package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/lendlyapp/lendly-server/internal/domain"
	"github.com/lendlyapp/lendly-server/internal/store"
	"github.com/stretchr/testify/require"
)

func newUser(id, email string) *domain.User {
	u := &domain.User{
		Name:  "Test User",
		Email: email,
		Role:  domain.RoleUser,
	}
	u.ID = id
	u.InitTimestamps()
	return u
}

func TestStore_CreateUser_DuplicateEmail(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newUser("user-1", "reader@example.com")))

	// Same email, different casing.
	err := s.CreateUser(ctx, newUser("user-2", "Reader@Example.COM"))
	require.ErrorIs(t, err, store.ErrEmailExists)
}

func TestStore_GetUserByEmail_CaseInsensitive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, newUser("user-1", "reader@example.com")))

	got, err := s.GetUserByEmail(ctx, "READER@example.com")
	require.NoError(t, err)
	require.Equal(t, "user-1", got.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestStore_UpdateUser_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	err := s.UpdateUser(context.Background(), newUser("ghost", "ghost@example.com"))
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestStore_Categories_UniqueName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	fiction := &domain.Category{Name: "Fiction"}
	fiction.ID = "category-1"
	fiction.InitTimestamps()
	require.NoError(t, s.CreateCategory(ctx, fiction))

	// Names collide case-insensitively.
	dup := &domain.Category{Name: "fiction"}
	dup.ID = "category-2"
	dup.InitTimestamps()
	require.ErrorIs(t, s.CreateCategory(ctx, dup), store.ErrCategoryExists)

	got, err := s.GetCategoryByName(ctx, "FICTION")
	require.NoError(t, err)
	require.Equal(t, "category-1", got.ID)
}

func TestStore_ListBooksByCategory(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	addBook := func(id, categoryID string, createdAt time.Time) {
		b := &domain.Book{Name: "Book " + id, Author: "Author", IsAvailable: true, CategoryID: categoryID}
		b.ID = id
		b.CreatedAt = createdAt
		b.UpdatedAt = createdAt
		require.NoError(t, s.CreateBook(ctx, b))
	}

	base := time.Now()
	addBook("book-1", "category-1", base.Add(-2*time.Hour))
	addBook("book-2", "category-1", base.Add(-time.Hour))
	addBook("book-3", "category-2", base)
	addBook("book-4", "", base)

	books, err := s.ListBooksByCategory(ctx, "category-1")
	require.NoError(t, err)
	require.Len(t, books, 2)
	// Most recently added first.
	require.Equal(t, "book-2", books[0].ID)
	require.Equal(t, "book-1", books[1].ID)

	all, err := s.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestStore_Tickets_ByBorrower(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	addTicket := func(id, borrowerID string, createdAt time.Time) {
		tk := &domain.Ticket{
			BookID:          "book-1",
			BorrowerID:      borrowerID,
			TransactionType: domain.TransactionIssue,
			Status:          domain.TicketPending,
			IssueDate:       createdAt,
			DueDate:         createdAt.Add(7 * 24 * time.Hour),
		}
		tk.ID = id
		tk.CreatedAt = createdAt
		tk.UpdatedAt = createdAt
		require.NoError(t, s.CreateTicket(ctx, tk))
	}

	base := time.Now()
	addTicket("ticket-1", "user-1", base.Add(-time.Hour))
	addTicket("ticket-2", "user-1", base)
	addTicket("ticket-3", "user-2", base)

	mine, err := s.ListTicketsByBorrower(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "ticket-2", mine[0].ID)

	_, err = s.GetTicket(ctx, "missing")
	require.ErrorIs(t, err, store.ErrTicketNotFound)
}

func TestStore_Tickets_UpdateStatus(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	tk := &domain.Ticket{
		BookID:          "book-1",
		BorrowerID:      "user-1",
		TransactionType: domain.TransactionIssue,
		Status:          domain.TicketPending,
	}
	tk.ID = "ticket-1"
	tk.InitTimestamps()
	require.NoError(t, s.CreateTicket(ctx, tk))

	tk.Status = domain.TicketApproved
	tk.ApprovedBy = "admin-1"
	tk.Touch()
	require.NoError(t, s.UpdateTicket(ctx, tk))

	got, err := s.GetTicket(ctx, "ticket-1")
	require.NoError(t, err)
	require.Equal(t, domain.TicketApproved, got.Status)
	require.Equal(t, "admin-1", got.ApprovedBy)
}
