package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lendlyapp/lendly-server/internal/domain"
)

// CreateTicket records a new lending transaction.
func (s *Store) CreateTicket(ctx context.Context, ticket *domain.Ticket) error {
	if err := s.Tickets.Create(ctx, ticket.ID, ticket); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

// GetTicket retrieves a ticket by ID.
func (s *Store) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.Tickets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return ticket, nil
}

// UpdateTicket persists changes to an existing ticket.
func (s *Store) UpdateTicket(ctx context.Context, ticket *domain.Ticket) error {
	if err := s.Tickets.Update(ctx, ticket.ID, ticket); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrTicketNotFound
		}
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}

// DeleteTicket removes a ticket. Idempotent.
func (s *Store) DeleteTicket(ctx context.Context, id string) error {
	if err := s.Tickets.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

// ListTickets returns all tickets ordered most recently created first.
func (s *Store) ListTickets(ctx context.Context) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	for ticket, err := range s.Tickets.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list tickets: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	sortByCreatedDesc(tickets, func(t *domain.Ticket) int64 { return t.CreatedAt.UnixNano() })
	return tickets, nil
}

// ListTicketsByBorrower returns one user's tickets, most recently created first.
func (s *Store) ListTicketsByBorrower(ctx context.Context, borrowerID string) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	for ticket, err := range s.Tickets.ListByIndex(ctx, "borrower", borrowerID) {
		if err != nil {
			return nil, fmt.Errorf("list tickets by borrower: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	sortByCreatedDesc(tickets, func(t *domain.Ticket) int64 { return t.CreatedAt.UnixNano() })
	return tickets, nil
}

// ListTicketsByBook returns all tickets ever raised against one book,
// most recently created first.
func (s *Store) ListTicketsByBook(ctx context.Context, bookID string) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	for ticket, err := range s.Tickets.ListByIndex(ctx, "book", bookID) {
		if err != nil {
			return nil, fmt.Errorf("list tickets by book: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	sortByCreatedDesc(tickets, func(t *domain.Ticket) int64 { return t.CreatedAt.UnixNano() })
	return tickets, nil
}
