package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lendlyapp/lendly-server/internal/domain"
	domainerrors "github.com/lendlyapp/lendly-server/internal/errors"
	"github.com/lendlyapp/lendly-server/internal/id"
	"github.com/lendlyapp/lendly-server/internal/store"
	"github.com/lendlyapp/lendly-server/internal/validation"
)

// LoanPeriod is how long a borrower may keep a book once issued.
const LoanPeriod = 7 * 24 * time.Hour

// LoanService implements the ticket workflow: issue, approve, complete.
//
// Tickets move pending -> approved -> completed and never regress.
// The availability flag on the referenced book is flipped at approval
// and restored at completion. The ticket is always written before the
// book so a failed book write leaves a retryable state: re-running the
// operation flips availability idempotently without touching the
// already-transitioned ticket again.
type LoanService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLoanService creates a new loan workflow service.
func NewLoanService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *LoanService {
	return &LoanService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// UserSummary is the borrower/approver projection embedded in ticket views.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TicketView is a ticket with its references resolved.
// Book and user fields are nil when the referenced record is gone.
type TicketView struct {
	*domain.Ticket
	Book           *domain.Book `json:"book,omitempty"`
	Borrower       *UserSummary `json:"borrower,omitempty"`
	ApprovedByUser *UserSummary `json:"approved_by_user,omitempty"`
}

// IssueRequest asks for a book loan on behalf of a borrower.
type IssueRequest struct {
	BookID     string `json:"book_id" validate:"required"`
	BorrowerID string `json:"borrower_id" validate:"required"`
}

// Issue creates a pending ticket for a book loan.
//
// Availability is not checked here: a book may accumulate several
// pending tickets and the conflict is resolved at approval time.
// Book existence is likewise deferred to approval.
func (s *LoanService) Issue(ctx context.Context, req IssueRequest) (*TicketView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	ticketID, err := id.Generate("ticket")
	if err != nil {
		return nil, fmt.Errorf("generate ticket ID: %w", err)
	}

	now := time.Now()
	ticket := &domain.Ticket{
		BookID:          req.BookID,
		BorrowerID:      req.BorrowerID,
		TransactionType: domain.TransactionIssue,
		Status:          domain.TicketPending,
		IssueDate:       now,
		DueDate:         now.Add(LoanPeriod),
	}
	ticket.ID = ticketID
	ticket.InitTimestamps()

	if err := s.store.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Ticket issued",
			"ticket_id", ticketID,
			"book_id", req.BookID,
			"borrower_id", req.BorrowerID,
		)
	}

	return s.resolveTicket(ctx, ticket), nil
}

// Approve moves a pending ticket to approved and takes the book off the shelf.
//
// Fails with NotFound if the ticket or the referenced book is absent,
// and with AlreadyCompleted if the ticket already reached its terminal
// state. A ticket already in approved passes through again unchanged
// apart from the approver stamp; the availability flip is idempotent.
func (s *LoanService) Approve(ctx context.Context, ticketID, adminID string) (*TicketView, error) {
	ticket, err := s.store.GetTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, store.ErrTicketNotFound) {
			return nil, domainerrors.NotFound("ticket not found")
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}

	if ticket.IsCompleted() {
		return nil, domainerrors.AlreadyCompleted("ticket is already completed")
	}

	// The book must exist before we commit the transition.
	book, err := s.store.GetBook(ctx, ticket.BookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	ticket.Status = domain.TicketApproved
	ticket.ApprovedBy = adminID
	ticket.Touch()

	// Ticket first, then book. If the book write fails the caller can
	// retry and the availability flip catches up.
	if err := s.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	book.IsAvailable = false
	book.Touch()
	if err := s.store.UpdateBook(ctx, book); err != nil {
		if s.logger != nil {
			s.logger.Error("Ticket approved but book availability update failed",
				"ticket_id", ticketID,
				"book_id", book.ID,
				"error", err,
			)
		}
		return nil, fmt.Errorf("update book availability: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Ticket approved",
			"ticket_id", ticketID,
			"admin_id", adminID,
			"book_id", book.ID,
		)
	}

	return s.resolveTicket(ctx, ticket), nil
}

// Complete closes a ticket and puts the book back on the shelf.
//
// Fails with NotFound if the ticket is absent and AlreadyCompleted if it
// already closed. A pending ticket that was never approved can be
// completed directly; the workflow does not require the approved stop.
func (s *LoanService) Complete(ctx context.Context, ticketID string) (*TicketView, error) {
	ticket, err := s.store.GetTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, store.ErrTicketNotFound) {
			return nil, domainerrors.NotFound("ticket not found")
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}

	if ticket.IsCompleted() {
		return nil, domainerrors.AlreadyCompleted("ticket is already completed")
	}

	book, err := s.store.GetBook(ctx, ticket.BookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	ticket.Status = domain.TicketCompleted
	ticket.ReturnDate = time.Now()
	ticket.Touch()

	if err := s.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	book.IsAvailable = true
	book.Touch()
	if err := s.store.UpdateBook(ctx, book); err != nil {
		if s.logger != nil {
			s.logger.Error("Ticket completed but book availability update failed",
				"ticket_id", ticketID,
				"book_id", book.ID,
				"error", err,
			)
		}
		return nil, fmt.Errorf("update book availability: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Ticket completed",
			"ticket_id", ticketID,
			"book_id", book.ID,
		)
	}

	return s.resolveTicket(ctx, ticket), nil
}

// ListPendingForUser returns one borrower's pending tickets with
// references resolved, most recently created first.
func (s *LoanService) ListPendingForUser(ctx context.Context, borrowerID string) ([]*TicketView, error) {
	tickets, err := s.store.ListTicketsByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	views := make([]*TicketView, 0, len(tickets))
	for _, ticket := range tickets {
		if !ticket.IsPending() {
			continue
		}
		views = append(views, s.resolveTicket(ctx, ticket))
	}
	return views, nil
}

// ListActiveForAdmin returns all tickets awaiting approval with
// references resolved, most recently created first.
//
// "Active" here means pending only. Open approved loans are visible
// through the borrower's own listing and the book availability flag.
func (s *LoanService) ListActiveForAdmin(ctx context.Context) ([]*TicketView, error) {
	tickets, err := s.store.ListTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	views := make([]*TicketView, 0, len(tickets))
	for _, ticket := range tickets {
		if !ticket.IsPending() {
			continue
		}
		views = append(views, s.resolveTicket(ctx, ticket))
	}
	return views, nil
}

// resolveTicket attaches the referenced book, borrower and approver.
func (s *LoanService) resolveTicket(ctx context.Context, ticket *domain.Ticket) *TicketView {
	view := &TicketView{Ticket: ticket}

	if book, err := s.store.GetBook(ctx, ticket.BookID); err == nil {
		view.Book = book
	}
	if borrower, err := s.store.GetUser(ctx, ticket.BorrowerID); err == nil {
		view.Borrower = summarize(borrower)
	}
	if ticket.ApprovedBy != "" {
		if approver, err := s.store.GetUser(ctx, ticket.ApprovedBy); err == nil {
			view.ApprovedByUser = summarize(approver)
		}
	}

	return view
}

func summarize(user *domain.User) *UserSummary {
	return &UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
