package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lendlyapp/lendly-server/internal/domain"
	"github.com/lendlyapp/lendly-server/internal/service"
)

func (s *Server) registerTicketRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "issueTicket",
		Method:        http.MethodPost,
		Path:          "/api/transaction/ticket/issue",
		Summary:       "Issue loan ticket",
		Description:   "Creates a pending loan ticket for a book",
		Tags:          []string{"Transactions"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleIssueTicket)

	huma.Register(s.api, huma.Operation{
		OperationID: "approveTicket",
		Method:      http.MethodPut,
		Path:        "/api/transaction/ticket/approve",
		Summary:     "Approve loan ticket",
		Description: "Approves a pending ticket and marks the book unavailable",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleApproveTicket)

	huma.Register(s.api, huma.Operation{
		OperationID: "completeTicket",
		Method:      http.MethodPut,
		Path:        "/api/transaction/ticket/complete",
		Summary:     "Complete loan ticket",
		Description: "Marks a ticket returned and the book available again",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCompleteTicket)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPendingTickets",
		Method:      http.MethodGet,
		Path:        "/api/transaction/tickets/pending/{userId}",
		Summary:     "List pending tickets",
		Description: "Returns a borrower's pending tickets",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListPendingTickets)

	huma.Register(s.api, huma.Operation{
		OperationID: "listActiveTickets",
		Method:      http.MethodGet,
		Path:        "/api/transaction/tickets/active/{adminId}",
		Summary:     "List active tickets",
		Description: "Returns pending tickets awaiting approval across all borrowers",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListActiveTickets)
}

// === DTOs ===

// IssueTicketRequest is the request body for issuing a loan ticket.
type IssueTicketRequest struct {
	BookID     string `json:"book_id" validate:"required" doc:"Book ID"`
	BorrowerID string `json:"borrower_id" validate:"required" doc:"Borrower user ID"`
}

type IssueTicketInput struct {
	Authorization string `header:"Authorization"`
	Body          IssueTicketRequest
}

// ApproveTicketRequest is the request body for ticket approval. The
// authenticated admin is recorded as the approver.
type ApproveTicketRequest struct {
	TicketID string `json:"ticket_id" validate:"required" doc:"Ticket ID"`
	AdminID  string `json:"admin_id,omitempty" doc:"Accepted for client compatibility"`
}

type ApproveTicketInput struct {
	Authorization string `header:"Authorization"`
	Body          ApproveTicketRequest
}

// CompleteTicketRequest is the request body for completing a ticket.
type CompleteTicketRequest struct {
	TicketID   string `json:"ticket_id" validate:"required" doc:"Ticket ID"`
	BorrowerID string `json:"borrower_id" validate:"required" doc:"Borrower user ID"`
	AdminID    string `json:"admin_id,omitempty" doc:"Accepted for client compatibility"`
}

type CompleteTicketInput struct {
	Authorization string `header:"Authorization"`
	Body          CompleteTicketRequest
}

// UserSummaryResponse identifies a user on a ticket.
type UserSummaryResponse struct {
	ID    string `json:"id" doc:"User ID"`
	Name  string `json:"name" doc:"Full name"`
	Email string `json:"email" doc:"Email address"`
}

// TicketResponse contains ticket data with references resolved. Resolved
// fields are omitted when the referenced record is gone.
type TicketResponse struct {
	ID              string               `json:"id" doc:"Ticket ID"`
	BookID          string               `json:"book_id" doc:"Book ID"`
	BorrowerID      string               `json:"borrower_id" doc:"Borrower user ID"`
	TransactionType string               `json:"transaction_type" doc:"Transaction type: issue or return"`
	Status          string               `json:"status" doc:"Ticket status: pending, approved, or completed"`
	IssueDate       time.Time            `json:"issue_date" doc:"When the loan was requested"`
	DueDate         time.Time            `json:"due_date" doc:"When the book is due back"`
	ReturnDate      time.Time            `json:"return_date,omitzero" doc:"When the book was returned"`
	ApprovedBy      string               `json:"approved_by,omitempty" doc:"Approving admin's user ID"`
	Book            *BookResponse        `json:"book,omitempty" doc:"Resolved book"`
	Borrower        *UserSummaryResponse `json:"borrower,omitempty" doc:"Resolved borrower"`
	ApprovedByUser  *UserSummaryResponse `json:"approved_by_user,omitempty" doc:"Resolved approver"`
	CreatedAt       time.Time            `json:"created_at" doc:"Creation time"`
	UpdatedAt       time.Time            `json:"updated_at" doc:"Last update time"`
}

type TicketOutput struct {
	Body TicketResponse
}

type ListTicketsInput struct {
	Authorization string `header:"Authorization"`
	UserID        string `path:"userId" doc:"Borrower user ID"`
}

type ListActiveTicketsInput struct {
	Authorization string `header:"Authorization"`
	AdminID       string `path:"adminId" doc:"Admin user ID"`
}

type ListTicketsResponse struct {
	Tickets []TicketResponse `json:"tickets" doc:"List of tickets"`
}

type ListTicketsOutput struct {
	Body ListTicketsResponse
}

// === Handlers ===

func (s *Server) handleIssueTicket(ctx context.Context, input *IssueTicketInput) (*TicketOutput, error) {
	if _, err := s.requireOwner(ctx, input.Authorization, input.Body.BorrowerID); err != nil {
		return nil, err
	}

	ticket, err := s.services.Loans.Issue(ctx, service.IssueRequest{
		BookID:     input.Body.BookID,
		BorrowerID: input.Body.BorrowerID,
	})
	if err != nil {
		return nil, err
	}

	return &TicketOutput{Body: mapTicketResponse(ticket)}, nil
}

func (s *Server) handleApproveTicket(ctx context.Context, input *ApproveTicketInput) (*TicketOutput, error) {
	admin, err := s.requireAdmin(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	ticket, err := s.services.Loans.Approve(ctx, input.Body.TicketID, admin.ID)
	if err != nil {
		return nil, err
	}

	return &TicketOutput{Body: mapTicketResponse(ticket)}, nil
}

func (s *Server) handleCompleteTicket(ctx context.Context, input *CompleteTicketInput) (*TicketOutput, error) {
	if _, err := s.requireOwner(ctx, input.Authorization, input.Body.BorrowerID); err != nil {
		return nil, err
	}

	ticket, err := s.services.Loans.Complete(ctx, input.Body.TicketID)
	if err != nil {
		return nil, err
	}

	return &TicketOutput{Body: mapTicketResponse(ticket)}, nil
}

func (s *Server) handleListPendingTickets(ctx context.Context, input *ListTicketsInput) (*ListTicketsOutput, error) {
	if _, err := s.requireOwner(ctx, input.Authorization, input.UserID); err != nil {
		return nil, err
	}

	tickets, err := s.services.Loans.ListPendingForUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &ListTicketsOutput{Body: ListTicketsResponse{Tickets: mapTicketResponses(tickets)}}, nil
}

func (s *Server) handleListActiveTickets(ctx context.Context, input *ListActiveTicketsInput) (*ListTicketsOutput, error) {
	if _, err := s.requireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	tickets, err := s.services.Loans.ListActiveForAdmin(ctx)
	if err != nil {
		return nil, err
	}

	return &ListTicketsOutput{Body: ListTicketsResponse{Tickets: mapTicketResponses(tickets)}}, nil
}

// === Mappers ===

func mapTicketResponse(t *service.TicketView) TicketResponse {
	resp := TicketResponse{
		ID:              t.ID,
		BookID:          t.BookID,
		BorrowerID:      t.BorrowerID,
		TransactionType: string(t.TransactionType),
		Status:          string(t.Status),
		IssueDate:       t.IssueDate,
		DueDate:         t.DueDate,
		ReturnDate:      t.ReturnDate,
		ApprovedBy:      t.ApprovedBy,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.Book != nil {
		book := mapTicketBook(t.Book)
		resp.Book = &book
	}
	if t.Borrower != nil {
		resp.Borrower = &UserSummaryResponse{ID: t.Borrower.ID, Name: t.Borrower.Name, Email: t.Borrower.Email}
	}
	if t.ApprovedByUser != nil {
		resp.ApprovedByUser = &UserSummaryResponse{ID: t.ApprovedByUser.ID, Name: t.ApprovedByUser.Name, Email: t.ApprovedByUser.Email}
	}
	return resp
}

func mapTicketResponses(tickets []*service.TicketView) []TicketResponse {
	resp := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		resp[i] = mapTicketResponse(t)
	}
	return resp
}

// mapTicketBook maps a bare book record without category resolution.
func mapTicketBook(b *domain.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Name:        b.Name,
		Author:      b.Author,
		Image:       b.Image,
		Language:    b.Language,
		Publisher:   b.Publisher,
		IsAvailable: b.IsAvailable,
		CategoryID:  b.CategoryID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
