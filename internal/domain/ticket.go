package domain

import "time"

// TransactionType distinguishes the direction of a lending transaction.
type TransactionType string

const (
	// TransactionIssue is a request to borrow a book.
	TransactionIssue TransactionType = "issue"
	// TransactionReturn is a request to give a book back.
	TransactionReturn TransactionType = "return"
)

// TicketStatus represents where a ticket is in the lending workflow.
type TicketStatus string

const (
	// TicketPending means the ticket awaits admin approval.
	TicketPending TicketStatus = "pending"
	// TicketApproved means an admin approved the loan and the book is out.
	TicketApproved TicketStatus = "approved"
	// TicketCompleted means the book came back. Terminal state.
	TicketCompleted TicketStatus = "completed"
)

// Ticket records one lending transaction from request through return.
type Ticket struct {
	Record
	BookID          string          `json:"book_id"`
	BorrowerID      string          `json:"borrower_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Status          TicketStatus    `json:"status"`
	IssueDate       time.Time       `json:"issue_date"`
	DueDate         time.Time       `json:"due_date"`
	ReturnDate      time.Time       `json:"return_date,omitzero"`
	// ApprovedBy holds the admin's user ID once the ticket is approved.
	ApprovedBy string `json:"approved_by,omitempty"`
}

// IsPending returns true while the ticket awaits approval.
func (t *Ticket) IsPending() bool {
	return t.Status == TicketPending
}

// IsApproved returns true while the loan is open.
func (t *Ticket) IsApproved() bool {
	return t.Status == TicketApproved
}

// IsCompleted returns true once the ticket reached its terminal state.
func (t *Ticket) IsCompleted() bool {
	return t.Status == TicketCompleted
}

// IsOverdue reports whether an open loan is past its due date.
func (t *Ticket) IsOverdue(now time.Time) bool {
	return t.IsApproved() && now.After(t.DueDate)
}
