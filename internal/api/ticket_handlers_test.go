package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketLifecycle_EndToEnd(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminID := ts.registerTestUser(t, "Root", "admin@example.com", "admin")
	borrowerID := ts.registerTestUser(t, "Asha", "asha@example.com", "user")
	adminToken := ts.loginTestUser(t, "admin@example.com")
	borrowerToken := ts.loginTestUser(t, "asha@example.com")

	bookID := ts.addTestBook(t, adminToken, "Dune", "")

	// Borrower requests the loan.
	resp := ts.api.Post("/api/transaction/ticket/issue",
		map[string]any{"book_id": bookID, "borrower_id": borrowerID},
		"Authorization: Bearer "+borrowerToken)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var issued testEnvelope[TicketResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &issued))
	assert.Equal(t, "pending", issued.Data.Status)
	assert.Equal(t, "issue", issued.Data.TransactionType)
	assert.True(t, issued.Data.DueDate.After(issued.Data.IssueDate))
	ticketID := issued.Data.ID

	// It shows up in the borrower's pending list and the admin queue.
	resp = ts.api.Get("/api/transaction/tickets/pending/"+borrowerID, "Authorization: Bearer "+borrowerToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var pending testEnvelope[ListTicketsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &pending))
	require.Len(t, pending.Data.Tickets, 1)
	require.NotNil(t, pending.Data.Tickets[0].Book)
	assert.Equal(t, bookID, pending.Data.Tickets[0].Book.ID)

	resp = ts.api.Get("/api/transaction/tickets/active/"+adminID, "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var active testEnvelope[ListTicketsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &active))
	require.Len(t, active.Data.Tickets, 1)
	assert.Equal(t, ticketID, active.Data.Tickets[0].ID)

	// Admin approves; the book goes unavailable.
	resp = ts.api.Put("/api/transaction/ticket/approve",
		map[string]any{"ticket_id": ticketID},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var approved testEnvelope[TicketResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &approved))
	assert.Equal(t, "approved", approved.Data.Status)
	assert.Equal(t, adminID, approved.Data.ApprovedBy)
	require.NotNil(t, approved.Data.ApprovedByUser)
	assert.Equal(t, adminID, approved.Data.ApprovedByUser.ID)

	resp = ts.api.Get("/api/book/get/" + bookID)
	require.Equal(t, http.StatusOK, resp.Code)

	var book testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &book))
	assert.False(t, book.Data.IsAvailable)

	// Borrower returns the book.
	resp = ts.api.Put("/api/transaction/ticket/complete",
		map[string]any{"ticket_id": ticketID, "borrower_id": borrowerID},
		"Authorization: Bearer "+borrowerToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var completed testEnvelope[TicketResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &completed))
	assert.Equal(t, "completed", completed.Data.Status)
	assert.False(t, completed.Data.ReturnDate.IsZero())

	resp = ts.api.Get("/api/book/get/" + bookID)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &book))
	assert.True(t, book.Data.IsAvailable)

	// Completed is terminal.
	resp = ts.api.Put("/api/transaction/ticket/complete",
		map[string]any{"ticket_id": ticketID, "borrower_id": borrowerID},
		"Authorization: Bearer "+borrowerToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	resp = ts.api.Put("/api/transaction/ticket/approve",
		map[string]any{"ticket_id": ticketID},
		"Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestTicketIssue_MissingBookDeferred(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	borrowerID := ts.registerTestUser(t, "Asha", "asha@example.com", "user")
	borrowerToken := ts.loginTestUser(t, "asha@example.com")

	// Issuing against a nonexistent book succeeds; the reference is only
	// checked at approval.
	resp := ts.api.Post("/api/transaction/ticket/issue",
		map[string]any{"book_id": "bok-missing", "borrower_id": borrowerID},
		"Authorization: Bearer "+borrowerToken)
	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func TestTicketApprove_MissingTicket(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.registerTestUser(t, "Root", "admin@example.com", "admin")
	adminToken := ts.loginTestUser(t, "admin@example.com")

	resp := ts.api.Put("/api/transaction/ticket/approve",
		map[string]any{"ticket_id": "tkt-missing"},
		"Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestTicketComplete_FromPending(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.registerTestUser(t, "Root", "admin@example.com", "admin")
	borrowerID := ts.registerTestUser(t, "Asha", "asha@example.com", "user")
	adminToken := ts.loginTestUser(t, "admin@example.com")
	borrowerToken := ts.loginTestUser(t, "asha@example.com")

	bookID := ts.addTestBook(t, adminToken, "Dune", "")

	resp := ts.api.Post("/api/transaction/ticket/issue",
		map[string]any{"book_id": bookID, "borrower_id": borrowerID},
		"Authorization: Bearer "+borrowerToken)
	require.Equal(t, http.StatusCreated, resp.Code)

	var issued testEnvelope[TicketResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &issued))

	// Cancelling a never-approved request goes straight to completed.
	resp = ts.api.Put("/api/transaction/ticket/complete",
		map[string]any{"ticket_id": issued.Data.ID, "borrower_id": borrowerID},
		"Authorization: Bearer "+borrowerToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var completed testEnvelope[TicketResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &completed))
	assert.Equal(t, "completed", completed.Data.Status)
}
