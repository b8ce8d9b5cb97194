package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The capability matrix: admin-only routes reject normal users,
// owner-only routes reject admins, and everything rejects missing or
// garbage credentials.

func TestPermissions_AdminOnlyRoutes(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.registerTestUser(t, "Asha", "user@example.com", "user")
	userToken := ts.loginTestUser(t, "user@example.com")

	tests := []struct {
		name   string
		method string
		path   string
		body   map[string]any
	}{
		{"add book", http.MethodPost, "/api/book/add", map[string]any{"name": "B", "author": "A"}},
		{"edit book", http.MethodPut, "/api/book/edit/bok-x", map[string]any{"name": "B"}},
		{"delete book", http.MethodDelete, "/api/book/delete/bok-x", nil},
		{"add category", http.MethodPost, "/api/book/category/add", map[string]any{"name": "Fiction"}},
		{"edit category", http.MethodPut, "/api/book/category/edit/cat-x", map[string]any{"name": "Fiction"}},
		{"delete category", http.MethodDelete, "/api/book/category/delete/cat-x", nil},
		{"approve ticket", http.MethodPut, "/api/transaction/ticket/approve", map[string]any{"ticket_id": "tkt-x"}},
		{"list active tickets", http.MethodGet, "/api/transaction/tickets/active/adm-x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []any{"Authorization: Bearer " + userToken}
			if tt.body != nil {
				args = append(args, tt.body)
			}
			resp := ts.api.Do(tt.method, tt.path, args...)
			assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())
		})
	}
}

func TestPermissions_OwnerRoutesExcludeAdmins(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminID := ts.registerTestUser(t, "Root", "admin@example.com", "admin")
	adminToken := ts.loginTestUser(t, "admin@example.com")

	resp := ts.api.Post("/api/transaction/ticket/issue",
		map[string]any{"book_id": "bok-x", "borrower_id": adminID},
		"Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/transaction/tickets/pending/"+adminID, "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())
}

func TestPermissions_OwnerRoutesRejectOtherUsers(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	targetID := ts.registerTestUser(t, "Target", "target@example.com", "user")
	ts.registerTestUser(t, "Other", "other@example.com", "user")
	otherToken := ts.loginTestUser(t, "other@example.com")

	resp := ts.api.Post("/api/transaction/ticket/issue",
		map[string]any{"book_id": "bok-x", "borrower_id": targetID},
		"Authorization: Bearer "+otherToken)
	assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/transaction/tickets/pending/"+targetID, "Authorization: Bearer "+otherToken)
	assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())
}

func TestPermissions_MissingAndGarbageCredentials(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/user/getAll")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/user/getAll", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/user/getAll", "Authorization: Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestPermissions_PublicCatalogRoutes(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/book/getAll")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/book/category/getAll")
	assert.Equal(t, http.StatusOK, resp.Code)
}
