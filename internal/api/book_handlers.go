package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lendlyapp/lendly-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addBook",
		Method:        http.MethodPost,
		Path:          "/api/book/add",
		Summary:       "Add book",
		Description:   "Adds a book to the catalog",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/book/getAll",
		Summary:     "List books",
		Description: "Returns the full catalog, most recent first",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/book/get/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "editBook",
		Method:      http.MethodPut,
		Path:        "/api/book/edit/{id}",
		Summary:     "Edit book",
		Description: "Updates catalog fields on a book",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleEditBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/book/delete/{id}",
		Summary:     "Delete book",
		Description: "Removes a book from the catalog",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "filterBooksByCategory",
		Method:      http.MethodGet,
		Path:        "/api/book/filterByCategory/{categoryId}",
		Summary:     "Filter books by category",
		Description: "Returns books in a category, most recent first",
		Tags:        []string{"Books"},
	}, s.handleFilterBooksByCategory)
}

// === DTOs ===

// AddBookRequest is the request body for adding a catalog entry.
type AddBookRequest struct {
	Name       string `json:"name" validate:"required,max=255" doc:"Book title"`
	Author     string `json:"author" validate:"required,max=255" doc:"Author name"`
	Image      string `json:"image,omitempty" validate:"omitempty,url" doc:"Cover image URL"`
	Language   string `json:"language,omitempty" doc:"Language"`
	Publisher  string `json:"publisher,omitempty" doc:"Publisher"`
	CategoryID string `json:"category_id,omitempty" doc:"Category ID"`
}

type AddBookInput struct {
	Authorization string `header:"Authorization"`
	Body          AddBookRequest
}

// BookResponse contains book data in API responses. Category is resolved
// when the reference is still valid.
type BookResponse struct {
	ID          string            `json:"id" doc:"Book ID"`
	Name        string            `json:"name" doc:"Book title"`
	Author      string            `json:"author" doc:"Author name"`
	Image       string            `json:"image,omitempty" doc:"Cover image URL"`
	Language    string            `json:"language,omitempty" doc:"Language"`
	Publisher   string            `json:"publisher,omitempty" doc:"Publisher"`
	IsAvailable bool              `json:"is_available" doc:"Whether the book can be loaned"`
	CategoryID  string            `json:"category_id,omitempty" doc:"Category ID"`
	Category    *CategoryResponse `json:"category,omitempty" doc:"Resolved category"`
	CreatedAt   time.Time         `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time         `json:"updated_at" doc:"Last update time"`
}

type BookOutput struct {
	Body BookResponse
}

type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"List of books"`
}

type ListBooksOutput struct {
	Body ListBooksResponse
}

type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// EditBookRequest carries optional catalog fields. Availability is owned
// by the loan workflow and cannot be set here.
type EditBookRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=255" doc:"Book title"`
	Author     *string `json:"author,omitempty" validate:"omitempty,min=1,max=255" doc:"Author name"`
	Image      *string `json:"image,omitempty" validate:"omitempty,url" doc:"Cover image URL"`
	Language   *string `json:"language,omitempty" doc:"Language"`
	Publisher  *string `json:"publisher,omitempty" doc:"Publisher"`
	CategoryID *string `json:"category_id,omitempty" doc:"Category ID"`
}

type EditBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	Body          EditBookRequest
}

type DeleteBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
}

type FilterBooksInput struct {
	CategoryID string `path:"categoryId" doc:"Category ID"`
}

// === Handlers ===

func (s *Server) handleAddBook(ctx context.Context, input *AddBookInput) (*BookOutput, error) {
	if _, err := s.requireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	book, err := s.services.Catalog.AddBook(ctx, service.AddBookRequest{
		Name:       input.Body.Name,
		Author:     input.Body.Author,
		Image:      input.Body.Image,
		Language:   input.Body.Language,
		Publisher:  input.Body.Publisher,
		CategoryID: input.Body.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := s.services.Catalog.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: mapBookResponses(books)}}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.services.Catalog.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleEditBook(ctx context.Context, input *EditBookInput) (*BookOutput, error) {
	if _, err := s.requireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	book, err := s.services.Catalog.UpdateBook(ctx, input.ID, service.UpdateBookRequest{
		Name:       input.Body.Name,
		Author:     input.Body.Author,
		Image:      input.Body.Image,
		Language:   input.Body.Language,
		Publisher:  input.Body.Publisher,
		CategoryID: input.Body.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*MessageOutput, error) {
	if _, err := s.requireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book deleted successfully"}}, nil
}

func (s *Server) handleFilterBooksByCategory(ctx context.Context, input *FilterBooksInput) (*ListBooksOutput, error) {
	books, err := s.services.Catalog.FilterBooksByCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: mapBookResponses(books)}}, nil
}

// === Mappers ===

func mapBookResponse(b *service.BookView) BookResponse {
	resp := BookResponse{
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
	if b.Category != nil {
		category := mapCategoryResponse(b.Category)
		resp.Category = &category
	}
	return resp
}

func mapBookResponses(books []*service.BookView) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = mapBookResponse(b)
	}
	return resp
}
