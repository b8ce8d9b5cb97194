package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lendlyapp/lendly-server/internal/domain"
	"github.com/lendlyapp/lendly-server/internal/service"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addCategory",
		Method:        http.MethodPost,
		Path:          "/api/book/category/add",
		Summary:       "Add category",
		Description:   "Creates a new book category",
		Tags:          []string{"Categories"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/book/category/getAll",
		Summary:     "List categories",
		Description: "Returns all book categories",
		Tags:        []string{"Categories"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "editCategory",
		Method:      http.MethodPut,
		Path:        "/api/book/category/edit/{id}",
		Summary:     "Edit category",
		Description: "Renames a book category",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleEditCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCategory",
		Method:      http.MethodDelete,
		Path:        "/api/book/category/delete/{id}",
		Summary:     "Delete category",
		Description: "Removes a category. Books keep their reference and are presented as uncategorized.",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteCategory)
}

// === DTOs ===

// CategoryRequest carries a category name.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=255" doc:"Category name"`
}

type AddCategoryInput struct {
	Authorization string `header:"Authorization"`
	Body          CategoryRequest
}

// CategoryResponse contains category data in API responses.
type CategoryResponse struct {
	ID        string    `json:"id" doc:"Category ID"`
	Name      string    `json:"name" doc:"Category name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

type CategoryOutput struct {
	Body CategoryResponse
}

type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories" doc:"List of categories"`
}

type ListCategoriesOutput struct {
	Body ListCategoriesResponse
}

type EditCategoryInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Category ID"`
	Body          CategoryRequest
}

type DeleteCategoryInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Category ID"`
}

// === Handlers ===

func (s *Server) handleAddCategory(ctx context.Context, input *AddCategoryInput) (*CategoryOutput, error) {
	if _, err := s.requireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	category, err := s.services.Catalog.AddCategory(ctx, service.CategoryRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: mapCategoryResponse(category)}, nil
}

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := s.services.Catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = mapCategoryResponse(c)
	}

	return &ListCategoriesOutput{Body: ListCategoriesResponse{Categories: resp}}, nil
}

func (s *Server) handleEditCategory(ctx context.Context, input *EditCategoryInput) (*CategoryOutput, error) {
	if _, err := s.requireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	category, err := s.services.Catalog.UpdateCategory(ctx, input.ID, service.CategoryRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: mapCategoryResponse(category)}, nil
}

func (s *Server) handleDeleteCategory(ctx context.Context, input *DeleteCategoryInput) (*MessageOutput, error) {
	if _, err := s.requireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteCategory(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Category deleted successfully"}}, nil
}

// === Mappers ===

func mapCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
