package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/curioapp/curio-server/internal/domain"
	"github.com/curioapp/curio-server/internal/schema"
	"github.com/curioapp/curio-server/internal/service"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns all of the current user's categories",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "createCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/categories",
		Summary:     "Create category",
		Description: "Creates a new category with a custom field schema",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategory",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Get category",
		Description: "Returns a category by ID",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCategory",
		Method:      http.MethodPatch,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Update category",
		Description: "Updates a category; a new field config replaces the old one",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCategory",
		Method:      http.MethodDelete,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Delete category",
		Description: "Deletes a category and all items in it",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteCategory)
}

// === DTOs ===

// CategoryResponse contains category data in API responses.
type CategoryResponse struct {
	ID          string        `json:"id" doc:"Category ID"`
	Name        string        `json:"name" doc:"Category name"`
	Description string        `json:"description,omitempty" doc:"Category description"`
	FieldConfig schema.Schema `json:"field_config" doc:"Custom field definitions"`
	Color       string        `json:"color,omitempty" doc:"Display color"`
	Icon        string        `json:"icon,omitempty" doc:"Display icon name"`
	CreatedAt   time.Time     `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time     `json:"updated_at" doc:"Last update time"`
}

// ListCategoriesInput contains parameters for listing categories.
type ListCategoriesInput struct {
	Authorization string `header:"Authorization"`
}

// ListCategoriesResponse contains a list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories" doc:"List of categories"`
}

// ListCategoriesOutput wraps the list categories response for Huma.
type ListCategoriesOutput struct {
	Body ListCategoriesResponse
}

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string        `json:"name" validate:"required,min=1,max=255" doc:"Category name"`
	Description string        `json:"description,omitempty" validate:"omitempty,max=1000" doc:"Category description"`
	FieldConfig schema.Schema `json:"field_config,omitempty" doc:"Custom field definitions"`
	Color       string        `json:"color,omitempty" validate:"omitempty,hexcolor" doc:"Display color (#RRGGBB)"`
	Icon        string        `json:"icon,omitempty" validate:"omitempty,max=50" doc:"Display icon name"`
}

// CreateCategoryInput wraps the create category request for Huma.
type CreateCategoryInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateCategoryRequest
}

// CategoryOutput wraps the category response for Huma.
type CategoryOutput struct {
	Body CategoryResponse
}

// GetCategoryInput contains parameters for getting a category.
type GetCategoryInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Category ID"`
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,min=1,max=255" doc:"Category name"`
	Description *string        `json:"description,omitempty" validate:"omitempty,max=1000" doc:"Category description"`
	FieldConfig *schema.Schema `json:"field_config,omitempty" doc:"Replacement field definitions"`
	Color       *string        `json:"color,omitempty" validate:"omitempty,hexcolor" doc:"Display color (#RRGGBB)"`
	Icon        *string        `json:"icon,omitempty" validate:"omitempty,max=50" doc:"Display icon name"`
}

// UpdateCategoryInput wraps the update category request for Huma.
type UpdateCategoryInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Category ID"`
	Body          UpdateCategoryRequest
}

// DeleteCategoryInput contains parameters for deleting a category.
type DeleteCategoryInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Category ID"`
}

// === Handlers ===

func (s *Server) handleListCategories(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	categories, err := s.services.Categories.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = mapCategoryResponse(c)
	}

	return &ListCategoriesOutput{Body: ListCategoriesResponse{Categories: resp}}, nil
}

func (s *Server) handleCreateCategory(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	category, err := s.services.Categories.Create(ctx, userID, service.CreateCategoryRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		FieldConfig: input.Body.FieldConfig,
		Color:       input.Body.Color,
		Icon:        input.Body.Icon,
	})
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: mapCategoryResponse(category)}, nil
}

func (s *Server) handleGetCategory(ctx context.Context, input *GetCategoryInput) (*CategoryOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	category, err := s.services.Categories.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: mapCategoryResponse(category)}, nil
}

func (s *Server) handleUpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*CategoryOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	category, err := s.services.Categories.Update(ctx, userID, input.ID, service.UpdateCategoryRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		FieldConfig: input.Body.FieldConfig,
		Color:       input.Body.Color,
		Icon:        input.Body.Icon,
	})
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: mapCategoryResponse(category)}, nil
}

func (s *Server) handleDeleteCategory(ctx context.Context, input *DeleteCategoryInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Categories.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Category deleted"}}, nil
}

// === Helpers ===

func mapCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		FieldConfig: c.FieldConfig,
		Color:       c.Color,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
