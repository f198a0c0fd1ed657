package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/curioapp/curio-server/internal/schema"
	"github.com/curioapp/curio-server/internal/service"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List items",
		Description: "Returns a page of the current user's items, newest first",
		Tags:        []string{"Items"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "createItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/items",
		Summary:     "Create item",
		Description: "Creates a new item; field data is validated against the category schema",
		Tags:        []string{"Items"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get item",
		Description: "Returns an item by ID with rendered field values",
		Tags:        []string{"Items"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/items/{id}",
		Summary:     "Update item",
		Description: "Updates an item; new field data is revalidated against the current schema",
		Tags:        []string{"Items"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{id}",
		Summary:     "Delete item",
		Description: "Deletes an item",
		Tags:        []string{"Items"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteItem)
}

// === DTOs ===

// RenderedFieldResponse is one display-ready field value.
type RenderedFieldResponse struct {
	FieldID string `json:"field_id" doc:"Field definition ID"`
	Name    string `json:"name" doc:"Field name"`
	Type    string `json:"type" doc:"Field type"`
	Display string `json:"display" doc:"Rendered display string"`
}

// ItemResponse contains item data in API responses.
type ItemResponse struct {
	ID             string                  `json:"id" doc:"Item ID"`
	CategoryID     string                  `json:"category_id" doc:"Owning category ID"`
	Name           string                  `json:"name" doc:"Item name"`
	Description    string                  `json:"description,omitempty" doc:"Item description"`
	FieldData      schema.ValueMap         `json:"field_data" doc:"Stored field values by field ID"`
	RenderedFields []RenderedFieldResponse `json:"rendered_fields" doc:"Display projection against the current schema"`
	Images         []string                `json:"images,omitempty" doc:"Gallery image URLs"`
	CreatedAt      time.Time               `json:"created_at" doc:"Creation time"`
	UpdatedAt      time.Time               `json:"updated_at" doc:"Last update time"`
}

// ListItemsInput contains query parameters for listing items.
type ListItemsInput struct {
	Authorization string `header:"Authorization"`
	CategoryID    string `query:"category_id" doc:"Restrict to one category"`
	Search        string `query:"search" doc:"Substring match on name and description"`
	Limit         int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size (default 10, max 100)"`
	Offset        int    `query:"offset" minimum:"0" doc:"Number of items to skip"`
}

// ListItemsResponse contains a page of items.
type ListItemsResponse struct {
	Items  []ItemResponse `json:"items" doc:"Page of items"`
	Total  int            `json:"total" doc:"Total items matching the filter"`
	Limit  int            `json:"limit" doc:"Applied page size"`
	Offset int            `json:"offset" doc:"Applied offset"`
}

// ListItemsOutput wraps the list items response for Huma.
type ListItemsOutput struct {
	Body ListItemsResponse
}

// CreateItemRequest is the request body for creating an item.
type CreateItemRequest struct {
	CategoryID  string          `json:"category_id" validate:"required" doc:"Owning category ID"`
	Name        string          `json:"name" validate:"required,min=1,max=255" doc:"Item name"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=1000" doc:"Item description"`
	FieldData   schema.ValueMap `json:"field_data,omitempty" doc:"Field values by field ID"`
	Images      []string        `json:"images,omitempty" validate:"omitempty,max=20" doc:"Gallery image URLs"`
}

// CreateItemInput wraps the create item request for Huma.
type CreateItemInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateItemRequest
}

// ItemOutput wraps the item response for Huma.
type ItemOutput struct {
	Body ItemResponse
}

// GetItemInput contains parameters for getting an item.
type GetItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
}

// UpdateItemRequest is the request body for updating an item.
type UpdateItemRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255" doc:"Item name"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=1000" doc:"Item description"`
	FieldData   *schema.ValueMap `json:"field_data,omitempty" doc:"Replacement field values"`
	Images      *[]string        `json:"images,omitempty" validate:"omitempty,max=20" doc:"Gallery image URLs"`
}

// UpdateItemInput wraps the update item request for Huma.
type UpdateItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
	Body          UpdateItemRequest
}

// DeleteItemInput contains parameters for deleting an item.
type DeleteItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
}

// === Handlers ===

func (s *Server) handleListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Items.List(ctx, userID, service.ListItemsRequest{
		CategoryID: input.CategoryID,
		Query:      input.Search,
		Limit:      input.Limit,
		Offset:     input.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]ItemResponse, len(page.Items))
	for i, view := range page.Items {
		items[i] = mapItemResponse(view)
	}

	return &ListItemsOutput{
		Body: ListItemsResponse{
			Items:  items,
			Total:  page.Total,
			Limit:  page.Limit,
			Offset: page.Offset,
		},
	}, nil
}

func (s *Server) handleCreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Items.Create(ctx, userID, service.CreateItemRequest{
		CategoryID:  input.Body.CategoryID,
		Name:        input.Body.Name,
		Description: input.Body.Description,
		FieldData:   input.Body.FieldData,
		Images:      input.Body.Images,
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItemResponse(view)}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *GetItemInput) (*ItemOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Items.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItemResponse(view)}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Items.Update(ctx, userID, input.ID, service.UpdateItemRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		FieldData:   input.Body.FieldData,
		Images:      input.Body.Images,
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItemResponse(view)}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *DeleteItemInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Items.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Item deleted"}}, nil
}

// === Helpers ===

func mapItemResponse(view *service.ItemView) ItemResponse {
	rendered := make([]RenderedFieldResponse, len(view.Rendered))
	for i, r := range view.Rendered {
		rendered[i] = RenderedFieldResponse{
			FieldID: r.FieldID,
			Name:    r.Name,
			Type:    string(r.Type),
			Display: r.Display,
		}
	}

	return ItemResponse{
		ID:             view.ID,
		CategoryID:     view.CategoryID,
		Name:           view.Name,
		Description:    view.Description,
		FieldData:      view.FieldData,
		RenderedFields: rendered,
		Images:         view.Images,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}
}
