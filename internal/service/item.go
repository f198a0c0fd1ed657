package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/curioapp/curio-server/internal/domain"
	domainerrors "github.com/curioapp/curio-server/internal/errors"
	"github.com/curioapp/curio-server/internal/id"
	"github.com/curioapp/curio-server/internal/schema"
	"github.com/curioapp/curio-server/internal/store"
)

// ItemService manages items within categories. Writes run the field
// data through the schema pipeline: normalize the payload, validate it
// against the owning category's current field config, and persist the
// normalized values verbatim on success.
type ItemService struct {
	store  *store.Store
	search *SearchService
	logger *slog.Logger
}

// NewItemService creates a new item service.
func NewItemService(store *store.Store, search *SearchService, logger *slog.Logger) *ItemService {
	return &ItemService{
		store:  store,
		search: search,
		logger: logger,
	}
}

// CreateItemRequest contains the data for a new item.
type CreateItemRequest struct {
	CategoryID  string          `json:"category_id" validate:"required"`
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"max=1000"`
	FieldData   schema.ValueMap `json:"field_data"`
	Images      []string        `json:"images" validate:"max=20"`
}

// UpdateItemRequest contains a partial item update. Nil fields are
// left unchanged; a non-nil FieldData replaces the stored values
// wholesale after normalization and validation.
type UpdateItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	FieldData   *schema.ValueMap `json:"field_data"`
	Images      *[]string        `json:"images" validate:"omitempty,max=20"`
}

// ListItemsRequest contains filters for listing items.
type ListItemsRequest struct {
	CategoryID string `json:"category_id"`
	Query      string `json:"query"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

// RenderedField pairs a field definition with its display string for
// one item. Fields the item has no value for render as a dash.
type RenderedField struct {
	FieldID string           `json:"field_id"`
	Name    string           `json:"name"`
	Type    schema.FieldType `json:"type"`
	Display string           `json:"display"`
}

// ItemView is an item together with its rendered field projection,
// built against the owning category's current field config.
type ItemView struct {
	*domain.Item
	Rendered []RenderedField `json:"rendered_fields"`
}

// ItemPage is one page of items with the total match count.
type ItemPage struct {
	Items  []*ItemView `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// Create validates field data against the category schema and
// persists a new item. Validation failures carry the full per-field
// error map, never just the first error.
func (s *ItemService) Create(ctx context.Context, userID string, req CreateItemRequest) (*ItemView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.ownedCategory(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	fieldData, err := checkFieldData(category.FieldConfig, req.FieldData)
	if err != nil {
		return nil, err
	}

	itemID, err := id.Generate(id.PrefixItem)
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}

	now := time.Now()
	item := &domain.Item{
		ID:          itemID,
		CategoryID:  category.ID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		FieldData:   fieldData,
		Images:      req.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.search.IndexItem(item, category)

	if s.logger != nil {
		s.logger.Info("Item created", "item_id", itemID, "category_id", category.ID, "user_id", userID)
	}

	return renderItem(item, category), nil
}

// Get returns an item owned by the user, with rendered fields.
func (s *ItemService) Get(ctx context.Context, userID, itemID string) (*ItemView, error) {
	item, err := s.getOwned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	category, err := s.ownedCategory(ctx, userID, item.CategoryID)
	if err != nil {
		return nil, err
	}

	return renderItem(item, category), nil
}

// List returns a page of the user's items, newest first, optionally
// filtered by category and a name/description substring query.
func (s *ItemService) List(ctx context.Context, userID string, req ListItemsRequest) (*ItemPage, error) {
	if req.CategoryID != "" {
		// Reject early so a bad category ID reads as NotFound rather
		// than an empty page.
		if _, err := s.ownedCategory(ctx, userID, req.CategoryID); err != nil {
			return nil, err
		}
	}

	filter := store.ItemFilter{
		CategoryID: req.CategoryID,
		Query:      req.Query,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}

	items, total, err := s.store.ListItems(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	// Render against each item's own category; one list can span
	// categories when no filter is set.
	categories := make(map[string]*domain.Category)
	views := make([]*ItemView, 0, len(items))
	for _, item := range items {
		category, ok := categories[item.CategoryID]
		if !ok {
			category, err = s.store.GetCategory(ctx, item.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("get category %s: %w", item.CategoryID, err)
			}
			categories[item.CategoryID] = category
		}
		views = append(views, renderItem(item, category))
	}

	normalized := filter
	normalized.Normalize()

	return &ItemPage{
		Items:  views,
		Total:  total,
		Limit:  normalized.Limit,
		Offset: normalized.Offset,
	}, nil
}

// Update applies a partial update to an item. New field data runs
// through the same normalize and validate pipeline as creation.
func (s *ItemService) Update(ctx context.Context, userID, itemID string, req UpdateItemRequest) (*ItemView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	item, err := s.getOwned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	category, err := s.ownedCategory(ctx, userID, item.CategoryID)
	if err != nil {
		return nil, err
	}

	if req.FieldData != nil {
		fieldData, err := checkFieldData(category.FieldConfig, *req.FieldData)
		if err != nil {
			return nil, err
		}
		item.FieldData = fieldData
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Images != nil {
		item.Images = *req.Images
	}
	item.Touch()

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.search.IndexItem(item, category)

	return renderItem(item, category), nil
}

// Delete removes an item.
func (s *ItemService) Delete(ctx context.Context, userID, itemID string) error {
	item, err := s.getOwned(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteItem(ctx, item.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.search.DeleteDocument(item.ID)

	if s.logger != nil {
		s.logger.Info("Item deleted", "item_id", item.ID, "user_id", userID)
	}

	return nil
}

// getOwned loads an item and verifies ownership. Items owned by other
// users return NotFound, never Forbidden.
func (s *ItemService) getOwned(ctx context.Context, userID, itemID string) (*domain.Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("item not found")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item.UserID != userID {
		return nil, domainerrors.NotFound("item not found")
	}
	return item, nil
}

func (s *ItemService) ownedCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category.UserID != userID {
		return nil, domainerrors.NotFound("category not found")
	}
	return category, nil
}

// checkFieldData runs the schema pipeline on raw field data and
// returns the normalized values ready to persist.
func checkFieldData(config schema.Schema, values schema.ValueMap) (schema.ValueMap, error) {
	normalized := schema.Normalize(config, values)
	result := schema.Validate(config, normalized)
	if !result.Valid {
		return nil, domainerrors.ValidationWithDetails("field validation failed", result.Errors)
	}
	return normalized, nil
}

// renderItem builds the display projection for an item against its
// category's current field config. Values for fields no longer in the
// config are omitted from the projection but stay in FieldData.
func renderItem(item *domain.Item, category *domain.Category) *ItemView {
	rendered := make([]RenderedField, 0, len(category.FieldConfig))
	for _, field := range category.FieldConfig {
		rendered = append(rendered, RenderedField{
			FieldID: field.ID,
			Name:    field.Name,
			Type:    field.Type,
			Display: schema.Render(field, item.FieldData[field.ID]),
		})
	}
	return &ItemView{
		Item:     item,
		Rendered: rendered,
	}
}
