package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/curioapp/curio-server/internal/color"
	"github.com/curioapp/curio-server/internal/domain"
	domainerrors "github.com/curioapp/curio-server/internal/errors"
	"github.com/curioapp/curio-server/internal/id"
	"github.com/curioapp/curio-server/internal/schema"
	"github.com/curioapp/curio-server/internal/store"
)

// CategoryService manages user-defined categories and their field
// schemas. All operations are scoped to the requesting user; a
// category owned by someone else behaves as if it does not exist.
type CategoryService struct {
	store  *store.Store
	search *SearchService
	logger *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(store *store.Store, search *SearchService, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		store:  store,
		search: search,
		logger: logger,
	}
}

// CreateCategoryRequest contains the data for a new category.
type CreateCategoryRequest struct {
	Name        string        `json:"name" validate:"required,min=1,max=255"`
	Description string        `json:"description" validate:"max=1000"`
	FieldConfig schema.Schema `json:"field_config"`
	Color       string        `json:"color" validate:"omitempty,hexcolor"`
	Icon        string        `json:"icon" validate:"max=50"`
}

// UpdateCategoryRequest contains a partial category update. Nil fields
// are left unchanged. Concurrent edits are resolved last write wins.
type UpdateCategoryRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string        `json:"description" validate:"omitempty,max=1000"`
	FieldConfig *schema.Schema `json:"field_config"`
	Color       *string        `json:"color" validate:"omitempty,hexcolor"`
	Icon        *string        `json:"icon" validate:"omitempty,max=50"`
}

// Create validates the field config and persists a new category.
func (s *CategoryService) Create(ctx context.Context, userID string, req CreateCategoryRequest) (*domain.Category, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	fieldConfig, err := prepareFieldConfig(req.FieldConfig)
	if err != nil {
		return nil, err
	}

	categoryID, err := id.Generate(id.PrefixCategory)
	if err != nil {
		return nil, fmt.Errorf("generate category ID: %w", err)
	}

	// Categories created without an explicit color get a stable one
	// derived from their name.
	if req.Color == "" {
		req.Color = color.ForCategory(req.Name)
	}

	now := time.Now()
	category := &domain.Category{
		ID:          categoryID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		FieldConfig: fieldConfig,
		Color:       req.Color,
		Icon:        req.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.search.IndexCategory(category)

	if s.logger != nil {
		s.logger.Info("Category created", "category_id", categoryID, "user_id", userID, "fields", len(fieldConfig))
	}

	return category, nil
}

// Get returns a category owned by the user.
func (s *CategoryService) Get(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	return s.getOwned(ctx, userID, categoryID)
}

// List returns all of the user's categories, oldest first.
func (s *CategoryService) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Update applies a partial update to a category. A new field config
// replaces the old one wholesale; item values referencing removed
// fields are kept, not purged, they simply stop being validated or
// rendered.
func (s *CategoryService) Update(ctx context.Context, userID, categoryID string, req UpdateCategoryRequest) (*domain.Category, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.getOwned(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.FieldConfig != nil {
		fieldConfig, err := prepareFieldConfig(*req.FieldConfig)
		if err != nil {
			return nil, err
		}
		category.FieldConfig = fieldConfig
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	category.Touch()

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.search.IndexCategory(category)

	return category, nil
}

// Delete removes a category and all of its items.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID string) error {
	if _, err := s.getOwned(ctx, userID, categoryID); err != nil {
		return err
	}

	// Collect item IDs before the cascade so the search index can be
	// cleaned up afterwards.
	itemIDs, err := s.store.Items.IDsByIndex(ctx, "category", categoryID)
	if err != nil {
		return fmt.Errorf("list category items: %w", err)
	}

	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.search.DeleteDocuments(append(itemIDs, categoryID))

	if s.logger != nil {
		s.logger.Info("Category deleted", "category_id", categoryID, "items_removed", len(itemIDs))
	}

	return nil
}

// getOwned loads a category and verifies ownership. Categories owned
// by other users return NotFound, never Forbidden, so IDs can't be
// probed.
func (s *CategoryService) getOwned(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
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

// prepareFieldConfig assigns IDs to new field definitions and checks
// the structural invariants of the resulting schema.
func prepareFieldConfig(fields schema.Schema) (schema.Schema, error) {
	out := make(schema.Schema, 0, len(fields))
	for _, f := range fields {
		if f.ID == "" {
			created, err := schema.NewField(f.Name, f.Type, f.Required, f.Options)
			if err != nil {
				return nil, domainerrors.Validation(err.Error())
			}
			f = created
		}
		out = append(out, f)
	}
	if err := out.Check(); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}
	return out, nil
}
