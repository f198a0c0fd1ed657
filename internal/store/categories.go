package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/curioapp/curio-server/internal/domain"
)

// CreateCategory creates a new category.
func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	return s.Categories.Create(ctx, category.ID, category)
}

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.Categories.Get(ctx, id)
}

// UpdateCategory updates an existing category.
func (s *Store) UpdateCategory(ctx context.Context, category *domain.Category) error {
	return s.Categories.Update(ctx, category.ID, category)
}

// DeleteCategory deletes a category and all its items.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.DeleteItemsByCategory(ctx, id); err != nil {
		return fmt.Errorf("cascade delete items: %w", err)
	}
	return s.Categories.Delete(ctx, id)
}

// ListCategories returns all categories owned by a user, oldest first.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]*domain.Category, error) {
	categories, err := s.Categories.ListByIndex(ctx, "user", userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].CreatedAt.Before(categories[j].CreatedAt)
	})

	return categories, nil
}
