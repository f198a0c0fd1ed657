package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/curioapp/curio-server/internal/domain"
)

const (
	defaultItemLimit = 10
	maxItemLimit     = 100
)

// ItemFilter narrows and pages an item listing.
type ItemFilter struct {
	CategoryID string // Restrict to one category (empty for all)
	Query      string // Case-insensitive substring match on name and description
	Limit      int    // Page size (defaults to 10, capped at 100)
	Offset     int    // Number of items to skip
}

// Normalize applies defaults and caps.
func (f *ItemFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultItemLimit
	}
	if f.Limit > maxItemLimit {
		f.Limit = maxItemLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// CreateItem creates a new item.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) error {
	return s.Items.Create(ctx, item.ID, item)
}

// GetItem retrieves an item by ID.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.Items.Get(ctx, id)
}

// UpdateItem updates an existing item.
func (s *Store) UpdateItem(ctx context.Context, item *domain.Item) error {
	return s.Items.Update(ctx, item.ID, item)
}

// DeleteItem deletes an item by ID.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.Items.Delete(ctx, id)
}

// ListItems returns a page of a user's items, newest first, along with
// the total count of items matching the filter.
func (s *Store) ListItems(ctx context.Context, userID string, filter ItemFilter) ([]*domain.Item, int, error) {
	filter.Normalize()

	var items []*domain.Item
	var err error
	if filter.CategoryID != "" {
		items, err = s.Items.ListByIndex(ctx, "category", filter.CategoryID)
	} else {
		items, err = s.Items.ListByIndex(ctx, "user", userID)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}

	matched := items[:0]
	for _, item := range items {
		// Category listings still only ever expose the owner's items.
		if item.UserID != userID {
			continue
		}
		if filter.Query != "" && !matchesQuery(item, filter.Query) {
			continue
		}
		matched = append(matched, item)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)

	if filter.Offset >= total {
		return []*domain.Item{}, total, nil
	}

	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}

	return matched[filter.Offset:end], total, nil
}

// matchesQuery reports whether the item's name or description contains
// the query, case-insensitively.
func matchesQuery(item *domain.Item, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(item.Name), q) ||
		strings.Contains(strings.ToLower(item.Description), q)
}

// DeleteItemsByCategory removes every item in a category. Used when a
// category is deleted.
func (s *Store) DeleteItemsByCategory(ctx context.Context, categoryID string) error {
	ids, err := s.Items.IDsByIndex(ctx, "category", categoryID)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.Items.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete item %s: %w", id, err)
		}
	}

	return nil
}
