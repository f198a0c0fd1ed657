package domain

import (
	"time"

	"github.com/curioapp/curio-server/internal/schema"
)

// Item is one record in a category. FieldData maps field IDs from the
// owning category's schema to values; it is stored verbatim as given
// (after normalization and validation) and may carry IDs for fields
// that have since been removed from the schema.
type Item struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	FieldData   schema.ValueMap `json:"field_data"`
	Images      []string        `json:"images,omitempty"` // item-level gallery, upload URLs
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (i *Item) Touch() {
	i.UpdatedAt = time.Now()
}
