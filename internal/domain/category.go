package domain

import (
	"time"

	"github.com/curioapp/curio-server/internal/schema"
)

// Category is a user-defined grouping with an attached field schema.
// FieldConfig is defined at runtime by the owner and drives validation
// and rendering of every item in the category.
type Category struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	FieldConfig schema.Schema `json:"field_config"`
	Color       string        `json:"color,omitempty"` // display color, #RRGGBB
	Icon        string        `json:"icon,omitempty"`  // display icon name
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (c *Category) Touch() {
	c.UpdatedAt = time.Now()
}
