// Package search provides full-text search over a user's collections
// using Bleve. Items and categories are indexed into one unified index
// with type discrimination, scoped per user.
package search

import (
	"strings"

	"github.com/curioapp/curio-server/internal/domain"
	"github.com/curioapp/curio-server/internal/schema"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeItem     DocType = "item"
	DocTypeCategory DocType = "category"
)

// Document is the unified document structure for the Bleve index.
//
// Item documents denormalize the owning category's name and flatten
// searchable field values into one text blob, so one query covers
// everything a user typed about an item.
type Document struct {
	// Identity
	ID     string  `json:"id"`      // Original entity ID (itm-xxx, cat-xxx)
	Type   DocType `json:"type"`    // Discriminator for result grouping
	UserID string  `json:"user_id"` // Owner, every query filters on this

	// Primary searchable text
	// Item: item name, Category: category name
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Item-specific fields (empty for categories)
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"` // Denormalized for search
	FieldText    string `json:"field_text,omitempty"`    // Flattened text/select/date values

	// Tags collected from tag fields
	Tags []string `json:"tags,omitempty"`

	// Timestamps for sorting (unix millis)
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *Document) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"type":       string(d.Type),
		"user_id":    d.UserID,
		"name":       d.Name,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.CategoryID != "" {
		m["category_id"] = d.CategoryID
	}
	if d.CategoryName != "" {
		m["category_name"] = d.CategoryName
	}
	if d.FieldText != "" {
		m["field_text"] = d.FieldText
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}

	return m
}

// ItemToDocument converts a domain Item to a search Document.
// The owning category is needed to denormalize its name and to know
// which field values are text-like and worth indexing.
func ItemToDocument(item *domain.Item, category *domain.Category) *Document {
	doc := &Document{
		ID:           item.ID,
		Type:         DocTypeItem,
		UserID:       item.UserID,
		Name:         item.Name,
		Description:  item.Description,
		CategoryID:   item.CategoryID,
		CategoryName: category.Name,
		CreatedAt:    item.CreatedAt.UnixMilli(),
		UpdatedAt:    item.UpdatedAt.UnixMilli(),
	}

	var textParts []string
	for _, field := range category.FieldConfig {
		value, ok := item.FieldData[field.ID]
		if !ok || value.IsEmpty() {
			continue
		}

		switch field.Type {
		case schema.TypeText, schema.TypeSelect:
			textParts = append(textParts, value.StringForm())
		case schema.TypeTags:
			doc.Tags = append(doc.Tags, value.Items()...)
		}
	}
	doc.FieldText = strings.Join(textParts, " ")

	return doc
}

// CategoryToDocument converts a domain Category to a search Document.
func CategoryToDocument(c *domain.Category) *Document {
	return &Document{
		ID:          c.ID,
		Type:        DocTypeCategory,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.UnixMilli(),
		UpdatedAt:   c.UpdatedAt.UnixMilli(),
	}
}
