package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Field defines one custom field in a category schema.
// The ID is assigned at definition time and never changes afterwards -
// stored item values reference fields by ID, so renaming or reordering
// a field leaves existing data intact.
type Field struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  Options   `json:"options,omitzero"`
}

// Schema is a category's ordered list of field definitions. Order is
// display order only; validation does not depend on it.
type Schema []Field

// Schema definition errors.
var (
	ErrBlankFieldName = errors.New("field name is required")
	ErrUnknownType    = errors.New("unknown field type")
	ErrDuplicateID    = errors.New("duplicate field id")
)

// fieldIDAlphabet matches the base36 suffix the web client generates.
const (
	fieldIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	fieldIDSuffix   = 9
)

// NewField creates a field definition with a fresh unique ID.
// IDs combine a millisecond timestamp with a short random suffix -
// collision-resistant within a schema without needing coordination.
func NewField(name string, ft FieldType, required bool, opts Options) (Field, error) {
	if strings.TrimSpace(name) == "" {
		return Field{}, ErrBlankFieldName
	}
	if !ft.Valid() {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownType, ft)
	}

	suffix, err := gonanoid.Generate(fieldIDAlphabet, fieldIDSuffix)
	if err != nil {
		return Field{}, fmt.Errorf("generate field id: %w", err)
	}

	return Field{
		ID:       "field_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + suffix,
		Name:     name,
		Type:     ft,
		Required: required,
		Options:  opts,
	}, nil
}

// Add appends a field definition and returns the extended schema.
// The only rejection is a blank (trim-empty) name; everything else
// about a definition is the caller's business.
func (s Schema) Add(f Field) (Schema, error) {
	if strings.TrimSpace(f.Name) == "" {
		return s, ErrBlankFieldName
	}
	out := make(Schema, len(s), len(s)+1)
	copy(out, s)
	return append(out, f), nil
}

// Remove filters out the field with the given ID. Removing an ID that
// is not present is a no-op, not an error. Stored item values for the
// removed field are orphaned, never purged.
func (s Schema) Remove(id string) Schema {
	out := make(Schema, 0, len(s))
	for _, f := range s {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// FieldByID returns the field with the given ID, if present.
func (s Schema) FieldByID(id string) (Field, bool) {
	for _, f := range s {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Check verifies the schema's structural invariants: every field has a
// non-blank name, a known type, and an ID unique within the schema.
// Called when a category is created or its field config replaced, so
// malformed definitions are rejected before they are ever persisted.
func (s Schema) Check() error {
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if strings.TrimSpace(f.Name) == "" {
			return ErrBlankFieldName
		}
		if !f.Type.Valid() {
			return fmt.Errorf("%w: %q (field %q)", ErrUnknownType, f.Type, f.Name)
		}
		if f.ID == "" {
			return fmt.Errorf("field %q has no id", f.Name)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}
