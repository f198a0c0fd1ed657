// Package schema implements the dynamic field schema engine at the core
// of Curio. A category's schema is an ordered list of typed field
// definitions created at runtime; items carry loosely typed value maps
// that are normalized, validated, and rendered against that schema.
//
// Everything in this package is a pure, synchronous transformation over
// in-memory data. Persistence, transport, and presentation live
// elsewhere and call in through Normalize, Validate, and Render.
package schema

// FieldType is the closed set of field types a category schema can use.
// Adding a type means adding a constant here plus a match arm in
// Validate, Normalize, and Render - nothing else enumerates types.
type FieldType string

// Supported field types.
const (
	TypeText     FieldType = "text"     // single-line free text
	TypeTextarea FieldType = "textarea" // multi-line free text
	TypeNumber   FieldType = "number"   // finite number, optional min/max
	TypeBoolean  FieldType = "boolean"  // strict true/false
	TypeDate     FieldType = "date"     // date string, parse-checked
	TypeImage    FieldType = "image"    // URL or list of URLs when multiple
	TypeSelect   FieldType = "select"   // one of an enumerated choice list
	TypeTags     FieldType = "tags"     // list of free-text tags
	TypeQuantity FieldType = "quantity" // number with a display-only unit
)

// FieldTypes lists every supported type in a stable order, for API
// documentation and option validation.
var FieldTypes = []FieldType{
	TypeText,
	TypeTextarea,
	TypeNumber,
	TypeBoolean,
	TypeDate,
	TypeImage,
	TypeSelect,
	TypeTags,
	TypeQuantity,
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeTextarea, TypeNumber, TypeBoolean, TypeDate,
		TypeImage, TypeSelect, TypeTags, TypeQuantity:
		return true
	}
	return false
}

// IsNumeric reports whether values of this type are validated as
// numbers (number and quantity share the same rule; quantity only adds
// a display unit).
func (t FieldType) IsNumeric() bool {
	return t == TypeNumber || t == TypeQuantity
}

// Options is the per-field configuration bag. All entries are optional
// and each field type consults only a subset:
//
//	text, textarea  placeholder, defaultValue
//	number          min, max, step, defaultValue
//	quantity        min, max, step, unit, defaultValue
//	boolean         defaultValue
//	date            defaultValue
//	select          options (the choice list), defaultValue
//	tags            defaultValue
//	image           multiple
//
// Unused options are carried but ignored, so a field can change type
// without losing its configuration.
type Options struct {
	Placeholder string   `json:"placeholder,omitempty"`
	Default     Value    `json:"defaultValue,omitzero"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Choices     []string `json:"options,omitempty"`
	Multiple    bool     `json:"multiple,omitempty"`
}

// hasChoice reports whether s is one of the configured select choices.
func (o Options) hasChoice(s string) bool {
	for _, c := range o.Choices {
		if c == s {
			return true
		}
	}
	return false
}

// DefaultValue returns the initial value for a field: the configured
// default if one is set, otherwise a type-appropriate zero. Fields
// without a natural zero (text, date, select, single image) start
// absent so required validation still fires.
func DefaultValue(f Field) Value {
	if !f.Options.Default.IsAbsent() {
		return f.Options.Default
	}
	switch f.Type {
	case TypeBoolean:
		return Bool(false)
	case TypeTags:
		return List()
	case TypeImage:
		if f.Options.Multiple {
			return List()
		}
		return Value{}
	default:
		return Value{}
	}
}
