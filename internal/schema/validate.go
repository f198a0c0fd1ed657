package schema

import (
	"math"
	"strings"
	"time"
)

// Result is the outcome of validating a value map against a schema.
// Errors maps field IDs to human-readable messages; Valid is true iff
// the map is empty.
type Result struct {
	Valid  bool              `json:"isValid"`
	Errors map[string]string `json:"errors"`
}

// dateLayouts are tried in order when parsing date field values.
// Covers ISO dates and timestamps plus the common slash forms.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	time.RFC1123,
}

// Validate checks a value map against a schema and returns every
// failure at once. It never short-circuits: a form UI gets the full
// error map in a single round trip instead of fixing errors one by
// one. Values whose IDs are not in the schema are ignored entirely -
// they are stale data from an edited schema, not errors.
//
// Validate is pure: same inputs, same result, no hidden state. It
// re-reads the schema on every call, so a schema edited between two
// item operations is picked up immediately.
func Validate(s Schema, values ValueMap) Result {
	errs := make(map[string]string)

	for _, f := range s {
		v := values[f.ID]

		// Required rule runs first and suppresses type checks.
		if f.Required && v.IsEmpty() {
			errs[f.ID] = f.Name + " is required"
			continue
		}

		// Optional fields with nothing meaningful in them skip type
		// checks entirely - no type error for a value the user never
		// provided.
		if !f.Required && v.isFalsy() {
			continue
		}

		if msg := checkType(f, v); msg != "" {
			errs[f.ID] = msg
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// checkType applies the type-specific rule for one field. Returns an
// empty string when the value passes. Exhaustive over FieldType; an
// unknown type (legacy data) passes rather than crashing.
func checkType(f Field, v Value) string {
	switch f.Type {
	case TypeNumber, TypeQuantity:
		n := v.asNumber()
		if math.IsNaN(n) {
			return f.Name + " must be a number"
		}
		if f.Options.Min != nil && n < *f.Options.Min {
			return f.Name + " must be at least " + formatNumber(*f.Options.Min)
		}
		if f.Options.Max != nil && n > *f.Options.Max {
			return f.Name + " must be at most " + formatNumber(*f.Options.Max)
		}

	case TypeBoolean:
		if v.Kind() != KindBool {
			return f.Name + " must be true or false"
		}

	case TypeDate:
		if _, ok := parseDate(v); !ok {
			return f.Name + " must be a valid date"
		}

	case TypeSelect:
		// No choice list configured means any value passes.
		if len(f.Options.Choices) == 0 {
			return ""
		}
		if v.Kind() != KindString || !f.Options.hasChoice(v.Str()) {
			return f.Name + " must be one of: " + strings.Join(f.Options.Choices, ", ")
		}

	case TypeTags:
		if v.Kind() != KindList {
			return f.Name + " must be an array"
		}

	case TypeImage:
		// Only the multiple flag imposes structure. Single image
		// values are opaque URLs the engine never inspects.
		if f.Options.Multiple && v.Kind() != KindList {
			return f.Name + " must be an array for multiple images"
		}

	case TypeText, TypeTextarea:
		// Any value passes. Length limits are a UI concern.
	}

	return ""
}

// parseDate attempts to interpret a value as a date. Only strings can
// be dates on the wire.
func parseDate(v Value) (time.Time, bool) {
	if v.Kind() != KindString {
		return time.Time{}, false
	}
	s := strings.TrimSpace(v.Str())
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
