package schema

import (
	"bytes"
	"encoding/json/v2"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the wire shape of a field value.
type Kind int

// Value kinds. Absent covers both missing keys and JSON null.
const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
)

// Value is a single field value as stored in an item's field data.
// It is a tagged union over the shapes the wire format can carry:
// string, number, boolean, or a list of strings. Field data is
// deliberately loosely typed - the schema engine, not the storage
// layer, decides whether a value fits its field.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []string
}

// ValueMap maps field IDs to values. It may contain IDs no longer in
// the owning category's schema (stale data from an edited schema) and
// may omit IDs the schema defines - both are fine.
type ValueMap map[string]Value

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a string-list value.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{kind: KindList, list: items}
}

// Kind reports the value's wire shape.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload. Only meaningful for KindString.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload. Only meaningful for KindNumber.
func (v Value) Num() float64 { return v.num }

// Truth returns the boolean payload. Only meaningful for KindBool.
func (v Value) Truth() bool { return v.b }

// Items returns the list payload. Only meaningful for KindList.
func (v Value) Items() []string { return v.list }

// IsAbsent reports whether the value is missing or null.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsZero lets omitzero drop absent values when marshaling structs that
// embed a Value.
func (v Value) IsZero() bool { return v.kind == KindAbsent }

// IsEmpty reports whether the value is absent, null, or the empty
// string. This is the shape the required-field rule rejects.
func (v Value) IsEmpty() bool {
	return v.kind == KindAbsent || (v.kind == KindString && v.str == "")
}

// isFalsy mirrors JavaScript truthiness for the optional-field skip
// rule: absent, "", 0, NaN, and false all skip type checks. An empty
// list does not - lists are always truthy on the wire.
func (v Value) isFalsy() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return v.str == ""
	case KindNumber:
		return v.num == 0 || math.IsNaN(v.num)
	case KindBool:
		return !v.b
	default:
		return false
	}
}

// StringForm renders the value as a plain string, the fallback display
// form for text, textarea, select, number, and unknown field types.
func (v Value) StringForm() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}

// MarshalJSON emits the value in its native JSON shape. Absent values
// marshal as null; callers should omit them instead where possible.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindAbsent:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			// Non-finite numbers have no JSON form. They only occur
			// transiently between normalization and validation, but a
			// marshal must not fail on them.
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		return json.Marshal(v.list)
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// UnmarshalJSON accepts any JSON scalar or array. Arrays are coerced
// to string lists element by element; objects are kept as their raw
// JSON text so type validation can reject them with a precise message
// instead of the decoder swallowing them.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case 'n':
		*v = Value{}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
		return nil
	case '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		items := make([]string, 0, len(raw))
		for _, e := range raw {
			switch t := e.(type) {
			case string:
				items = append(items, t)
			case float64:
				items = append(items, formatNumber(t))
			case bool:
				items = append(items, strconv.FormatBool(t))
			case nil:
				items = append(items, "")
			default:
				items = append(items, fmt.Sprint(t))
			}
		}
		*v = Value{kind: KindList, list: items}
		return nil
	case '{':
		// Objects are not a legal field value shape. Preserve the raw
		// text so the validator reports a type mismatch per field.
		*v = String(string(data))
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*v = Number(f)
		return nil
	}
}

// asNumber converts the value the way JavaScript's Number() does for
// the shapes we accept: numbers pass through, numeric strings parse,
// everything else is NaN.
func (v Value) asNumber() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// formatNumber renders a float the way users typed it: no exponent
// for ordinary magnitudes, no trailing zeros.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
