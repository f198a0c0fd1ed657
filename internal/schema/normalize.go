package schema

import (
	"math"
	"strconv"
	"strings"
)

// tagSeparator is the literal separator tag input is split on. Tags
// containing a comma without a following space are not split, and
// internal whitespace is preserved verbatim.
const tagSeparator = ", "

// Normalize coerces raw wire values into the shapes their field types
// expect, ahead of validation. Coercions are deliberately shallow:
//
//   - numeric fields arriving as strings are parsed; an unparseable
//     string becomes NaN so the validator reports "must be a number"
//     instead of the value silently becoming zero
//   - tag fields arriving as a single delimited string are split on
//     ", " with empty segments dropped
//   - boolean fields arriving as checkbox-style strings are mapped to
//     strict booleans
//
// Anything that matches no coercion passes through unchanged, leaving
// the validator to produce the precise type error. Values for IDs not
// in the schema are carried through untouched.
func Normalize(s Schema, values ValueMap) ValueMap {
	if values == nil {
		return nil
	}

	out := make(ValueMap, len(values))
	for id, v := range values {
		out[id] = v
	}

	for _, f := range s {
		v, ok := out[f.ID]
		if !ok || v.IsAbsent() {
			continue
		}

		switch f.Type {
		case TypeNumber, TypeQuantity:
			if v.Kind() == KindString && strings.TrimSpace(v.Str()) != "" {
				n, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
				if err != nil {
					n = math.NaN()
				}
				out[f.ID] = Number(n)
			}

		case TypeTags:
			if v.Kind() == KindString {
				out[f.ID] = List(splitTags(v.Str())...)
			}

		case TypeBoolean:
			if v.Kind() == KindString {
				if b, ok := coerceBool(v.Str()); ok {
					out[f.ID] = Bool(b)
				}
			}
		}
	}

	return out
}

// splitTags splits delimited tag input on the literal ", " separator,
// dropping empty segments.
func splitTags(s string) []string {
	parts := strings.Split(s, tagSeparator)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// coerceBool maps checkbox-style string input to a strict boolean.
// Unrecognized strings are left alone for the validator to reject.
func coerceBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1":
		return true, true
	case "false", "off", "0", "":
		return false, true
	default:
		return false, false
	}
}
