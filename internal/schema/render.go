package schema

import (
	"strconv"
	"strings"
)

// Display glyphs used by Render.
const (
	renderDash  = "-"
	renderCheck = "✓"
	renderCross = "✗"

	// renderDateLayout is the display form for date values. The web
	// client localizes dates itself; this is the server-side default.
	renderDateLayout = "Jan 2, 2006"

	// maxInlineImages is how many image URLs are shown individually
	// before the rest collapse into a "+N" count.
	maxInlineImages = 2
)

// Render maps a stored value and its field definition to a display
// string - the read-side counterpart of Normalize. It is pure and
// total: whatever the normalizer accepted, Render can display, and
// values of unknown legacy types fall back to their plain string form
// instead of failing.
func Render(f Field, v Value) string {
	// Absent, null, and empty-string values all display as a dash.
	// Zero and false are real values and render normally.
	if v.IsEmpty() {
		return renderDash
	}

	switch f.Type {
	case TypeBoolean:
		if v.Kind() == KindBool && v.Truth() {
			return renderCheck
		}
		if v.Kind() == KindBool {
			return renderCross
		}
		return v.StringForm()

	case TypeDate:
		if t, ok := parseDate(v); ok {
			return t.Format(renderDateLayout)
		}
		return v.StringForm()

	case TypeQuantity:
		s := v.StringForm()
		if f.Options.Unit != "" {
			return s + " " + f.Options.Unit
		}
		return s

	case TypeTags:
		if v.Kind() == KindList {
			return strings.Join(v.Items(), ", ")
		}
		return v.StringForm()

	case TypeImage:
		if f.Options.Multiple {
			return renderImages(v)
		}
		return v.StringForm()

	default:
		// text, textarea, select, number, and any unknown stored type.
		return v.StringForm()
	}
}

// renderImages shows the first two URLs of a multi-image value and
// collapses the remainder to a "+N" count.
func renderImages(v Value) string {
	if v.Kind() != KindList {
		return v.StringForm()
	}
	urls := v.Items()
	if len(urls) == 0 {
		return renderDash
	}
	if len(urls) <= maxInlineImages {
		return strings.Join(urls, ", ")
	}
	shown := strings.Join(urls[:maxInlineImages], ", ")
	return shown + " +" + strconv.Itoa(len(urls)-maxInlineImages)
}
