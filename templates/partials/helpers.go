package partials

import (
	"strconv"

	"shelf_life_app_go/services/shelflife"
)

// StatusClass returns the CSS class of a status badge.
func StatusClass(s shelflife.Status) string {
	switch s {
	case shelflife.StatusAcceptable:
		return "status-acceptable"
	case shelflife.StatusLimitAcceptable:
		return "status-limit"
	default:
		return "status-rejected"
	}
}

// StatusIcon returns the glyph shown next to a status.
func StatusIcon(s shelflife.Status) string {
	switch s {
	case shelflife.StatusAcceptable:
		return "✓"
	case shelflife.StatusLimitAcceptable:
		return "⚠"
	default:
		return "✗"
	}
}

// InputID is the DOM id of a field input.
func InputID(field string) string {
	return "date-" + field
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
