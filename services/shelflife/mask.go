package shelflife

import "strings"

const (
	// MaxDigits is the DDMMYYYY capacity of a masked field.
	MaxDigits = 8
	// MaxDisplayLength is len("DD/MM/YYYY").
	MaxDisplayLength = 10
	// Separator is inserted between day, month and year.
	Separator = "/"
)

// MaskResult is the outcome of one keystroke on a masked date field.
//
// Cursor is a target offset: the host control applies it with ApplyCursor once
// it has accepted Displayed.
type MaskResult struct {
	Displayed string
	Cursor    int
	Date      CalendarDate
	HasDate   bool
	Deleting  bool
}

// MaskKeystroke turns the raw content of a field right after a keystroke into
// the next displayed string.
//
// previousDisplayed must be the Displayed value of the previous call for the
// same field (or the initial text of the field).
func MaskKeystroke(previousDisplayed, rawEdited string, cursorOffsetInRaw int) MaskResult {
	if len(rawEdited) < len(previousDisplayed) {
		// Deleting: keep exactly what the user left, separators included.
		result := MaskResult{
			Displayed: rawEdited,
			Cursor:    clamp(cursorOffsetInRaw, 0, len(rawEdited)),
			Deleting:  true,
		}
		result.Date, result.HasDate = Parse(rawEdited)
		return result
	}

	digits := extractDigits(rawEdited)
	formatted := FormatDigits(digits)

	result := MaskResult{
		Displayed: formatted,
		Cursor:    cursorAfterDigits(formatted, digitsBefore(rawEdited, cursorOffsetInRaw)),
	}
	result.Date, result.HasDate = Parse(formatted)
	return result
}

// FormatDigits lays out up to MaxDigits digits as DD/MM/YYYY, adding the
// separator after a complete day or month so the user never types it.
func FormatDigits(digits string) string {
	if len(digits) > MaxDigits {
		digits = digits[:MaxDigits]
	}

	switch n := len(digits); {
	case n == 0:
		return ""
	case n <= 2:
		if n == 2 {
			return digits + Separator
		}
		return digits
	case n <= 4:
		out := digits[:2] + Separator + digits[2:]
		if n == 4 {
			out += Separator
		}
		return out
	default:
		return digits[:2] + Separator + digits[2:4] + Separator + digits[4:]
	}
}

// ApplyCursor is the second step of a keystroke: once the host control holds
// hostText, the target offset is clamped into it.
func ApplyCursor(target int, hostText string) int {
	return clamp(target, 0, len(hostText))
}

func extractDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// digitsBefore counts the digits in raw[:cursor].
func digitsBefore(raw string, cursor int) int {
	cursor = clamp(cursor, 0, len(raw))
	count := 0
	for i := 0; i < cursor; i++ {
		if isDigit(raw[i]) {
			count++
		}
	}
	return count
}

// cursorAfterDigits returns the offset right after the n-th digit of
// formatted, skipping separators. Zero digits puts the cursor at the start.
func cursorAfterDigits(formatted string, n int) int {
	pos := 0
	count := 0
	for i := 0; i < len(formatted) && count < n; i++ {
		if isDigit(formatted[i]) {
			count++
		}
		pos = i + 1
	}
	return pos
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NavigationKeys are the non-digit keys a masked field lets through.
var NavigationKeys = []string{
	"Backspace",
	"Delete",
	"ArrowLeft",
	"ArrowRight",
	"ArrowUp",
	"ArrowDown",
	"Tab",
	"Home",
	"End",
}

// clipboardKeys are allowed together with Ctrl or Meta.
var clipboardKeys = []string{"a", "c", "v", "x"}

// KeyAllowed is the key filter that runs before a keystroke reaches the field.
// key uses KeyboardEvent.key naming.
func KeyAllowed(key string, ctrl, meta bool) bool {
	for _, k := range NavigationKeys {
		if key == k {
			return true
		}
	}
	if ctrl || meta {
		lower := strings.ToLower(key)
		for _, k := range clipboardKeys {
			if lower == k {
				return true
			}
		}
	}
	return len(key) == 1 && isDigit(key[0])
}
