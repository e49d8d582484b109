package shelflife

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDigits(t *testing.T) {
	tests := []struct {
		digits   string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"11", "11/"},
		{"111", "11/1"},
		{"1112", "11/12/"},
		{"11122", "11/12/2"},
		{"111220", "11/12/20"},
		{"1112202", "11/12/202"},
		{"11122025", "11/12/2025"},
		{"1112202599", "11/12/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDigits(tt.digits))
		})
	}
}

// typeAtEnd simulates typing one character at the end of the field.
func typeAtEnd(displayed, char string) MaskResult {
	raw := displayed + char
	return MaskKeystroke(displayed, raw, len(raw))
}

func TestMaskKeystrokeTypingSequence(t *testing.T) {
	steps := []struct {
		key       string
		displayed string
		cursor    int
	}{
		{"1", "1", 1},
		{"1", "11/", 2},
		{"1", "11/1", 4},
		{"2", "11/12/", 5},
		{"2", "11/12/2", 7},
		{"0", "11/12/20", 8},
		{"2", "11/12/202", 9},
		{"5", "11/12/2025", 10},
	}

	displayed := ""
	var last MaskResult
	for i, step := range steps {
		last = typeAtEnd(displayed, step.key)
		assert.Equal(t, step.displayed, last.Displayed, "step %d", i)
		assert.Equal(t, step.cursor, last.Cursor, "step %d", i)
		assert.False(t, last.Deleting)
		assert.LessOrEqual(t, len(last.Displayed), MaxDisplayLength)
		displayed = last.Displayed
	}

	require.True(t, last.HasDate)
	assert.Equal(t, date(2025, 12, 11), last.Date)
}

func TestMaskKeystrokeIntermediateStatesHaveNoDate(t *testing.T) {
	for _, prefix := range []string{"1", "11/", "11/12/", "11/12/2", "11/12/202"} {
		res := MaskKeystroke("", prefix, len(prefix))
		assert.False(t, res.HasDate, prefix)
	}
}

func TestMaskKeystrokeDeletingSeparator(t *testing.T) {
	raw := "1112/2025"
	res := MaskKeystroke("11/12/2025", raw, 2)

	assert.True(t, res.Deleting)
	assert.Equal(t, raw, res.Displayed)
	assert.Equal(t, 2, res.Cursor)
	assert.False(t, res.HasDate)
}

func TestMaskKeystrokeBackspaceAutoSeparator(t *testing.T) {
	// "11/" minus its trailing slash must stay "11", not be re-masked.
	res := MaskKeystroke("11/", "11", 2)
	assert.True(t, res.Deleting)
	assert.Equal(t, "11", res.Displayed)
	assert.Equal(t, 2, res.Cursor)
}

func TestMaskKeystrokeDeletionClampsCursor(t *testing.T) {
	res := MaskKeystroke("11/12/2025", "11/12/202", 42)
	assert.Equal(t, 9, res.Cursor)

	res = MaskKeystroke("11/12/2025", "11/12/202", -1)
	assert.Equal(t, 0, res.Cursor)
}

func TestMaskKeystrokeDeletionStillParses(t *testing.T) {
	// Selecting a trailing junk character and deleting it can leave a complete date.
	res := MaskKeystroke("11/12/2025x", "11/12/2025", 10)
	assert.True(t, res.Deleting)
	require.True(t, res.HasDate)
	assert.Equal(t, date(2025, 12, 11), res.Date)
}

func TestMaskKeystrokeStripsNonDigits(t *testing.T) {
	res := MaskKeystroke("", "1a1-1b2", 7)
	assert.Equal(t, "11/12/", res.Displayed)
	assert.Equal(t, 5, res.Cursor)
}

func TestMaskKeystrokeTruncatesPaste(t *testing.T) {
	res := MaskKeystroke("", "111220259999", 12)
	assert.Equal(t, "11/12/2025", res.Displayed)
	assert.Equal(t, MaxDisplayLength, res.Cursor)
	assert.True(t, res.HasDate)
}

func TestMaskKeystrokeCursorFollowsDigitInMiddle(t *testing.T) {
	// Typing "9" right after the first digit of "11/12/2025" (cursor was at 1).
	raw := "191/12/2025"
	res := MaskKeystroke("11/12/2025", raw, 2)

	assert.Equal(t, "19/11/2202", res.Displayed)
	// Two digits before the cursor in raw; the cursor lands after "19".
	assert.Equal(t, 2, res.Cursor)
}

func TestMaskKeystrokeCursorSkipsInsertedSeparator(t *testing.T) {
	// "11/1" + "2" typed at the end produces "11/12/"; cursor stays after "2", before "/".
	res := MaskKeystroke("11/1", "11/12", 5)
	assert.Equal(t, "11/12/", res.Displayed)
	assert.Equal(t, 5, res.Cursor)
}

func TestMaskKeystrokeCursorAtStart(t *testing.T) {
	res := MaskKeystroke("", "12", 0)
	assert.Equal(t, "12/", res.Displayed)
	assert.Equal(t, 0, res.Cursor)
}

func TestApplyCursor(t *testing.T) {
	assert.Equal(t, 5, ApplyCursor(5, "11/12/"))
	assert.Equal(t, 6, ApplyCursor(9, "11/12/"))
	assert.Equal(t, 0, ApplyCursor(-3, "11/12/"))
	assert.Equal(t, 0, ApplyCursor(4, ""))
}

func TestKeyAllowed(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		ctrl     bool
		meta     bool
		expected bool
	}{
		{name: "Digit", key: "7", expected: true},
		{name: "Zero", key: "0", expected: true},
		{name: "Backspace", key: "Backspace", expected: true},
		{name: "Delete", key: "Delete", expected: true},
		{name: "Arrow", key: "ArrowLeft", expected: true},
		{name: "Tab", key: "Tab", expected: true},
		{name: "Home", key: "Home", expected: true},
		{name: "End", key: "End", expected: true},
		{name: "Letter", key: "a", expected: false},
		{name: "Slash", key: "/", expected: false},
		{name: "Space", key: " ", expected: false},
		{name: "Enter", key: "Enter", expected: false},
		{name: "Ctrl+V", key: "v", ctrl: true, expected: true},
		{name: "Cmd+A uppercase", key: "A", meta: true, expected: true},
		{name: "Ctrl+Z", key: "z", ctrl: true, expected: false},
		{name: "Plain V", key: "v", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeyAllowed(tt.key, tt.ctrl, tt.meta))
		})
	}
}
