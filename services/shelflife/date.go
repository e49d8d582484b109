// Package shelflife holds the date masking, parsing and shelf-life rules used by
// the calculator. Everything here is pure: no I/O, no clocks unless one is passed
// in, and invalid input is reported as an absent value instead of an error.
package shelflife

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DisplayLayout is the only textual date shape accepted and produced.
const DisplayLayout = "DD/MM/YYYY"

// CalendarDate is a date without time of day or location.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate builds a date and reports false when the components do not
// name a real day (31/04, 29/02 on a common year, month 13...).
func NewCalendarDate(year int, month time.Month, day int) (CalendarDate, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	d := FromTime(t)
	if d.Year != year || d.Month != month || d.Day != day {
		return CalendarDate{}, false
	}
	return d, true
}

// FromTime drops the time of day of t, in t's own location.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Today returns the calendar date of now().
func Today(now func() time.Time) CalendarDate {
	if now == nil {
		now = time.Now
	}
	return FromTime(now())
}

// Time returns midnight UTC of the date.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts the date by n days (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// IsZero reports whether d is the zero value.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

func (d CalendarDate) String() string {
	return Format(d)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns to - from in whole days.
func DaysBetween(from, to CalendarDate) int {
	// Both sides are UTC midnights. Unix seconds cover every four-digit year,
	// unlike time.Duration which saturates after about 292 years.
	return int((to.Time().Unix() - from.Time().Unix()) / secondsPerDay)
}

// Format renders d as DD/MM/YYYY.
func Format(d CalendarDate) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// Reason tells why a text was not accepted as a date.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonIncompleteInput     Reason = "incomplete-input"
	ReasonMalformedSeparator  Reason = "malformed-separator"
	ReasonInvalidCalendarDate Reason = "invalid-calendar-date"
	ReasonSilentNormalization Reason = "silent-normalization-detected"
)

// segmentLengths are the exact widths of day, month and year.
var segmentLengths = [3]int{2, 2, 4}

// Parse reads a DD/MM/YYYY string. It returns false for anything that is not
// exactly a complete, existing date.
func Parse(text string) (CalendarDate, bool) {
	d, reason := ParseReason(text)
	return d, reason == ReasonNone
}

// ParseReason is Parse with the rejection reason exposed.
func ParseReason(text string) (CalendarDate, Reason) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return CalendarDate{}, ReasonIncompleteInput
	}

	parts := strings.Split(cleaned, "/")
	if len(parts) != 3 {
		if len(parts) < 3 {
			return CalendarDate{}, ReasonIncompleteInput
		}
		return CalendarDate{}, ReasonMalformedSeparator
	}

	// "11/12/2" must not become year 0002.
	values := [3]int{}
	for i, part := range parts {
		if len(part) != segmentLengths[i] {
			return CalendarDate{}, ReasonIncompleteInput
		}
		if !isDigits(part) {
			return CalendarDate{}, ReasonIncompleteInput
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return CalendarDate{}, ReasonIncompleteInput
		}
		values[i] = n
	}
	day, month, year := values[0], values[1], values[2]

	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return CalendarDate{}, ReasonInvalidCalendarDate
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	constructed := FromTime(t)
	if constructed.Day != day || int(constructed.Month) != month || constructed.Year != year {
		// time.Date normalizes out-of-range values instead of failing.
		return CalendarDate{}, ReasonSilentNormalization
	}

	return constructed, ReasonNone
}

// daysIn returns the number of days of month in year.
func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
