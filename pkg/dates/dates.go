package dates

import (
	"math"
	"time"
)

const dayLayout = "2006-01-02"

// FormatDay renders t as a YYYY-MM-DD string in UTC.
func FormatDay(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// ParseDay parses a YYYY-MM-DD string. Datetime strings are accepted too;
// anything past the date part is ignored.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	if len(s) > len(dayLayout) {
		return time.Parse(dayLayout, s[:len(dayLayout)])
	}
	return time.Parse(dayLayout, s)
}

// DaysBetween returns the whole-day difference b-a, floored. A b before a
// yields a negative count.
func DaysBetween(a, b time.Time) int {
	return int(math.Floor(float64(b.Sub(a)) / float64(24*time.Hour)))
}
