// Package progress implements the plan analytics engine: per-day
// progress, behind-schedule detection, recovery ordering, streaks,
// experience points and chart series. Every function is a pure map from
// snapshots of tasks and daily logs to derived values; the package does
// no I/O and trusts its inputs (validation happens before data gets
// here).
package progress

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used across the application.
// It is fixed-width, so lexicographic comparison of formatted dates
// matches calendar ordering.
const DateLayout = "2006-01-02"

// FormatDate renders a time as a YYYY-MM-DD calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string. Inputs are assumed well-formed;
// a malformed string is a caller bug and yields the zero time.
func ParseDate(dateStr string) time.Time {
	t, _ := time.Parse(DateLayout, dateStr)
	return t
}

// AddDays returns the calendar date n days after dateStr. n may be
// negative. Month and year boundaries roll over correctly.
func AddDays(dateStr string, n int) string {
	return FormatDate(ParseDate(dateStr).AddDate(0, 0, n))
}

// CompareDates orders two calendar dates: negative if a < b, zero if
// equal, positive if a > b.
func CompareDates(a, b string) int {
	return strings.Compare(a, b)
}

// Today returns the current calendar date in the given timezone, falling
// back to the local zone when the name does not resolve.
func Today(timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return FormatDate(time.Now())
	}
	return FormatDate(time.Now().In(loc))
}

// DayLabel renders the chart axis label for a day index
func DayLabel(dayIndex int) string {
	return fmt.Sprintf("Day %d", dayIndex)
}
