package review

import (
	"strings"
	"time"
)

// ReportDateFormat is the required layout for report dates supplied by callers.
const ReportDateFormat = "2006-01-02"

// ParseDate normalizes a date-like value into a calendar date. Statement
// lines carry either a plain ISO date ("2025-07-28") or an ISO date-time with
// a UTC marker ("2025-07-28T00:00:00Z"); the time of day and zone are dropped
// so every rule compares calendar days. The second return is false when the
// value is absent or unparseable.
func ParseDate(raw any) (time.Time, bool) {
	s, _ := raw.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if strings.Contains(s, "T") {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			// No zone suffix at all, e.g. "2025-07-28T00:00:00".
			t, err = time.Parse("2006-01-02T15:04:05", s)
			if err != nil {
				return time.Time{}, false
			}
		}
		// Keep the wall-clock date, discard the time and zone.
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	t, err := time.Parse(ReportDateFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseReportDate parses the caller-supplied report date. Unlike statement
// dates, an invalid report date is a hard error: the whole review is scoped to
// it.
func ParseReportDate(s string) (time.Time, error) {
	return time.Parse(ReportDateFormat, s)
}

// daysBetween returns the number of whole days between two timestamps,
// ignoring order.
func daysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
