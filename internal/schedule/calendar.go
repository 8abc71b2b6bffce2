// Package schedule is the temporal engine behind the study tracker:
// calendar-day arithmetic, recurring session expansion, streak
// computation, study-time aggregation, and the spaced repetition
// scheduler. Every function is pure; callers pass the reference time
// so tests can pin "now" to a fixed instant.
package schedule

import "time"

const dateKeyLayout = "2006-01-02"

// DateKey collapses a timestamp to its local calendar-day key
// (YYYY-MM-DD). Two sessions on the same local day share one key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey parses a date key at midnight in the given location.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, key, loc)
}

// DaysBetween returns the whole-day difference b-a between two date
// keys. Malformed keys count as zero distance.
func DaysBetween(a, b string) int {
	ta, err := time.Parse(dateKeyLayout, a)
	if err != nil {
		return 0
	}
	tb, err := time.Parse(dateKeyLayout, b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
