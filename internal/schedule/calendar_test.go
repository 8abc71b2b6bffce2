package schedule

import (
	"testing"
	"time"
)

func TestDateKey_CollapsesSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 9, 8, 15, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 9, 22, 45, 0, 0, time.UTC)

	if DateKey(morning) != DateKey(evening) {
		t.Errorf("Expected same key for same calendar day, got %q and %q", DateKey(morning), DateKey(evening))
	}
	if DateKey(morning) != "2026-03-09" {
		t.Errorf("Expected 2026-03-09, got %q", DateKey(morning))
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"same day", "2026-03-09", "2026-03-09", 0},
		{"adjacent days", "2026-03-08", "2026-03-09", 1},
		{"month boundary", "2026-02-28", "2026-03-01", 1},
		{"reverse order", "2026-03-09", "2026-03-01", -8},
		{"malformed key", "not-a-date", "2026-03-09", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(tc.a, tc.b); got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}
