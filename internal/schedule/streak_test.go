package schedule

import (
	"testing"
	"time"
)

var streakRef = time.Date(2026, 5, 20, 14, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return streakRef.AddDate(0, 0, -n)
}

func TestComputeStreak_Empty(t *testing.T) {
	s := ComputeStreak(nil, streakRef)
	if s.Current != 0 || s.Longest != 0 || s.LastDate != "" {
		t.Errorf("Expected zero-valued streak for empty input, got %+v", s)
	}
}

func TestComputeStreak_ThreeConsecutiveDays(t *testing.T) {
	s := ComputeStreak([]time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}, streakRef)

	if s.Current != 3 {
		t.Errorf("Expected current streak 3, got %d", s.Current)
	}
	if s.Longest != 3 {
		t.Errorf("Expected longest streak 3, got %d", s.Longest)
	}
	if s.LastDate != DateKey(streakRef) {
		t.Errorf("Expected last date %s, got %s", DateKey(streakRef), s.LastDate)
	}
}

func TestComputeStreak_GapBreaksRun(t *testing.T) {
	s := ComputeStreak([]time.Time{daysAgo(0), daysAgo(3)}, streakRef)

	if s.Current != 1 {
		t.Errorf("Expected current streak 1 across a gap, got %d", s.Current)
	}
	if s.Longest != 1 {
		t.Errorf("Expected longest streak 1, got %d", s.Longest)
	}
}

func TestComputeStreak_StaleHistory(t *testing.T) {
	// Most recent study day is two days back: the current streak is
	// dead no matter how long the old run was.
	s := ComputeStreak([]time.Time{daysAgo(2), daysAgo(3), daysAgo(4), daysAgo(5)}, streakRef)

	if s.Current != 0 {
		t.Errorf("Expected current streak 0 for stale history, got %d", s.Current)
	}
	if s.Longest != 4 {
		t.Errorf("Expected longest streak 4 from history, got %d", s.Longest)
	}
	if s.LastDate != DateKey(daysAgo(2)) {
		t.Errorf("Expected last date %s, got %s", DateKey(daysAgo(2)), s.LastDate)
	}
}

func TestComputeStreak_AnchorsOnYesterday(t *testing.T) {
	s := ComputeStreak([]time.Time{daysAgo(1), daysAgo(2)}, streakRef)

	if s.Current != 2 {
		t.Errorf("Expected current streak 2 anchored on yesterday, got %d", s.Current)
	}
}

func TestComputeStreak_MultipleSessionsSameDay(t *testing.T) {
	morning := time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)
	night := time.Date(2026, 5, 20, 23, 0, 0, 0, time.UTC)

	s := ComputeStreak([]time.Time{morning, night, daysAgo(1)}, streakRef)

	if s.Current != 2 {
		t.Errorf("Expected same-day sessions to collapse to one day, got current %d", s.Current)
	}
}

func TestComputeStreak_LongestRunInMiddleOfHistory(t *testing.T) {
	times := []time.Time{
		daysAgo(0),
		daysAgo(10), daysAgo(11), daysAgo(12), daysAgo(13), daysAgo(14),
		daysAgo(20),
	}
	s := ComputeStreak(times, streakRef)

	if s.Current != 1 {
		t.Errorf("Expected current streak 1, got %d", s.Current)
	}
	if s.Longest != 5 {
		t.Errorf("Expected longest streak 5 from mid-history run, got %d", s.Longest)
	}
}
