package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"studytrack-backend/internal/models"
)

// Wednesday afternoon; the week (Sunday start) began 2026-06-07 and the
// month on 2026-06-01.
var analyticsNow = time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)

func completedAt(t time.Time, minutes int, subjectID uuid.UUID, name string) models.CompletedSession {
	return models.CompletedSession{
		SubjectID:       subjectID,
		SubjectName:     name,
		SubjectColor:    "#3B82F6",
		DurationMinutes: minutes,
		StartTime:       &t,
	}
}

func TestSummarize_Buckets(t *testing.T) {
	math := uuid.New()
	sessions := []models.CompletedSession{
		completedAt(analyticsNow.Add(-2*time.Hour), 30, math, "Math"),                // today
		completedAt(time.Date(2026, 6, 8, 9, 0, 0, 0, time.UTC), 60, math, "Math"),   // this week
		completedAt(time.Date(2026, 6, 2, 20, 0, 0, 0, time.UTC), 45, math, "Math"),  // this month
		completedAt(time.Date(2026, 5, 28, 10, 0, 0, 0, time.UTC), 90, math, "Math"), // older
	}

	s := Summarize(sessions, analyticsNow)

	if s.TotalMinutesToday != 30 {
		t.Errorf("Expected 30 minutes today, got %d", s.TotalMinutesToday)
	}
	if s.TotalMinutesThisWeek != 90 {
		t.Errorf("Expected 90 minutes this week, got %d", s.TotalMinutesThisWeek)
	}
	if s.TotalMinutesThisMonth != 135 {
		t.Errorf("Expected 135 minutes this month, got %d", s.TotalMinutesThisMonth)
	}
	if s.TotalSessions != 4 {
		t.Errorf("Expected 4 sessions, got %d", s.TotalSessions)
	}
	if s.AverageSessionMinutes != 56 { // 225/4 = 56.25 rounds to 56
		t.Errorf("Expected average 56, got %d", s.AverageSessionMinutes)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, analyticsNow)

	if s.TotalSessions != 0 || s.AverageSessionMinutes != 0 {
		t.Errorf("Expected zero totals on empty input, got %+v", s)
	}
	if s.MostStudiedSubject != nil {
		t.Errorf("Expected nil most-studied subject on empty input")
	}
	if s.BestStudyHour != nil {
		t.Errorf("Expected nil best hour on empty input")
	}
}

func TestDailySeries_ZeroFill(t *testing.T) {
	series := DailySeries(nil, 7, analyticsNow)

	if len(series) != 7 {
		t.Fatalf("Expected 7 entries, got %d", len(series))
	}
	for i, d := range series {
		if d.Minutes != 0 || d.Sessions != 0 {
			t.Errorf("Entry %d not zero-filled: %+v", i, d)
		}
		if i > 0 && DaysBetween(series[i-1].Date, d.Date) != 1 {
			t.Errorf("Dates not contiguous ascending around entry %d: %s -> %s", i, series[i-1].Date, d.Date)
		}
	}
	if series[6].Date != DateKey(analyticsNow) {
		t.Errorf("Expected series to end on reference day %s, got %s", DateKey(analyticsNow), series[6].Date)
	}
}

func TestDailySeries_AggregatesPerDay(t *testing.T) {
	subj := uuid.New()
	sameDay := time.Date(2026, 6, 9, 8, 0, 0, 0, time.UTC)
	sessions := []models.CompletedSession{
		completedAt(sameDay, 20, subj, "Bio"),
		completedAt(sameDay.Add(10*time.Hour), 40, subj, "Bio"),
		completedAt(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC), 99, subj, "Bio"), // outside window
	}

	series := DailySeries(sessions, 7, analyticsNow)

	found := false
	for _, d := range series {
		if d.Date == "2026-06-09" {
			found = true
			if d.Minutes != 60 || d.Sessions != 2 {
				t.Errorf("Expected 60 minutes across 2 sessions on 2026-06-09, got %+v", d)
			}
		} else if d.Minutes != 0 {
			t.Errorf("Unexpected minutes on %s: %d", d.Date, d.Minutes)
		}
	}
	if !found {
		t.Fatalf("Window missing 2026-06-09")
	}
}

func TestGroupBySubject_OrderAndIdempotence(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	sessions := []models.CompletedSession{
		completedAt(analyticsNow, 30, a, "Algebra"),
		completedAt(analyticsNow, 90, b, "Biology"),
		completedAt(analyticsNow, 30, a, "Algebra"),
	}

	first := GroupBySubject(sessions)
	second := GroupBySubject(sessions)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output across runs, got %+v then %+v", first, second)
	}
	if len(first) != 2 {
		t.Fatalf("Expected 2 subjects, got %d", len(first))
	}
	if first[0].SubjectID != b || first[0].TotalMinutes != 90 {
		t.Errorf("Expected Biology (90m) first, got %+v", first[0])
	}
	if first[1].TotalMinutes != 60 || first[1].SessionCount != 2 {
		t.Errorf("Expected Algebra with 60m over 2 sessions, got %+v", first[1])
	}
}

func TestGroupBySubject_DefaultColor(t *testing.T) {
	s := models.CompletedSession{SubjectID: uuid.New(), SubjectName: "Chem", DurationMinutes: 10}
	out := GroupBySubject([]models.CompletedSession{s})

	if len(out) != 1 || out[0].SubjectColor != models.DefaultSubjectColor {
		t.Errorf("Expected default color for subject without one, got %+v", out)
	}
}

func TestBestStudyHour_TieGoesToEarlierHour(t *testing.T) {
	subj := uuid.New()
	sessions := []models.CompletedSession{
		completedAt(time.Date(2026, 6, 9, 21, 0, 0, 0, time.UTC), 50, subj, "Math"),
		completedAt(time.Date(2026, 6, 8, 7, 0, 0, 0, time.UTC), 50, subj, "Math"),
	}

	hour := BestStudyHour(sessions)
	if hour == nil || *hour != 7 {
		t.Errorf("Expected tie to resolve to hour 7, got %v", hour)
	}
}
