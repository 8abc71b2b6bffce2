package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"studytrack-backend/internal/models"
)

func TestExpandRecurrence_Daily(t *testing.T) {
	anchor := time.Date(2026, 4, 6, 18, 30, 0, 0, time.UTC) // Monday evening
	rule := models.RecurrenceRule{Frequency: "DAILY", Until: "2026-04-08"}

	sessions, groupID := ExpandRecurrence(rule, anchor, 45, SessionTemplate{SubjectID: uuid.New()})

	if len(sessions) != 3 {
		t.Fatalf("Expected 3 daily instances, got %d", len(sessions))
	}
	for i, s := range sessions {
		if s.StartTime == nil || s.EndTime == nil {
			t.Fatalf("Instance %d missing start or end time", i)
		}
		if s.StartTime.Hour() != 18 || s.StartTime.Minute() != 30 {
			t.Errorf("Instance %d lost anchor time-of-day: %v", i, s.StartTime)
		}
		expectedDay := anchor.AddDate(0, 0, i)
		if DateKey(*s.StartTime) != DateKey(expectedDay) {
			t.Errorf("Instance %d on %s, expected %s", i, DateKey(*s.StartTime), DateKey(expectedDay))
		}
		if got := s.EndTime.Sub(*s.StartTime); got != 45*time.Minute {
			t.Errorf("Instance %d duration %v, expected 45m", i, got)
		}
		if s.RecurrenceGroupID == nil || *s.RecurrenceGroupID != groupID {
			t.Errorf("Instance %d not linked to recurrence group %s", i, groupID)
		}
		if s.Status != models.SessionPlanned {
			t.Errorf("Instance %d status %s, expected PLANNED default", i, s.Status)
		}
	}
}

func TestExpandRecurrence_WeeklyByWeekday(t *testing.T) {
	anchor := time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC) // Sunday
	rule := models.RecurrenceRule{
		Frequency: "WEEKLY",
		Days:      []int{1, 3}, // Monday, Wednesday
		Until:     "2026-04-18",
	}

	sessions, _ := ExpandRecurrence(rule, anchor, 30, SessionTemplate{SubjectID: uuid.New()})

	if len(sessions) != 4 {
		t.Fatalf("Expected 4 instances (two Mondays, two Wednesdays), got %d", len(sessions))
	}
	for i, s := range sessions {
		wd := s.StartTime.Weekday()
		if wd != time.Monday && wd != time.Wednesday {
			t.Errorf("Instance %d falls on %s", i, wd)
		}
	}
}

func TestExpandRecurrence_WeeklyEmptyDays(t *testing.T) {
	anchor := time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC)
	rule := models.RecurrenceRule{Frequency: "WEEKLY", Until: "2026-04-30"}

	sessions, _ := ExpandRecurrence(rule, anchor, 30, SessionTemplate{SubjectID: uuid.New()})

	if len(sessions) != 0 {
		t.Errorf("Expected no instances for weekly rule without days, got %d", len(sessions))
	}
}

func TestExpandRecurrence_AnchorAfterUntil(t *testing.T) {
	anchor := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	rule := models.RecurrenceRule{Frequency: "DAILY", Until: "2026-04-20"}

	sessions, _ := ExpandRecurrence(rule, anchor, 30, SessionTemplate{SubjectID: uuid.New()})

	if len(sessions) != 0 {
		t.Errorf("Expected empty result when anchor date is past until, got %d instances", len(sessions))
	}
}

func TestExpandRecurrence_TemplateCarriedThrough(t *testing.T) {
	anchor := time.Date(2026, 4, 6, 7, 0, 0, 0, time.UTC)
	title := "Morning review"
	subjectID := uuid.New()

	sessions, _ := ExpandRecurrence(
		models.RecurrenceRule{Frequency: "DAILY", Until: "2026-04-06"},
		anchor, 25,
		SessionTemplate{
			SubjectID: subjectID,
			Title:     &title,
			FocusType: models.FocusActive,
			Status:    models.SessionInProgress,
		},
	)

	if len(sessions) != 1 {
		t.Fatalf("Expected single instance, got %d", len(sessions))
	}
	s := sessions[0]
	if s.SubjectID != subjectID {
		t.Errorf("Subject ID not carried through")
	}
	if s.Title == nil || *s.Title != title {
		t.Errorf("Title not carried through")
	}
	if s.FocusType != models.FocusActive || s.Status != models.SessionInProgress {
		t.Errorf("Focus/status not carried through: %s/%s", s.FocusType, s.Status)
	}
}
