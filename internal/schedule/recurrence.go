package schedule

import (
	"time"

	"github.com/google/uuid"

	"studytrack-backend/internal/models"
)

// SessionTemplate carries the per-instance fields every generated
// session shares.
type SessionTemplate struct {
	SubjectID uuid.UUID
	Title     *string
	FocusType models.FocusType
	Status    models.SessionStatus
}

// ExpandRecurrence turns a recurrence rule plus an anchor start time
// into the full ordered set of session instances, all sharing one
// freshly minted recurrence group ID. The anchor supplies the
// time-of-day for every instance; enumeration starts on the anchor's
// calendar date and runs through rule.Until inclusive.
//
// A WEEKLY rule with an empty Days set, an unknown frequency, or an
// anchor date past Until all yield an empty slice, never an error.
func ExpandRecurrence(rule models.RecurrenceRule, anchor time.Time, durationMinutes int, tmpl SessionTemplate) ([]models.StudySession, uuid.UUID) {
	groupID := uuid.New()

	until, err := ParseDateKey(rule.Until, anchor.Location())
	if err != nil {
		return nil, groupID
	}

	status := tmpl.Status
	if status == "" {
		status = models.SessionPlanned
	}
	focus := tmpl.FocusType
	if focus == "" {
		focus = models.FocusDeep
	}

	weekdays := make(map[time.Weekday]bool, len(rule.Days))
	for _, d := range rule.Days {
		if d >= 0 && d <= 6 {
			weekdays[time.Weekday(d)] = true
		}
	}

	hour, minute, sec := anchor.Clock()

	var sessions []models.StudySession
	for day := startOfDay(anchor); !day.After(until); day = day.AddDate(0, 0, 1) {
		switch rule.Frequency {
		case "DAILY":
			// every enumerated day
		case "WEEKLY":
			if !weekdays[day.Weekday()] {
				continue
			}
		default:
			return nil, groupID
		}

		start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, sec, 0, day.Location())
		end := start.Add(time.Duration(durationMinutes) * time.Minute)
		gid := groupID

		sessions = append(sessions, models.StudySession{
			SubjectID:         tmpl.SubjectID,
			DurationMinutes:   durationMinutes,
			StartTime:         &start,
			EndTime:           &end,
			Title:             tmpl.Title,
			FocusType:         focus,
			Status:            status,
			RecurrenceGroupID: &gid,
		})
	}

	return sessions, groupID
}
