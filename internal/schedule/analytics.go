package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"studytrack-backend/internal/models"
)

type DailyStudyData struct {
	Date     string `json:"date"`
	Minutes  int    `json:"minutes"`
	Sessions int    `json:"sessions"`
}

type SubjectStudyData struct {
	SubjectID    uuid.UUID `json:"subject_id"`
	SubjectName  string    `json:"subject_name"`
	SubjectColor string    `json:"subject_color"`
	TotalMinutes int       `json:"total_minutes"`
	SessionCount int       `json:"session_count"`
}

type StudySummary struct {
	TotalMinutesToday     int               `json:"total_minutes_today"`
	TotalMinutesThisWeek  int               `json:"total_minutes_this_week"`
	TotalMinutesThisMonth int               `json:"total_minutes_this_month"`
	TotalSessions         int               `json:"total_sessions"`
	AverageSessionMinutes int               `json:"average_session_minutes"`
	MostStudiedSubject    *SubjectStudyData `json:"most_studied_subject"`
	BestStudyHour         *int              `json:"best_study_hour"`
}

// Summarize buckets completed sessions into today / this week (Sunday
// start) / this month totals and derives the headline stats. Sessions
// without a start time still count toward totals and the average but
// never toward any date bucket.
func Summarize(sessions []models.CompletedSession, now time.Time) StudySummary {
	dayStart := startOfDay(now)
	weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var summary StudySummary
	totalMinutes := 0

	for _, s := range sessions {
		summary.TotalSessions++
		totalMinutes += s.DurationMinutes

		if s.StartTime == nil {
			continue
		}
		if !s.StartTime.Before(dayStart) {
			summary.TotalMinutesToday += s.DurationMinutes
		}
		if !s.StartTime.Before(weekStart) {
			summary.TotalMinutesThisWeek += s.DurationMinutes
		}
		if !s.StartTime.Before(monthStart) {
			summary.TotalMinutesThisMonth += s.DurationMinutes
		}
	}

	if summary.TotalSessions > 0 {
		summary.AverageSessionMinutes = int(math.Round(float64(totalMinutes) / float64(summary.TotalSessions)))
	}

	if bySubject := GroupBySubject(sessions); len(bySubject) > 0 {
		summary.MostStudiedSubject = &bySubject[0]
	}
	summary.BestStudyHour = BestStudyHour(sessions)

	return summary
}

// DailySeries returns exactly windowDays entries, one per calendar day
// ending at end, ascending and zero-filled so charts never see gaps.
func DailySeries(sessions []models.CompletedSession, windowDays int, end time.Time) []DailyStudyData {
	if windowDays <= 0 {
		return nil
	}

	first := startOfDay(end).AddDate(0, 0, -(windowDays - 1))
	series := make([]DailyStudyData, windowDays)
	index := make(map[string]int, windowDays)
	for i := range series {
		key := DateKey(first.AddDate(0, 0, i))
		series[i] = DailyStudyData{Date: key}
		index[key] = i
	}

	for _, s := range sessions {
		if s.StartTime == nil {
			continue
		}
		if i, ok := index[DateKey(*s.StartTime)]; ok {
			series[i].Minutes += s.DurationMinutes
			series[i].Sessions++
		}
	}

	return series
}

// GroupBySubject sums minutes and counts sessions per subject. Output
// is ordered by total minutes descending with ties broken by subject
// ID, so the first entry is the most-studied subject and repeated runs
// over the same input agree.
func GroupBySubject(sessions []models.CompletedSession) []SubjectStudyData {
	bySubject := make(map[uuid.UUID]*SubjectStudyData)
	for _, s := range sessions {
		entry, ok := bySubject[s.SubjectID]
		if !ok {
			color := s.SubjectColor
			if color == "" {
				color = models.DefaultSubjectColor
			}
			entry = &SubjectStudyData{
				SubjectID:    s.SubjectID,
				SubjectName:  s.SubjectName,
				SubjectColor: color,
			}
			bySubject[s.SubjectID] = entry
		}
		entry.TotalMinutes += s.DurationMinutes
		entry.SessionCount++
	}

	out := make([]SubjectStudyData, 0, len(bySubject))
	for _, entry := range bySubject {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalMinutes != out[j].TotalMinutes {
			return out[i].TotalMinutes > out[j].TotalMinutes
		}
		return out[i].SubjectID.String() < out[j].SubjectID.String()
	})
	return out
}

// BestStudyHour finds the local hour-of-day (0-23) with the most
// studied minutes. Ties go to the earlier hour; nil when no session
// has a start time.
func BestStudyHour(sessions []models.CompletedSession) *int {
	var hourMinutes [24]int
	any := false
	for _, s := range sessions {
		if s.StartTime == nil {
			continue
		}
		hourMinutes[s.StartTime.Hour()] += s.DurationMinutes
		any = true
	}
	if !any {
		return nil
	}

	best := 0
	for h := 1; h < 24; h++ {
		if hourMinutes[h] > hourMinutes[best] {
			best = h
		}
	}
	return &best
}
