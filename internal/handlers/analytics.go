package handlers

import (
	"net/http"
	"strconv"
	"time"

	"studytrack-backend/internal/middleware"
	"studytrack-backend/internal/models"
	"studytrack-backend/internal/repository"
	"studytrack-backend/internal/schedule"
)

type AnalyticsHandler struct {
	sessionRepo *repository.StudySessionRepo
}

func NewAnalyticsHandler(sessionRepo *repository.StudySessionRepo) *AnalyticsHandler {
	return &AnalyticsHandler{sessionRepo: sessionRepo}
}

// Summary returns today/week/month totals, the most-studied subject
// and the best study hour.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	completed, ok := h.completedSessions(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, schedule.Summarize(completed, time.Now()))
}

// Daily returns a zero-filled per-day series, ?days= controls the
// window (default 7, max 90).
func (h *AnalyticsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "days must be a positive integer", r))
			return
		}
		days = parsed
	}
	if days > 90 {
		days = 90
	}

	completed, ok := h.completedSessions(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, schedule.DailySeries(completed, days, time.Now()))
}

// BySubject returns per-subject totals, most studied first.
func (h *AnalyticsHandler) BySubject(w http.ResponseWriter, r *http.Request) {
	completed, ok := h.completedSessions(w, r)
	if !ok {
		return
	}

	data := schedule.GroupBySubject(completed)
	if data == nil {
		data = []schedule.SubjectStudyData{}
	}
	writeJSON(w, http.StatusOK, data)
}

// Streak computes the account-level streak over every subject.
func (h *AnalyticsHandler) Streak(w http.ResponseWriter, r *http.Request) {
	completed, ok := h.completedSessions(w, r)
	if !ok {
		return
	}

	starts := make([]time.Time, 0, len(completed))
	for _, c := range completed {
		if c.StartTime != nil {
			starts = append(starts, *c.StartTime)
		}
	}

	writeJSON(w, http.StatusOK, schedule.ComputeStreak(starts, time.Now()))
}

func (h *AnalyticsHandler) completedSessions(w http.ResponseWriter, r *http.Request) ([]models.CompletedSession, bool) {
	userID := middleware.GetUserID(r.Context())

	completed, err := h.sessionRepo.ListCompletedByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch study history", r))
		return nil, false
	}
	return completed, true
}
