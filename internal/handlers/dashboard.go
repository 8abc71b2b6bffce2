package handlers

import (
	"net/http"
	"time"

	"studytrack-backend/internal/middleware"
	"studytrack-backend/internal/models"
	"studytrack-backend/internal/repository"
	"studytrack-backend/internal/schedule"
)

type DashboardHandler struct {
	sessionRepo    *repository.StudySessionRepo
	assignmentRepo *repository.AssignmentRepo
	flashRepo      *repository.FlashcardRepo
}

func NewDashboardHandler(sessionRepo *repository.StudySessionRepo, assignmentRepo *repository.AssignmentRepo, flashRepo *repository.FlashcardRepo) *DashboardHandler {
	return &DashboardHandler{
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		flashRepo:      flashRepo,
	}
}

// Get assembles the home screen in one request: study summary, streak,
// the last 7 days, today's plan, upcoming deadlines and due cards.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	now := time.Now()

	completed, err := h.sessionRepo.ListCompletedByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch study history", r))
		return
	}

	starts := make([]time.Time, 0, len(completed))
	for _, c := range completed {
		if c.StartTime != nil {
			starts = append(starts, *c.StartTime)
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todaysPlan, err := h.sessionRepo.ListPlanned(r.Context(), userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch today's plan", r))
		return
	}
	if todaysPlan == nil {
		todaysPlan = []*models.StudySession{}
	}

	upcoming, err := h.assignmentRepo.ListUpcoming(r.Context(), userID, now.AddDate(0, 0, 7))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch assignments", r))
		return
	}
	pendingAssignments := len(upcoming)
	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}
	if upcoming == nil {
		upcoming = []*models.Assignment{}
	}

	dueCards := 0
	decks, err := h.flashRepo.ListDecksByUser(r.Context(), userID)
	if err == nil {
		for _, deck := range decks {
			cards, err := h.flashRepo.ListDueCards(r.Context(), deck.ID, now)
			if err != nil {
				continue
			}
			dueCards += len(cards)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary":              schedule.Summarize(completed, now),
		"streak":               schedule.ComputeStreak(starts, now),
		"daily":                schedule.DailySeries(completed, 7, now),
		"todays_sessions":      todaysPlan,
		"upcoming_assignments": upcoming,
		"pending_assignments":  pendingAssignments,
		"due_cards":            dueCards,
	})
}
