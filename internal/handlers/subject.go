package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studytrack-backend/internal/middleware"
	"studytrack-backend/internal/models"
	"studytrack-backend/internal/repository"
	"studytrack-backend/internal/schedule"
)

var dayNames = map[string]bool{
	"Mon": true, "Tue": true, "Wed": true, "Thu": true,
	"Fri": true, "Sat": true, "Sun": true,
}

type SubjectHandler struct {
	subjectRepo *repository.SubjectRepo
	sessionRepo *repository.StudySessionRepo
}

func NewSubjectHandler(subjectRepo *repository.SubjectRepo, sessionRepo *repository.StudySessionRepo) *SubjectHandler {
	return &SubjectHandler{subjectRepo: subjectRepo, sessionRepo: sessionRepo}
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "name is required", r))
		return
	}
	for _, cs := range req.Schedules {
		if !dayNames[cs.DayOfWeek] {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "day_of_week must be Mon..Sun", r))
			return
		}
	}

	userID := middleware.GetUserID(r.Context())

	subject := &models.Subject{
		UserID:         userID,
		Name:           req.Name,
		Color:          req.Color,
		TeacherName:    req.TeacherName,
		TeacherEmail:   req.TeacherEmail,
		TeacherPhone:   req.TeacherPhone,
		StudyGoalHours: req.StudyGoalHours,
		Category:       req.Category,
		Difficulty:     req.Difficulty,
	}

	if err := h.subjectRepo.Create(r.Context(), subject); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create subject", r))
		return
	}

	if len(req.Schedules) > 0 {
		schedules := make([]models.ClassSchedule, len(req.Schedules))
		for i, cs := range req.Schedules {
			schedules[i] = models.ClassSchedule{
				DayOfWeek: cs.DayOfWeek,
				StartTime: cs.StartTime,
				EndTime:   cs.EndTime,
				Location:  cs.Location,
			}
		}
		if err := h.subjectRepo.ReplaceSchedules(r.Context(), subject.ID, schedules); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save class schedules", r))
			return
		}
		subject.Schedules = schedules
	}

	writeJSON(w, http.StatusCreated, subject)
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	subjects, err := h.subjectRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch subjects", r))
		return
	}
	if subjects == nil {
		subjects = []*models.Subject{}
	}

	writeJSON(w, http.StatusOK, subjects)
}

func (h *SubjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.ownedSubject(w, r)
	if !ok {
		return
	}

	// Recompute the streak from history so the response is current even
	// when the cached value went stale overnight.
	completed, err := h.sessionRepo.ListCompletedBySubject(r.Context(), subject.ID)
	if err == nil {
		starts := make([]time.Time, 0, len(completed))
		for _, c := range completed {
			if c.StartTime != nil {
				starts = append(starts, *c.StartTime)
			}
		}
		streak := schedule.ComputeStreak(starts, time.Now())
		if streak.Current != subject.Streak {
			subject.Streak = streak.Current
			h.subjectRepo.UpdateStreak(r.Context(), subject.ID, streak.Current)
		}
	}

	writeJSON(w, http.StatusOK, subject)
}

func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.ownedSubject(w, r)
	if !ok {
		return
	}

	var req models.CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "name is required", r))
		return
	}

	subject.Name = req.Name
	if req.Color != "" {
		subject.Color = req.Color
	}
	subject.TeacherName = req.TeacherName
	subject.TeacherEmail = req.TeacherEmail
	subject.TeacherPhone = req.TeacherPhone
	subject.StudyGoalHours = req.StudyGoalHours
	subject.Category = req.Category
	subject.Difficulty = req.Difficulty

	if err := h.subjectRepo.Update(r.Context(), subject); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update subject", r))
		return
	}

	if req.Schedules != nil {
		schedules := make([]models.ClassSchedule, len(req.Schedules))
		for i, cs := range req.Schedules {
			if !dayNames[cs.DayOfWeek] {
				writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "day_of_week must be Mon..Sun", r))
				return
			}
			schedules[i] = models.ClassSchedule{
				DayOfWeek: cs.DayOfWeek,
				StartTime: cs.StartTime,
				EndTime:   cs.EndTime,
				Location:  cs.Location,
			}
		}
		if err := h.subjectRepo.ReplaceSchedules(r.Context(), subject.ID, schedules); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save class schedules", r))
			return
		}
		subject.Schedules = schedules
	}

	writeJSON(w, http.StatusOK, subject)
}

func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.ownedSubject(w, r)
	if !ok {
		return
	}

	if err := h.subjectRepo.Delete(r.Context(), subject.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete subject", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Subject deleted"})
}

// ownedSubject loads the {id} subject and enforces ownership, writing
// the error response itself when the lookup fails.
func (h *SubjectHandler) ownedSubject(w http.ResponseWriter, r *http.Request) (*models.Subject, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid subject ID", r))
		return nil, false
	}

	userID := middleware.GetUserID(r.Context())

	subject, err := h.subjectRepo.GetByID(r.Context(), id)
	if err != nil || subject.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Subject not found", r))
		return nil, false
	}
	return subject, true
}
