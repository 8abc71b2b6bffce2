package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studytrack-backend/internal/middleware"
	"studytrack-backend/internal/models"
	"studytrack-backend/internal/repository"
)

type AssignmentHandler struct {
	assignmentRepo *repository.AssignmentRepo
	subjectRepo    *repository.SubjectRepo
}

func NewAssignmentHandler(assignmentRepo *repository.AssignmentRepo, subjectRepo *repository.SubjectRepo) *AssignmentHandler {
	return &AssignmentHandler{assignmentRepo: assignmentRepo, subjectRepo: subjectRepo}
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "title is required", r))
		return
	}
	if req.DueDate.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "due_date is required", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	subject, err := h.subjectRepo.GetByID(r.Context(), req.SubjectID)
	if err != nil || subject.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Subject not found", r))
		return
	}

	assignment := &models.Assignment{
		SubjectID:   subject.ID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if err := h.assignmentRepo.Create(r.Context(), assignment); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create assignment", r))
		return
	}

	writeJSON(w, http.StatusCreated, assignment)
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var assignments []*models.Assignment
	var err error

	if v := r.URL.Query().Get("subject_id"); v != "" {
		subjectID, parseErr := uuid.Parse(v)
		if parseErr != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid subject ID", r))
			return
		}
		subject, getErr := h.subjectRepo.GetByID(r.Context(), subjectID)
		if getErr != nil || subject.UserID != userID {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Subject not found", r))
			return
		}
		assignments, err = h.assignmentRepo.ListBySubject(r.Context(), subjectID)
	} else {
		assignments, err = h.assignmentRepo.ListByUser(r.Context(), userID)
	}

	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch assignments", r))
		return
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}

	writeJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	assignment, ok := h.ownedAssignment(w, r)
	if !ok {
		return
	}

	var req models.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Title != "" {
		assignment.Title = req.Title
	}
	if !req.DueDate.IsZero() {
		assignment.DueDate = req.DueDate
	}
	assignment.Description = req.Description

	if err := h.assignmentRepo.Update(r.Context(), assignment); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update assignment", r))
		return
	}

	writeJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	assignment, ok := h.ownedAssignment(w, r)
	if !ok {
		return
	}

	var req struct {
		Status models.AssignmentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if !req.Status.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Unknown assignment status", r))
		return
	}

	if err := h.assignmentRepo.UpdateStatus(r.Context(), assignment.ID, req.Status); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update status", r))
		return
	}
	assignment.Status = req.Status

	writeJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	assignment, ok := h.ownedAssignment(w, r)
	if !ok {
		return
	}

	if err := h.assignmentRepo.Delete(r.Context(), assignment.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete assignment", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Assignment deleted"})
}

func (h *AssignmentHandler) ownedAssignment(w http.ResponseWriter, r *http.Request) (*models.Assignment, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid assignment ID", r))
		return nil, false
	}

	userID := middleware.GetUserID(r.Context())

	assignment, err := h.assignmentRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Assignment not found", r))
		return nil, false
	}

	subject, err := h.subjectRepo.GetByID(r.Context(), assignment.SubjectID)
	if err != nil || subject.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Assignment not found", r))
		return nil, false
	}
	return assignment, true
}
