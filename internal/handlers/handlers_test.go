package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studytrack-backend/internal/models"
	"studytrack-backend/internal/services"
)

// ─── Error Envelope Tests ───

func TestHandleServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"email": "Invalid email format"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "Email already registered"}, http.StatusConflict, "CONFLICT"},
		{"not found", &services.NotFoundError{Message: "Subject not found"}, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", &services.UnauthorizedError{Message: "Invalid credentials"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", &services.ForbiddenError{Message: "Access denied"}, http.StatusForbidden, "FORBIDDEN"},
		{"rate limited", &services.RateLimitError{Message: "Too many requests"}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/subjects", nil)
			rr := httptest.NewRecorder()

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected code %q, got %q", tc.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestHandleServiceError_ValidationFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
	rr := httptest.NewRecorder()

	handleServiceError(rr, req, &services.ValidationError{Fields: map[string]string{
		"password": "Password must be at least 8 characters",
	}})

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Error.Fields["password"] != "Password must be at least 8 characters" {
		t.Errorf("Expected password field error, got %v", resp.Error.Fields)
	}
}

func TestErrorResp_CarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("X-Request-ID", "req-123")

	resp := errorResp("NOT_FOUND", "Quiz not found", req)

	if resp.Error.RequestID != "req-123" {
		t.Errorf("Expected request ID 'req-123', got %q", resp.Error.RequestID)
	}
	if resp.Error.Message != "Quiz not found" {
		t.Errorf("Expected message 'Quiz not found', got %q", resp.Error.Message)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"message": "Created"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "Created" {
		t.Errorf("Expected message 'Created', got %q", result["message"])
	}
}

// ─── Request Shape Tests ───

func TestRegisterRequest_Parsing(t *testing.T) {
	body := map[string]string{
		"full_name": "Test User",
		"email":     "test@example.com",
		"password":  "StrongPass123",
	}
	jsonBody, _ := json.Marshal(body)

	var req models.RegisterRequest
	if err := json.NewDecoder(bytes.NewReader(jsonBody)).Decode(&req); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}

	if req.FullName != "Test User" {
		t.Errorf("Expected full_name 'Test User', got %q", req.FullName)
	}
	if req.Email != "test@example.com" {
		t.Errorf("Expected email 'test@example.com', got %q", req.Email)
	}
}

func TestCreateSubjectRequest_Parsing(t *testing.T) {
	jsonBody := []byte(`{
		"name": "Linear Algebra",
		"color": "#EF4444",
		"study_goal_hours": 6.5,
		"schedules": [
			{"day_of_week": "Mon", "start_time": "09:00", "end_time": "10:30", "location": "Room 204"}
		]
	}`)

	var req models.CreateSubjectRequest
	if err := json.NewDecoder(bytes.NewReader(jsonBody)).Decode(&req); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}

	if req.Name != "Linear Algebra" {
		t.Errorf("Expected name 'Linear Algebra', got %q", req.Name)
	}
	if req.StudyGoalHours != 6.5 {
		t.Errorf("Expected study_goal_hours 6.5, got %v", req.StudyGoalHours)
	}
	if len(req.Schedules) != 1 || req.Schedules[0].DayOfWeek != "Mon" {
		t.Errorf("Expected one Mon schedule, got %+v", req.Schedules)
	}
}

func TestCreateNoteRequest_Parsing(t *testing.T) {
	jsonBody := []byte(`{
		"subject_id": "a2aca9a3-5f3c-4fc8-9a4d-98d0a6a2f111",
		"title": "Eigenvalues recap",
		"content": "Av = lambda v; characteristic polynomial det(A - lambda I) = 0."
	}`)

	var req models.CreateNoteRequest
	if err := json.NewDecoder(bytes.NewReader(jsonBody)).Decode(&req); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}

	if req.Title != "Eigenvalues recap" {
		t.Errorf("Expected title 'Eigenvalues recap', got %q", req.Title)
	}
	if req.SubjectID.String() != "a2aca9a3-5f3c-4fc8-9a4d-98d0a6a2f111" {
		t.Errorf("Expected subject ID to round-trip, got %q", req.SubjectID)
	}
	if req.Content == "" {
		t.Error("Expected content to be populated")
	}
}

func TestUpdateNoteRequest_PartialFields(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantTitle   bool
		wantContent bool
	}{
		{"title only", `{"title": "New title"}`, true, false},
		{"content only", `{"content": "New content"}`, false, true},
		{"both", `{"title": "T", "content": "C"}`, true, true},
		{"neither", `{}`, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req models.UpdateNoteRequest
			if err := json.NewDecoder(bytes.NewReader([]byte(tc.body))).Decode(&req); err != nil {
				t.Fatalf("Failed to parse request body: %v", err)
			}

			if (req.Title != nil) != tc.wantTitle {
				t.Errorf("Expected title present=%v, got %v", tc.wantTitle, req.Title != nil)
			}
			if (req.Content != nil) != tc.wantContent {
				t.Errorf("Expected content present=%v, got %v", tc.wantContent, req.Content != nil)
			}
		})
	}
}

func TestDayNames(t *testing.T) {
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		if !dayNames[day] {
			t.Errorf("Expected %q to be a valid day", day)
		}
	}
	for _, bad := range []string{"Monday", "mon", "", "Fr"} {
		if dayNames[bad] {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}
}
