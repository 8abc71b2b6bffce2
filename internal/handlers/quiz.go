package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studytrack-backend/internal/middleware"
	"studytrack-backend/internal/models"
	"studytrack-backend/internal/repository"
)

type QuizHandler struct {
	quizRepo *repository.QuizRepo
	jobRepo  *repository.JobRepo
	redis    *redis.Client
}

func NewQuizHandler(quizRepo *repository.QuizRepo, jobRepo *repository.JobRepo, redisClient *redis.Client) *QuizHandler {
	return &QuizHandler{
		quizRepo: quizRepo,
		jobRepo:  jobRepo,
		redis:    redisClient,
	}
}

// Generate creates an empty quiz and queues a generation job; clients
// get a job ID to watch over WebSocket.
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "title is required", r))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "content is required", r))
		return
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 5
	}
	if req.NumQuestions > 20 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "num_questions must be 20 or fewer", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	quiz := &models.Quiz{
		UserID:         userID,
		SubjectID:      req.SubjectID,
		Title:          req.Title,
		TotalQuestions: req.NumQuestions,
	}
	if err := h.quizRepo.Create(r.Context(), quiz); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create quiz", r))
		return
	}

	configBytes, _ := json.Marshal(req)
	job := &models.Job{
		UserID:      userID,
		Type:        "quiz-generation",
		ReferenceID: quiz.ID,
		ConfigJSON:  configBytes,
	}
	if err := h.jobRepo.Create(r.Context(), job); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create job", r))
		return
	}

	jobBytes, _ := json.Marshal(job)
	h.redis.LPush(r.Context(), "queue:quiz-generation", string(jobBytes))

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  job.ID,
		"quiz_id": quiz.ID,
	})
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	quizzes, err := h.quizRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch quizzes", r))
		return
	}
	if quizzes == nil {
		quizzes = []*models.Quiz{}
	}

	writeJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	quiz, ok := h.ownedQuiz(w, r)
	if !ok {
		return
	}

	// Hide answers until the quiz has been submitted
	if !quiz.IsCompleted {
		for i := range quiz.Questions {
			quiz.Questions[i].CorrectOptionIndex = -1
			quiz.Questions[i].Explanation = ""
		}
	}

	writeJSON(w, http.StatusOK, quiz)
}

// Submit grades the quiz: score is the percentage of correct answers,
// rounded to the nearest integer.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	quiz, ok := h.ownedQuiz(w, r)
	if !ok {
		return
	}

	if quiz.IsCompleted {
		writeJSON(w, http.StatusConflict, errorResp("CONFLICT", "Quiz has already been submitted", r))
		return
	}
	if len(quiz.Questions) == 0 {
		writeJSON(w, http.StatusConflict, errorResp("CONFLICT", "Quiz questions are not ready yet", r))
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	byQuestion := make(map[uuid.UUID]models.QuizQuestion, len(quiz.Questions))
	for _, q := range quiz.Questions {
		byQuestion[q.ID] = q
	}

	answers := make(map[uuid.UUID]int, len(req.Answers))
	correct := make(map[uuid.UUID]bool, len(req.Answers))
	correctCount := 0
	for _, a := range req.Answers {
		q, ok := byQuestion[a.QuestionID]
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Answer references an unknown question", r))
			return
		}
		answers[a.QuestionID] = a.AnswerIndex
		if a.AnswerIndex == q.CorrectOptionIndex {
			correct[a.QuestionID] = true
			correctCount++
		}
	}

	score := int(math.Round(float64(correctCount) / float64(len(quiz.Questions)) * 100))

	if err := h.quizRepo.Submit(r.Context(), quiz.ID, answers, correct, score); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to submit quiz", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"score":         score,
		"correct_count": correctCount,
		"total":         len(quiz.Questions),
	})
}

func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	quiz, ok := h.ownedQuiz(w, r)
	if !ok {
		return
	}

	if err := h.quizRepo.Delete(r.Context(), quiz.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete quiz", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Quiz deleted"})
}

func (h *QuizHandler) ownedQuiz(w http.ResponseWriter, r *http.Request) (*models.Quiz, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return nil, false
	}

	userID := middleware.GetUserID(r.Context())

	quiz, err := h.quizRepo.GetByID(r.Context(), id)
	if err != nil || quiz.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Quiz not found", r))
		return nil, false
	}
	return quiz, true
}
