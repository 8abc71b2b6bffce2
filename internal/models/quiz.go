package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"user_id"`
	SubjectID      *uuid.UUID     `json:"subject_id"`
	Title          string         `json:"title"`
	TotalQuestions int            `json:"total_questions"`
	Score          *int           `json:"score"`
	IsCompleted    bool           `json:"is_completed"`
	CompletedAt    *time.Time     `json:"completed_at"`
	Questions      []QuizQuestion `json:"questions,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type QuizQuestion struct {
	ID                 uuid.UUID `json:"id"`
	QuizID             uuid.UUID `json:"quiz_id"`
	Question           string    `json:"question"`
	Options            []string  `json:"options"`
	CorrectOptionIndex int       `json:"correct_option_index"`
	Explanation        string    `json:"explanation"`
	UserAnswer         *int      `json:"user_answer"`
	IsCorrect          *bool     `json:"is_correct"`
}

type GenerateQuizRequest struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	NumQuestions int        `json:"num_questions"`
	SubjectID    *uuid.UUID `json:"subject_id"`
}

type SubmitQuizRequest struct {
	Answers []QuizAnswer `json:"answers"`
}

type QuizAnswer struct {
	QuestionID  uuid.UUID `json:"question_id"`
	AnswerIndex int       `json:"answer_index"`
}
