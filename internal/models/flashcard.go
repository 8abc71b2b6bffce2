package models

import (
	"time"

	"github.com/google/uuid"
)

type CardDifficulty string

const (
	CardEasy   CardDifficulty = "easy"
	CardMedium CardDifficulty = "medium"
	CardHard   CardDifficulty = "hard"
)

func (d CardDifficulty) Valid() bool {
	switch d {
	case CardEasy, CardMedium, CardHard:
		return true
	}
	return false
}

const DefaultDeckColor = "#6366F1"

type FlashcardDeck struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	SubjectID     *uuid.UUID `json:"subject_id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	Color         string     `json:"color"`
	LastStudiedAt *time.Time `json:"last_studied_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Flashcard struct {
	ID             uuid.UUID      `json:"id"`
	DeckID         uuid.UUID      `json:"deck_id"`
	Front          string         `json:"front"`
	Back           string         `json:"back"`
	Difficulty     CardDifficulty `json:"difficulty"`
	TimesReviewed  int            `json:"times_reviewed"`
	TimesCorrect   int            `json:"times_correct"`
	LastReviewedAt *time.Time     `json:"last_reviewed_at"`
	NextReviewAt   *time.Time     `json:"next_review_at"` // nil means due now
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type CreateDeckRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Color       string     `json:"color"`
	SubjectID   *uuid.UUID `json:"subject_id"`
}

type CreateCardRequest struct {
	Front      string         `json:"front"`
	Back       string         `json:"back"`
	Difficulty CardDifficulty `json:"difficulty"`
}

// ReviewCardRequest reports one review outcome. Correct is a pointer so
// an omitted field counts as a correct answer.
type ReviewCardRequest struct {
	Difficulty CardDifficulty `json:"difficulty"`
	Correct    *bool          `json:"correct"`
}
