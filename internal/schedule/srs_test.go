package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"studytrack-backend/internal/models"
)

var reviewNow = time.Date(2026, 7, 14, 10, 30, 0, 0, time.UTC)

func TestNextReviewAt_Intervals(t *testing.T) {
	tests := []struct {
		difficulty models.CardDifficulty
		wantDays   int
	}{
		{models.CardEasy, 7},
		{models.CardMedium, 3},
		{models.CardHard, 1},
		{"unknown", 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			got := NextReviewAt(tt.difficulty, reviewNow)
			want := reviewNow.AddDate(0, 0, tt.wantDays)
			if !got.Equal(want) {
				t.Errorf("Expected %v, got %v", want, got)
			}
		})
	}
}

func TestReviewCard_HardSchedulesNextDay(t *testing.T) {
	card := models.Flashcard{ID: uuid.New(), TimesReviewed: 4, TimesCorrect: 3}

	ReviewCard(&card, models.CardHard, true, reviewNow)

	if card.TimesReviewed != 5 {
		t.Errorf("Expected 5 reviews, got %d", card.TimesReviewed)
	}
	if card.TimesCorrect != 4 {
		t.Errorf("Expected 4 correct, got %d", card.TimesCorrect)
	}
	if card.Difficulty != models.CardHard {
		t.Errorf("Expected difficulty to update, got %s", card.Difficulty)
	}
	if card.NextReviewAt == nil || !card.NextReviewAt.Equal(reviewNow.AddDate(0, 0, 1)) {
		t.Errorf("Expected next review exactly 1 day after %v, got %v", reviewNow, card.NextReviewAt)
	}
	if card.LastReviewedAt == nil || !card.LastReviewedAt.Equal(reviewNow) {
		t.Errorf("Expected last reviewed at %v, got %v", reviewNow, card.LastReviewedAt)
	}
}

func TestReviewCard_IncorrectDoesNotCountCorrect(t *testing.T) {
	card := models.Flashcard{TimesReviewed: 1, TimesCorrect: 1}

	ReviewCard(&card, models.CardMedium, false, reviewNow)

	if card.TimesReviewed != 2 || card.TimesCorrect != 1 {
		t.Errorf("Expected 2 reviews and 1 correct, got %d/%d", card.TimesReviewed, card.TimesCorrect)
	}
}

func TestIsDue(t *testing.T) {
	past := reviewNow.Add(-time.Hour)
	future := reviewNow.AddDate(0, 0, 1)

	tests := []struct {
		name string
		at   *time.Time
		want bool
	}{
		{"never reviewed", nil, true},
		{"past due", &past, true},
		{"exactly now", &reviewNow, true},
		{"future", &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(models.Flashcard{NextReviewAt: tt.at}, reviewNow); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDueCards_OrdersNeverReviewedFirst(t *testing.T) {
	overdue := reviewNow.Add(-time.Hour)
	older := reviewNow.Add(-48 * time.Hour)
	future := reviewNow.AddDate(0, 0, 1)

	cards := []models.Flashcard{
		{Front: "overdue", NextReviewAt: &overdue},
		{Front: "future", NextReviewAt: &future},
		{Front: "fresh", NextReviewAt: nil},
		{Front: "oldest", NextReviewAt: &older},
	}

	due := DueCards(cards, reviewNow)

	if len(due) != 3 {
		t.Fatalf("Expected 3 due cards, got %d", len(due))
	}
	order := []string{"fresh", "oldest", "overdue"}
	for i, want := range order {
		if due[i].Front != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, due[i].Front)
		}
	}
}
