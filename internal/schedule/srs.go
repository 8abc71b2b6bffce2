package schedule

import (
	"sort"
	"time"

	"studytrack-backend/internal/models"
)

// Review intervals per difficulty tier, in calendar days from the
// review instant. Harder cards come back sooner.
var reviewIntervalDays = map[models.CardDifficulty]int{
	models.CardEasy:   7,
	models.CardMedium: 3,
	models.CardHard:   1,
}

// NextReviewAt schedules the next review for a card answered at the
// given difficulty. Unknown tiers fall back to the medium interval.
func NextReviewAt(difficulty models.CardDifficulty, now time.Time) time.Time {
	days, ok := reviewIntervalDays[difficulty]
	if !ok {
		days = reviewIntervalDays[models.CardMedium]
	}
	return now.AddDate(0, 0, days)
}

// ReviewCard applies one review outcome to a card: bumps the counters,
// records the difficulty the user reported, and schedules the next
// review. The caller persists the card and bumps the owning deck's
// last-studied timestamp.
func ReviewCard(card *models.Flashcard, difficulty models.CardDifficulty, correct bool, now time.Time) {
	card.TimesReviewed++
	if correct {
		card.TimesCorrect++
	}
	card.Difficulty = difficulty
	card.LastReviewedAt = &now
	next := NextReviewAt(difficulty, now)
	card.NextReviewAt = &next
}

// IsDue reports whether a card should be reviewed now. A card that was
// never scheduled is always due.
func IsDue(card models.Flashcard, now time.Time) bool {
	return card.NextReviewAt == nil || !card.NextReviewAt.After(now)
}

// DueCards filters to due cards and orders them for review: never
// scheduled cards first, then ascending next-review time.
func DueCards(cards []models.Flashcard, now time.Time) []models.Flashcard {
	var due []models.Flashcard
	for _, c := range cards {
		if IsDue(c, now) {
			due = append(due, c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].NextReviewAt, due[j].NextReviewAt
		if a == nil {
			return b != nil
		}
		if b == nil {
			return false
		}
		return a.Before(*b)
	})
	return due
}
