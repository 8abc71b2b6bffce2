package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studytrack-backend/internal/models"
)

type FlashcardRepo struct {
	pool *pgxpool.Pool
}

func NewFlashcardRepo(pool *pgxpool.Pool) *FlashcardRepo {
	return &FlashcardRepo{pool: pool}
}

// Deck operations

func (r *FlashcardRepo) CreateDeck(ctx context.Context, d *models.FlashcardDeck) error {
	d.ID = uuid.New()
	if d.Color == "" {
		d.Color = models.DefaultDeckColor
	}

	query := `INSERT INTO flashcard_decks (id, user_id, subject_id, name, description, color)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		d.ID, d.UserID, d.SubjectID, d.Name, d.Description, d.Color,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *FlashcardRepo) GetDeckByID(ctx context.Context, id uuid.UUID) (*models.FlashcardDeck, error) {
	d := &models.FlashcardDeck{}
	query := `SELECT id, user_id, subject_id, name, description, color, last_studied_at, created_at, updated_at
		FROM flashcard_decks WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.SubjectID, &d.Name, &d.Description, &d.Color,
		&d.LastStudiedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *FlashcardRepo) ListDecksByUser(ctx context.Context, userID uuid.UUID) ([]*models.FlashcardDeck, error) {
	query := `SELECT id, user_id, subject_id, name, description, color, last_studied_at, created_at, updated_at
		FROM flashcard_decks WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []*models.FlashcardDeck
	for rows.Next() {
		d := &models.FlashcardDeck{}
		err := rows.Scan(
			&d.ID, &d.UserID, &d.SubjectID, &d.Name, &d.Description, &d.Color,
			&d.LastStudiedAt, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

func (r *FlashcardRepo) TouchDeck(ctx context.Context, id uuid.UUID, studiedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE flashcard_decks SET last_studied_at = $1, updated_at = NOW() WHERE id = $2",
		studiedAt, id,
	)
	return err
}

func (r *FlashcardRepo) DeleteDeck(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM flashcard_decks WHERE id = $1", id)
	return err
}

// Card operations

func (r *FlashcardRepo) CreateCard(ctx context.Context, c *models.Flashcard) error {
	c.ID = uuid.New()
	if c.Difficulty == "" {
		c.Difficulty = models.CardMedium
	}

	query := `INSERT INTO flashcards (id, deck_id, front, back, difficulty)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		c.ID, c.DeckID, c.Front, c.Back, c.Difficulty,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *FlashcardRepo) GetCardByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error) {
	c := &models.Flashcard{}
	query := `SELECT id, deck_id, front, back, difficulty, times_reviewed, times_correct, last_reviewed_at, next_review_at, created_at, updated_at
		FROM flashcards WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Difficulty, &c.TimesReviewed,
		&c.TimesCorrect, &c.LastReviewedAt, &c.NextReviewAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCardsByDeck orders never-reviewed cards first, then by review
// date ascending, matching the due-card ordering clients expect.
func (r *FlashcardRepo) ListCardsByDeck(ctx context.Context, deckID uuid.UUID) ([]models.Flashcard, error) {
	query := `SELECT id, deck_id, front, back, difficulty, times_reviewed, times_correct, last_reviewed_at, next_review_at, created_at, updated_at
		FROM flashcards WHERE deck_id = $1 ORDER BY next_review_at ASC NULLS FIRST`

	return r.scanCards(ctx, query, deckID)
}

func (r *FlashcardRepo) ListDueCards(ctx context.Context, deckID uuid.UUID, now time.Time) ([]models.Flashcard, error) {
	query := `SELECT id, deck_id, front, back, difficulty, times_reviewed, times_correct, last_reviewed_at, next_review_at, created_at, updated_at
		FROM flashcards
		WHERE deck_id = $1 AND (next_review_at IS NULL OR next_review_at <= $2)
		ORDER BY next_review_at ASC NULLS FIRST`

	return r.scanCards(ctx, query, deckID, now)
}

func (r *FlashcardRepo) scanCards(ctx context.Context, query string, args ...any) ([]models.Flashcard, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c := models.Flashcard{}
		err := rows.Scan(
			&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Difficulty, &c.TimesReviewed,
			&c.TimesCorrect, &c.LastReviewedAt, &c.NextReviewAt, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// UpdateReview persists the result of one review pass over a card.
func (r *FlashcardRepo) UpdateReview(ctx context.Context, c *models.Flashcard) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE flashcards
		 SET difficulty = $1, times_reviewed = $2, times_correct = $3,
			last_reviewed_at = $4, next_review_at = $5, updated_at = NOW()
		 WHERE id = $6`,
		c.Difficulty, c.TimesReviewed, c.TimesCorrect, c.LastReviewedAt, c.NextReviewAt, c.ID,
	)
	return err
}

func (r *FlashcardRepo) DeleteCard(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM flashcards WHERE id = $1", id)
	return err
}
