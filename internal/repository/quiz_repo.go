package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studytrack-backend/internal/models"
)

type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

func (r *QuizRepo) Create(ctx context.Context, q *models.Quiz) error {
	q.ID = uuid.New()

	query := `INSERT INTO quizzes (id, user_id, subject_id, title, total_questions, is_completed)
		VALUES ($1, $2, $3, $4, $5, FALSE) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		q.ID, q.UserID, q.SubjectID, q.Title, q.TotalQuestions,
	).Scan(&q.CreatedAt)
}

// ReplaceQuestions stores a generated question set in one transaction
// and updates the quiz question count to match.
func (r *QuizRepo) ReplaceQuestions(ctx context.Context, quizID uuid.UUID, questions []models.QuizQuestion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM quiz_questions WHERE quiz_id = $1", quizID); err != nil {
		return err
	}

	for i := range questions {
		questions[i].ID = uuid.New()
		questions[i].QuizID = quizID
		_, err := tx.Exec(ctx,
			`INSERT INTO quiz_questions (id, quiz_id, question, options, correct_option_index, explanation)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			questions[i].ID, quizID, questions[i].Question, questions[i].Options,
			questions[i].CorrectOptionIndex, questions[i].Explanation,
		)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, "UPDATE quizzes SET total_questions = $1 WHERE id = $2", len(questions), quizID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *QuizRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	q := &models.Quiz{}
	query := `SELECT id, user_id, subject_id, title, total_questions, score, is_completed, completed_at, created_at
		FROM quizzes WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.UserID, &q.SubjectID, &q.Title, &q.TotalQuestions,
		&q.Score, &q.IsCompleted, &q.CompletedAt, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	questions, err := r.listQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Questions = questions
	return q, nil
}

func (r *QuizRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Quiz, error) {
	query := `SELECT id, user_id, subject_id, title, total_questions, score, is_completed, completed_at, created_at
		FROM quizzes WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		q := &models.Quiz{}
		err := rows.Scan(
			&q.ID, &q.UserID, &q.SubjectID, &q.Title, &q.TotalQuestions,
			&q.Score, &q.IsCompleted, &q.CompletedAt, &q.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

func (r *QuizRepo) listQuestions(ctx context.Context, quizID uuid.UUID) ([]models.QuizQuestion, error) {
	query := `SELECT id, quiz_id, question, options, correct_option_index, explanation, user_answer, is_correct
		FROM quiz_questions WHERE quiz_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	for rows.Next() {
		qq := models.QuizQuestion{}
		err := rows.Scan(
			&qq.ID, &qq.QuizID, &qq.Question, &qq.Options,
			&qq.CorrectOptionIndex, &qq.Explanation, &qq.UserAnswer, &qq.IsCorrect,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, qq)
	}
	return questions, nil
}

// Submit records answers and the final score in one transaction.
func (r *QuizRepo) Submit(ctx context.Context, quizID uuid.UUID, answers map[uuid.UUID]int, correct map[uuid.UUID]bool, score int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for questionID, answer := range answers {
		_, err := tx.Exec(ctx,
			"UPDATE quiz_questions SET user_answer = $1, is_correct = $2 WHERE id = $3 AND quiz_id = $4",
			answer, correct[questionID], questionID, quizID,
		)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		"UPDATE quizzes SET score = $1, is_completed = TRUE, completed_at = $2 WHERE id = $3",
		score, time.Now(), quizID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *QuizRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM quizzes WHERE id = $1", id)
	return err
}
