package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studytrack-backend/internal/models"
)

type NoteRepo struct {
	pool *pgxpool.Pool
}

func NewNoteRepo(pool *pgxpool.Pool) *NoteRepo {
	return &NoteRepo{pool: pool}
}

func (r *NoteRepo) Create(ctx context.Context, n *models.Note) error {
	n.ID = uuid.New()

	query := `INSERT INTO notes (id, subject_id, title, content)
		VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		n.ID, n.SubjectID, n.Title, n.Content,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
}

func (r *NoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	n := &models.Note{}
	query := `SELECT id, subject_id, title, content, created_at, updated_at
		FROM notes WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.SubjectID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NoteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Note, error) {
	query := `SELECT n.id, n.subject_id, n.title, n.content, n.created_at, n.updated_at
		FROM notes n
		JOIN subjects s ON s.id = n.subject_id
		WHERE s.user_id = $1
		ORDER BY n.created_at DESC`

	return r.scanNotes(ctx, query, userID)
}

func (r *NoteRepo) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*models.Note, error) {
	query := `SELECT id, subject_id, title, content, created_at, updated_at
		FROM notes WHERE subject_id = $1 ORDER BY created_at DESC`

	return r.scanNotes(ctx, query, subjectID)
}

func (r *NoteRepo) scanNotes(ctx context.Context, query string, args ...any) ([]*models.Note, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		n := &models.Note{}
		err := rows.Scan(&n.ID, &n.SubjectID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (r *NoteRepo) Update(ctx context.Context, n *models.Note) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notes SET title = $1, content = $2, updated_at = NOW() WHERE id = $3`,
		n.Title, n.Content, n.ID,
	)
	return err
}

func (r *NoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM notes WHERE id = $1", id)
	return err
}
