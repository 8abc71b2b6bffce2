package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studytrack-backend/internal/models"
)

type AssignmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepo(pool *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{pool: pool}
}

func (r *AssignmentRepo) Create(ctx context.Context, a *models.Assignment) error {
	a.ID = uuid.New()
	if a.Status == "" {
		a.Status = models.AssignmentNotStarted
	}

	query := `INSERT INTO assignments (id, subject_id, title, description, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		a.ID, a.SubjectID, a.Title, a.Description, a.DueDate, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *AssignmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	a := &models.Assignment{}
	query := `SELECT id, subject_id, title, description, due_date, status, created_at, updated_at
		FROM assignments WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.SubjectID, &a.Title, &a.Description, &a.DueDate, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AssignmentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Assignment, error) {
	query := `SELECT a.id, a.subject_id, a.title, a.description, a.due_date, a.status, a.created_at, a.updated_at
		FROM assignments a
		JOIN subjects s ON s.id = a.subject_id
		WHERE s.user_id = $1
		ORDER BY a.due_date ASC`

	return r.scanAssignments(ctx, query, userID)
}

func (r *AssignmentRepo) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*models.Assignment, error) {
	query := `SELECT id, subject_id, title, description, due_date, status, created_at, updated_at
		FROM assignments WHERE subject_id = $1 ORDER BY due_date ASC`

	return r.scanAssignments(ctx, query, subjectID)
}

// ListUpcoming returns unfinished assignments due within the window,
// soonest first, for the dashboard.
func (r *AssignmentRepo) ListUpcoming(ctx context.Context, userID uuid.UUID, until time.Time) ([]*models.Assignment, error) {
	query := `SELECT a.id, a.subject_id, a.title, a.description, a.due_date, a.status, a.created_at, a.updated_at
		FROM assignments a
		JOIN subjects s ON s.id = a.subject_id
		WHERE s.user_id = $1 AND a.status <> 'COMPLETED' AND a.due_date <= $2
		ORDER BY a.due_date ASC`

	return r.scanAssignments(ctx, query, userID, until)
}

func (r *AssignmentRepo) scanAssignments(ctx context.Context, query string, args ...any) ([]*models.Assignment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		a := &models.Assignment{}
		err := rows.Scan(&a.ID, &a.SubjectID, &a.Title, &a.Description, &a.DueDate, &a.Status, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func (r *AssignmentRepo) Update(ctx context.Context, a *models.Assignment) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE assignments SET title = $1, description = $2, due_date = $3, status = $4, updated_at = NOW()
		 WHERE id = $5`,
		a.Title, a.Description, a.DueDate, a.Status, a.ID,
	)
	return err
}

func (r *AssignmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AssignmentStatus) error {
	_, err := r.pool.Exec(ctx, "UPDATE assignments SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	return err
}

func (r *AssignmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM assignments WHERE id = $1", id)
	return err
}
