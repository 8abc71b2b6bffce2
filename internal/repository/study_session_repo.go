package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studytrack-backend/internal/models"
)

type StudySessionRepo struct {
	pool *pgxpool.Pool
}

func NewStudySessionRepo(pool *pgxpool.Pool) *StudySessionRepo {
	return &StudySessionRepo{pool: pool}
}

func (r *StudySessionRepo) Create(ctx context.Context, s *models.StudySession) error {
	s.ID = uuid.New()

	query := `INSERT INTO study_sessions (id, subject_id, duration_minutes, start_time, end_time, title, focus_type, status, recurrence_group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.SubjectID, s.DurationMinutes, s.StartTime, s.EndTime,
		s.Title, s.FocusType, s.Status, s.RecurrenceGroupID,
	).Scan(&s.CreatedAt)
}

// CreateBatch inserts an expanded recurrence group in one transaction
// so a group is either stored whole or not at all.
func (r *StudySessionRepo) CreateBatch(ctx context.Context, sessions []models.StudySession) error {
	if len(sessions) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range sessions {
		sessions[i].ID = uuid.New()
		_, err := tx.Exec(ctx,
			`INSERT INTO study_sessions (id, subject_id, duration_minutes, start_time, end_time, title, focus_type, status, recurrence_group_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			sessions[i].ID, sessions[i].SubjectID, sessions[i].DurationMinutes,
			sessions[i].StartTime, sessions[i].EndTime, sessions[i].Title,
			sessions[i].FocusType, sessions[i].Status, sessions[i].RecurrenceGroupID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *StudySessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StudySession, error) {
	s := &models.StudySession{}
	query := `SELECT id, subject_id, duration_minutes, start_time, end_time, title, focus_type, status, recurrence_group_id, created_at
		FROM study_sessions WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SubjectID, &s.DurationMinutes, &s.StartTime, &s.EndTime,
		&s.Title, &s.FocusType, &s.Status, &s.RecurrenceGroupID, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListPlanned returns upcoming planned or in-progress sessions for all
// of a user's subjects inside [from, to).
func (r *StudySessionRepo) ListPlanned(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.StudySession, error) {
	query := `SELECT ss.id, ss.subject_id, ss.duration_minutes, ss.start_time, ss.end_time, ss.title, ss.focus_type, ss.status, ss.recurrence_group_id, ss.created_at
		FROM study_sessions ss
		JOIN subjects s ON s.id = ss.subject_id
		WHERE s.user_id = $1
		  AND ss.status IN ('PLANNED', 'IN_PROGRESS')
		  AND ss.start_time >= $2 AND ss.start_time < $3
		ORDER BY ss.start_time ASC`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.StudySession
	for rows.Next() {
		s := &models.StudySession{}
		err := rows.Scan(
			&s.ID, &s.SubjectID, &s.DurationMinutes, &s.StartTime, &s.EndTime,
			&s.Title, &s.FocusType, &s.Status, &s.RecurrenceGroupID, &s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// ListCompletedByUser feeds the analytics and streak engines: completed
// sessions joined with subject display metadata, newest first.
func (r *StudySessionRepo) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]models.CompletedSession, error) {
	query := `SELECT ss.subject_id, s.name, s.color, ss.duration_minutes, ss.start_time
		FROM study_sessions ss
		JOIN subjects s ON s.id = ss.subject_id
		WHERE s.user_id = $1 AND ss.status = 'COMPLETED'
		ORDER BY ss.start_time DESC NULLS LAST`

	return r.scanCompleted(ctx, query, userID)
}

func (r *StudySessionRepo) ListCompletedBySubject(ctx context.Context, subjectID uuid.UUID) ([]models.CompletedSession, error) {
	query := `SELECT ss.subject_id, s.name, s.color, ss.duration_minutes, ss.start_time
		FROM study_sessions ss
		JOIN subjects s ON s.id = ss.subject_id
		WHERE ss.subject_id = $1 AND ss.status = 'COMPLETED'
		ORDER BY ss.start_time DESC NULLS LAST`

	return r.scanCompleted(ctx, query, subjectID)
}

func (r *StudySessionRepo) scanCompleted(ctx context.Context, query string, arg any) ([]models.CompletedSession, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.CompletedSession
	for rows.Next() {
		c := models.CompletedSession{}
		err := rows.Scan(&c.SubjectID, &c.SubjectName, &c.SubjectColor, &c.DurationMinutes, &c.StartTime)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, c)
	}
	return sessions, nil
}

func (r *StudySessionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error {
	_, err := r.pool.Exec(ctx, "UPDATE study_sessions SET status = $1 WHERE id = $2", status, id)
	return err
}

func (r *StudySessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM study_sessions WHERE id = $1", id)
	return err
}

// DeleteRecurrenceGroup removes every remaining planned session in a
// group. Completed sessions stay so history is preserved.
func (r *StudySessionRepo) DeleteRecurrenceGroup(ctx context.Context, groupID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM study_sessions WHERE recurrence_group_id = $1 AND status = 'PLANNED'", groupID)
	return err
}
