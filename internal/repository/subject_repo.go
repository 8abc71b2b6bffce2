package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studytrack-backend/internal/models"
)

type SubjectRepo struct {
	pool *pgxpool.Pool
}

func NewSubjectRepo(pool *pgxpool.Pool) *SubjectRepo {
	return &SubjectRepo{pool: pool}
}

func (r *SubjectRepo) Create(ctx context.Context, s *models.Subject) error {
	s.ID = uuid.New()
	if s.Color == "" {
		s.Color = models.DefaultSubjectColor
	}

	query := `INSERT INTO subjects (id, user_id, name, color, teacher_name, teacher_email, teacher_phone, study_goal_hours, category, difficulty, streak)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.UserID, s.Name, s.Color, s.TeacherName, s.TeacherEmail, s.TeacherPhone,
		s.StudyGoalHours, s.Category, s.Difficulty, s.Streak,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *SubjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	s := &models.Subject{}
	query := `SELECT id, user_id, name, color, teacher_name, teacher_email, teacher_phone, study_goal_hours, category, difficulty, streak, created_at, updated_at
		FROM subjects WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Color, &s.TeacherName, &s.TeacherEmail, &s.TeacherPhone,
		&s.StudyGoalHours, &s.Category, &s.Difficulty, &s.Streak, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	schedules, err := r.ListSchedules(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Schedules = schedules
	return s, nil
}

func (r *SubjectRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Subject, error) {
	query := `SELECT id, user_id, name, color, teacher_name, teacher_email, teacher_phone, study_goal_hours, category, difficulty, streak, created_at, updated_at
		FROM subjects WHERE user_id = $1 ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		s := &models.Subject{}
		err := rows.Scan(
			&s.ID, &s.UserID, &s.Name, &s.Color, &s.TeacherName, &s.TeacherEmail, &s.TeacherPhone,
			&s.StudyGoalHours, &s.Category, &s.Difficulty, &s.Streak, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, s := range subjects {
		schedules, err := r.ListSchedules(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Schedules = schedules
	}
	return subjects, nil
}

func (r *SubjectRepo) Update(ctx context.Context, s *models.Subject) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE subjects SET name = $1, color = $2, teacher_name = $3, teacher_email = $4, teacher_phone = $5,
			study_goal_hours = $6, category = $7, difficulty = $8, updated_at = NOW()
		 WHERE id = $9`,
		s.Name, s.Color, s.TeacherName, s.TeacherEmail, s.TeacherPhone,
		s.StudyGoalHours, s.Category, s.Difficulty, s.ID,
	)
	return err
}

// UpdateStreak writes the cached streak value so list views can show it
// without recomputing from session history.
func (r *SubjectRepo) UpdateStreak(ctx context.Context, id uuid.UUID, streak int) error {
	_, err := r.pool.Exec(ctx, "UPDATE subjects SET streak = $1 WHERE id = $2", streak, id)
	return err
}

func (r *SubjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM subjects WHERE id = $1", id)
	return err
}

// Class schedule operations

func (r *SubjectRepo) ReplaceSchedules(ctx context.Context, subjectID uuid.UUID, schedules []models.ClassSchedule) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM class_schedules WHERE subject_id = $1", subjectID); err != nil {
		return err
	}

	for i := range schedules {
		schedules[i].ID = uuid.New()
		schedules[i].SubjectID = subjectID
		_, err := tx.Exec(ctx,
			`INSERT INTO class_schedules (id, subject_id, day_of_week, start_time, end_time, location)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			schedules[i].ID, subjectID, schedules[i].DayOfWeek,
			schedules[i].StartTime, schedules[i].EndTime, schedules[i].Location,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *SubjectRepo) ListSchedules(ctx context.Context, subjectID uuid.UUID) ([]models.ClassSchedule, error) {
	query := `SELECT id, subject_id, day_of_week, start_time, end_time, location
		FROM class_schedules WHERE subject_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []models.ClassSchedule
	for rows.Next() {
		cs := models.ClassSchedule{}
		err := rows.Scan(&cs.ID, &cs.SubjectID, &cs.DayOfWeek, &cs.StartTime, &cs.EndTime, &cs.Location)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, cs)
	}
	return schedules, rows.Err()
}
