package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studytrack-backend/internal/models"
	"studytrack-backend/internal/repository"
	"studytrack-backend/internal/schedule"
)

// Expanding an open-ended recurrence rule is rejected rather than
// truncated, so a cap on the horizon keeps request sizes sane.
const (
	maxRecurrenceHorizonDays = 366
	defaultSessionMinutes    = 25
)

type StudySessionService struct {
	sessionRepo *repository.StudySessionRepo
	subjectRepo *repository.SubjectRepo
}

func NewStudySessionService(sessionRepo *repository.StudySessionRepo, subjectRepo *repository.SubjectRepo) *StudySessionService {
	return &StudySessionService{
		sessionRepo: sessionRepo,
		subjectRepo: subjectRepo,
	}
}

// Log records an already-finished session and refreshes the subject's
// cached streak.
func (s *StudySessionService) Log(ctx context.Context, userID uuid.UUID, req models.LogSessionRequest) (*models.StudySession, error) {
	if req.DurationMinutes <= 0 {
		return nil, &ValidationError{Fields: map[string]string{"duration_minutes": "Duration must be positive"}}
	}

	subject, err := s.ownedSubject(ctx, userID, req.SubjectID)
	if err != nil {
		return nil, err
	}

	startTime := req.StartTime
	if startTime == nil {
		now := time.Now()
		startTime = &now
	}
	endTime := startTime.Add(time.Duration(req.DurationMinutes) * time.Minute)

	session := &models.StudySession{
		SubjectID:       subject.ID,
		DurationMinutes: req.DurationMinutes,
		StartTime:       startTime,
		EndTime:         &endTime,
		FocusType:       models.FocusDeep,
		Status:          models.SessionCompleted,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.refreshSubjectStreak(ctx, subject.ID)

	return session, nil
}

// Create stores one planned session, or expands a recurrence rule into
// a whole group inserted atomically.
func (s *StudySessionService) Create(ctx context.Context, userID uuid.UUID, req models.CreateStudySessionRequest) ([]models.StudySession, error) {
	if req.DurationMinutes == 0 && req.StartTime != nil && req.EndTime != nil && req.EndTime.After(*req.StartTime) {
		req.DurationMinutes = int(req.EndTime.Sub(*req.StartTime) / time.Minute)
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = defaultSessionMinutes
	}
	if req.DurationMinutes < 0 {
		return nil, &ValidationError{Fields: map[string]string{"duration_minutes": "Duration must be positive"}}
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "Unknown session status"}}
	}

	subject, err := s.ownedSubject(ctx, userID, req.SubjectID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.SessionPlanned
	}
	if req.FocusType == "" {
		req.FocusType = models.FocusDeep
	}

	if req.RecurrenceRule == nil {
		if req.EndTime == nil && req.StartTime != nil {
			end := req.StartTime.Add(time.Duration(req.DurationMinutes) * time.Minute)
			req.EndTime = &end
		}
		session := &models.StudySession{
			SubjectID:       subject.ID,
			DurationMinutes: req.DurationMinutes,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			Title:           req.Title,
			FocusType:       req.FocusType,
			Status:          status,
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, err
		}
		if status == models.SessionCompleted {
			s.refreshSubjectStreak(ctx, subject.ID)
		}
		return []models.StudySession{*session}, nil
	}

	if req.StartTime == nil {
		return nil, &ValidationError{Fields: map[string]string{"start_time": "Recurring sessions need a start time"}}
	}

	until, err := schedule.ParseDateKey(req.RecurrenceRule.Until, req.StartTime.Location())
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"recurrence_rule": "Invalid until date"}}
	}
	if until.Sub(*req.StartTime) > maxRecurrenceHorizonDays*24*time.Hour {
		return nil, &ValidationError{Fields: map[string]string{"recurrence_rule": "Recurrence horizon is too far out"}}
	}

	sessions, _ := schedule.ExpandRecurrence(*req.RecurrenceRule, *req.StartTime, req.DurationMinutes, schedule.SessionTemplate{
		SubjectID: subject.ID,
		Title:     req.Title,
		FocusType: req.FocusType,
		Status:    status,
	})
	if len(sessions) == 0 {
		return nil, &ValidationError{Fields: map[string]string{"recurrence_rule": "Rule produces no sessions"}}
	}

	if err := s.sessionRepo.CreateBatch(ctx, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Planner lists a user's planned and in-progress sessions in a window.
func (s *StudySessionService) Planner(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.StudySession, error) {
	if !to.After(from) {
		return nil, &ValidationError{Fields: map[string]string{"to": "Window end must be after start"}}
	}
	return s.sessionRepo.ListPlanned(ctx, userID, from, to)
}

// UpdateStatus transitions a session, refreshing the subject streak
// when it completes.
func (s *StudySessionService) UpdateStatus(ctx context.Context, userID, sessionID uuid.UUID, status models.SessionStatus) (*models.StudySession, error) {
	if !status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "Unknown session status"}}
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Session not found"}
		}
		return nil, err
	}

	if _, err := s.ownedSubject(ctx, userID, session.SubjectID); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.UpdateStatus(ctx, sessionID, status); err != nil {
		return nil, err
	}
	session.Status = status

	if status == models.SessionCompleted {
		s.refreshSubjectStreak(ctx, session.SubjectID)
	}

	return session, nil
}

func (s *StudySessionService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Session not found"}
		}
		return err
	}

	if _, err := s.ownedSubject(ctx, userID, session.SubjectID); err != nil {
		return err
	}

	return s.sessionRepo.Delete(ctx, sessionID)
}

// DeleteRecurrenceGroup drops the remaining planned sessions of a
// recurring group. The group is identified through any of its sessions.
func (s *StudySessionService) DeleteRecurrenceGroup(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Session not found"}
		}
		return err
	}
	if session.RecurrenceGroupID == nil {
		return &ValidationError{Fields: map[string]string{"session": "Session is not part of a recurring group"}}
	}

	if _, err := s.ownedSubject(ctx, userID, session.SubjectID); err != nil {
		return err
	}

	return s.sessionRepo.DeleteRecurrenceGroup(ctx, *session.RecurrenceGroupID)
}

func (s *StudySessionService) ownedSubject(ctx context.Context, userID, subjectID uuid.UUID) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Subject not found"}
		}
		return nil, err
	}
	if subject.UserID != userID {
		return nil, &ForbiddenError{Message: "Subject belongs to another user"}
	}
	return subject, nil
}

// refreshSubjectStreak recomputes the cached streak from completed
// session history. Failures only leave the cache stale, so they are
// not surfaced to the caller.
func (s *StudySessionService) refreshSubjectStreak(ctx context.Context, subjectID uuid.UUID) {
	completed, err := s.sessionRepo.ListCompletedBySubject(ctx, subjectID)
	if err != nil {
		return
	}

	starts := make([]time.Time, 0, len(completed))
	for _, c := range completed {
		if c.StartTime != nil {
			starts = append(starts, *c.StartTime)
		}
	}

	streak := schedule.ComputeStreak(starts, time.Now())
	s.subjectRepo.UpdateStreak(ctx, subjectID, streak.Current)
}
