package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultSubjectColor = "#3B82F6"

type Subject struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Name           string          `json:"name"`
	Color          string          `json:"color"`
	TeacherName    *string         `json:"teacher_name"`
	TeacherEmail   *string         `json:"teacher_email"`
	TeacherPhone   *string         `json:"teacher_phone"`
	StudyGoalHours float64         `json:"study_goal_hours"`
	Category       *string         `json:"category"`
	Difficulty     *string         `json:"difficulty"`
	Streak         int             `json:"streak"` // cached, recomputed on read
	Schedules      []ClassSchedule `json:"schedules,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ClassSchedule struct {
	ID        uuid.UUID `json:"id"`
	SubjectID uuid.UUID `json:"subject_id"`
	DayOfWeek string    `json:"day_of_week"` // "Mon".."Sun"
	StartTime string    `json:"start_time"`  // "HH:MM"
	EndTime   string    `json:"end_time"`
	Location  *string   `json:"location"`
}

type CreateSubjectRequest struct {
	Name           string                 `json:"name"`
	Color          string                 `json:"color"`
	TeacherName    *string                `json:"teacher_name"`
	TeacherEmail   *string                `json:"teacher_email"`
	TeacherPhone   *string                `json:"teacher_phone"`
	StudyGoalHours float64                `json:"study_goal_hours"`
	Category       *string                `json:"category"`
	Difficulty     *string                `json:"difficulty"`
	Schedules      []ClassScheduleRequest `json:"schedules"`
}

type ClassScheduleRequest struct {
	DayOfWeek string  `json:"day_of_week"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  *string `json:"location"`
}
