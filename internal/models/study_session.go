package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionPlanned    SessionStatus = "PLANNED"
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
	SessionCancelled  SessionStatus = "CANCELLED"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionPlanned, SessionInProgress, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

type FocusType string

const (
	FocusDeep   FocusType = "DEEP_FOCUS"
	FocusLight  FocusType = "LIGHT_REVIEW"
	FocusActive FocusType = "ACTIVE_RECALL"
)

type StudySession struct {
	ID                uuid.UUID     `json:"id"`
	SubjectID         uuid.UUID     `json:"subject_id"`
	DurationMinutes   int           `json:"duration_minutes"`
	StartTime         *time.Time    `json:"start_time"`
	EndTime           *time.Time    `json:"end_time"`
	Title             *string       `json:"title"`
	FocusType         FocusType     `json:"focus_type"`
	Status            SessionStatus `json:"status"`
	RecurrenceGroupID *uuid.UUID    `json:"recurrence_group_id"`
	CreatedAt         time.Time     `json:"created_at"`
}

// CompletedSession is the read-model the analytics engine consumes: a
// completed session joined with its subject's display metadata.
type CompletedSession struct {
	SubjectID       uuid.UUID
	SubjectName     string
	SubjectColor    string
	DurationMinutes int
	StartTime       *time.Time
}

// RecurrenceRule describes how to expand one create request into a
// group of planned sessions. Days uses weekday indices with Sunday=0
// and only applies to WEEKLY rules.
type RecurrenceRule struct {
	Frequency string `json:"frequency"` // "DAILY" | "WEEKLY"
	Days      []int  `json:"days,omitempty"`
	Until     string `json:"until"` // inclusive "YYYY-MM-DD"
}

type CreateStudySessionRequest struct {
	SubjectID       uuid.UUID       `json:"subject_id"`
	DurationMinutes int             `json:"duration_minutes"`
	StartTime       *time.Time      `json:"start_time"`
	EndTime         *time.Time      `json:"end_time"`
	Title           *string         `json:"title"`
	FocusType       FocusType       `json:"focus_type"`
	Status          SessionStatus   `json:"status"`
	RecurrenceRule  *RecurrenceRule `json:"recurrence_rule"`
}

type LogSessionRequest struct {
	SubjectID       uuid.UUID  `json:"subject_id"`
	DurationMinutes int        `json:"duration_minutes"`
	StartTime       *time.Time `json:"start_time"`
}
