package models

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentStatus string

const (
	AssignmentNotStarted AssignmentStatus = "NOT_STARTED"
	AssignmentInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentCompleted  AssignmentStatus = "COMPLETED"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentNotStarted, AssignmentInProgress, AssignmentCompleted:
		return true
	}
	return false
}

type Assignment struct {
	ID          uuid.UUID        `json:"id"`
	SubjectID   uuid.UUID        `json:"subject_id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	DueDate     time.Time        `json:"due_date"`
	Status      AssignmentStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type CreateAssignmentRequest struct {
	SubjectID   uuid.UUID `json:"subject_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"due_date"`
}
