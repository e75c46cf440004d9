package models

import (
	"time"
)

// AssignmentStatus tracks an evaluator's progress on an assigned portfolio.
// Document access is granted by the existence of the assignment row, not by
// its status.
type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
)

var AllAssignmentStatuses = []AssignmentStatus{
	AssignmentPending,
	AssignmentInProgress,
	AssignmentCompleted,
}

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentPending, AssignmentInProgress, AssignmentCompleted:
		return true
	}
	return false
}

func (s AssignmentStatus) Label() string {
	switch s {
	case AssignmentPending:
		return "Pending"
	case AssignmentInProgress:
		return "In Progress"
	case AssignmentCompleted:
		return "Completed"
	}
	return "Unknown"
}

func (s AssignmentStatus) Color() string {
	switch s {
	case AssignmentPending:
		return "gray"
	case AssignmentInProgress:
		return "blue"
	case AssignmentCompleted:
		return "green"
	}
	return "gray"
}

// EvaluationStatus distinguishes mutable drafts from locked submissions.
type EvaluationStatus string

const (
	EvaluationDraft     EvaluationStatus = "draft"
	EvaluationSubmitted EvaluationStatus = "submitted"
)

func (s EvaluationStatus) Valid() bool {
	return s == EvaluationDraft || s == EvaluationSubmitted
}

func (s EvaluationStatus) Label() string {
	switch s {
	case EvaluationDraft:
		return "Draft"
	case EvaluationSubmitted:
		return "Submitted"
	}
	return "Unknown"
}

func (s EvaluationStatus) Color() string {
	switch s {
	case EvaluationDraft:
		return "gray"
	case EvaluationSubmitted:
		return "green"
	}
	return "gray"
}

type EvaluationAssignment struct {
	AssignmentID int              `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	PortfolioID  int              `gorm:"column:portfolio_id" json:"portfolio_id"`
	EvaluatorID  int              `gorm:"column:evaluator_id" json:"evaluator_id"`
	AssignedBy   int              `gorm:"column:assigned_by" json:"assigned_by"`
	Status       AssignmentStatus `gorm:"column:status" json:"status"`
	CreateAt     *time.Time       `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time       `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time       `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Portfolio Portfolio `gorm:"foreignKey:PortfolioID" json:"portfolio,omitempty"`
	Evaluator User      `gorm:"foreignKey:EvaluatorID" json:"evaluator,omitempty"`
}

type Evaluation struct {
	EvaluationID int              `gorm:"primaryKey;column:evaluation_id" json:"evaluation_id"`
	AssignmentID int              `gorm:"column:assignment_id" json:"assignment_id"`
	PortfolioID  int              `gorm:"column:portfolio_id" json:"portfolio_id"`
	EvaluatorID  int              `gorm:"column:evaluator_id" json:"evaluator_id"`
	Score        int              `gorm:"column:score" json:"score"`
	Comments     string           `gorm:"column:comments" json:"comments"`
	Status       EvaluationStatus `gorm:"column:status" json:"status"`
	SubmittedAt  *time.Time       `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt     *time.Time       `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time       `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time       `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Assignment EvaluationAssignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}

// TableName overrides
func (EvaluationAssignment) TableName() string {
	return "evaluation_assignments"
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// CanBeEdited reports whether the authoring evaluator may still change the
// evaluation. Submitted evaluations are immutable.
func (e *Evaluation) CanBeEdited() bool {
	return e.Status == EvaluationDraft
}
