package models

import (
	"time"
)

// PortfolioStatus is the workflow state of a portfolio. The flow runs
// draft -> submitted -> under_review -> evaluated -> approved/rejected,
// with revision_requested looping back to an editable state.
type PortfolioStatus string

const (
	StatusDraft             PortfolioStatus = "draft"
	StatusSubmitted         PortfolioStatus = "submitted"
	StatusUnderReview       PortfolioStatus = "under_review"
	StatusEvaluated         PortfolioStatus = "evaluated"
	StatusRevisionRequested PortfolioStatus = "revision_requested"
	StatusApproved          PortfolioStatus = "approved"
	StatusRejected          PortfolioStatus = "rejected"
)

var AllPortfolioStatuses = []PortfolioStatus{
	StatusDraft,
	StatusSubmitted,
	StatusUnderReview,
	StatusEvaluated,
	StatusRevisionRequested,
	StatusApproved,
	StatusRejected,
}

func (s PortfolioStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusEvaluated,
		StatusRevisionRequested, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s PortfolioStatus) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusSubmitted:
		return "Submitted"
	case StatusUnderReview:
		return "Under Review"
	case StatusEvaluated:
		return "Evaluated"
	case StatusRevisionRequested:
		return "Revision Requested"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	}
	return "Unknown"
}

func (s PortfolioStatus) Color() string {
	switch s {
	case StatusDraft:
		return "gray"
	case StatusSubmitted:
		return "blue"
	case StatusUnderReview:
		return "yellow"
	case StatusEvaluated:
		return "purple"
	case StatusRevisionRequested:
		return "orange"
	case StatusApproved:
		return "green"
	case StatusRejected:
		return "red"
	}
	return "gray"
}

// Editable reports whether the owner may still change the portfolio.
// revision_requested behaves like draft for editing purposes.
func (s PortfolioStatus) Editable() bool {
	return s == StatusDraft || s == StatusRevisionRequested
}

// workflowTransitions lists the transitions the review workflow permits.
// Admins may force other transitions; the applicant never advances status
// past submitted themselves.
var workflowTransitions = map[PortfolioStatus][]PortfolioStatus{
	StatusDraft:             {StatusSubmitted},
	StatusRevisionRequested: {StatusSubmitted},
	StatusSubmitted:         {StatusUnderReview},
	StatusUnderReview:       {StatusEvaluated},
	StatusEvaluated:         {StatusApproved, StatusRejected, StatusRevisionRequested},
}

// CanTransitionTo reports whether the workflow permits moving from s to next.
func (s PortfolioStatus) CanTransitionTo(next PortfolioStatus) bool {
	for _, t := range workflowTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type Portfolio struct {
	PortfolioID int             `gorm:"primaryKey;column:portfolio_id" json:"portfolio_id"`
	UserID      int             `gorm:"column:user_id" json:"user_id"`
	Title       string          `gorm:"column:title" json:"title"`
	Description string          `gorm:"column:description" json:"description"`
	Status      PortfolioStatus `gorm:"column:status" json:"status"`
	SubmittedAt *time.Time      `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time      `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreateAt    *time.Time      `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time      `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time      `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Owner     User                `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Documents []PortfolioDocument `gorm:"foreignKey:PortfolioID" json:"documents,omitempty"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

// CanBeEdited reports whether the owning applicant may still mutate the
// portfolio's contents.
func (p *Portfolio) CanBeEdited() bool {
	return p.Status.Editable()
}

// StatusDisplay exposes the label/color pair for list views.
func (p *Portfolio) StatusDisplay() map[string]string {
	return map[string]string{
		"label": p.Status.Label(),
		"color": p.Status.Color(),
	}
}
