package services

import (
	"errors"
	"strings"
	"testing"

	"portfolio-review-api/models"
)

func TestSubmitReportsAllMissingCategories(t *testing.T) {
	db := newTestDB(t)
	svc := NewPortfolioService(db)

	applicant := seedUser(t, db, models.RoleApplicant, "applicant@example.com")
	portfolio := seedPortfolio(t, db, applicant.UserID, models.StatusDraft)
	transcript := seedCategory(t, db, "Transcript", true)
	seedCategory(t, db, "Recommendation Letter", true)
	optional := seedCategory(t, db, "Cover Letter", false)

	// One required category filled, one missing, optional ignored.
	seedDocument(t, db, portfolio.PortfolioID, optional.CategoryID, applicant.UserID)

	_, err := svc.Submit(portfolio.PortfolioID, applicant.UserID, applicant.Role)
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := ve.Details["documents"]
	if !strings.Contains(msg, "Transcript") || !strings.Contains(msg, "Recommendation Letter") {
		t.Fatalf("expected both missing categories in %q", msg)
	}
	if strings.Contains(msg, "Cover Letter") {
		t.Fatalf("optional category must not be reported: %q", msg)
	}

	// Status unchanged on failure.
	var reloaded models.Portfolio
	if err := db.First(&reloaded, portfolio.PortfolioID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != models.StatusDraft {
		t.Fatalf("status mutated on failed submit: %q", reloaded.Status)
	}

	// Fill both required categories and retry.
	seedDocument(t, db, portfolio.PortfolioID, transcript.CategoryID, applicant.UserID)
	var letter models.DocumentCategory
	if err := db.Where("category_name = ?", "Recommendation Letter").First(&letter).Error; err != nil {
		t.Fatalf("category lookup failed: %v", err)
	}
	seedDocument(t, db, portfolio.PortfolioID, letter.CategoryID, applicant.UserID)

	submitted, err := svc.Submit(portfolio.PortfolioID, applicant.UserID, applicant.Role)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Status != models.StatusSubmitted {
		t.Fatalf("expected submitted, got %q", submitted.Status)
	}
	if submitted.SubmittedAt == nil {
		t.Fatal("submitted_at not set")
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewPortfolioService(db)

	applicant := seedUser(t, db, models.RoleApplicant, "applicant@example.com")
	portfolio := seedPortfolio(t, db, applicant.UserID, models.StatusDraft)

	if _, err := svc.Submit(portfolio.PortfolioID, applicant.UserID, applicant.Role); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := svc.Submit(portfolio.PortfolioID, applicant.UserID, applicant.Role)
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("second submit should be a validation failure, got %v", err)
	}
}

func TestSubmitFromRevisionRequested(t *testing.T) {
	db := newTestDB(t)
	svc := NewPortfolioService(db)

	applicant := seedUser(t, db, models.RoleApplicant, "applicant@example.com")
	portfolio := seedPortfolio(t, db, applicant.UserID, models.StatusRevisionRequested)

	submitted, err := svc.Submit(portfolio.PortfolioID, applicant.UserID, applicant.Role)
	if err != nil {
		t.Fatalf("submit from revision_requested failed: %v", err)
	}
	if submitted.Status != models.StatusSubmitted {
		t.Fatalf("expected submitted, got %q", submitted.Status)
	}
}

func TestAuthorizeEditGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewPortfolioService(db)

	owner := seedUser(t, db, models.RoleApplicant, "owner@example.com")
	other := seedUser(t, db, models.RoleApplicant, "other@example.com")
	evaluator := seedUser(t, db, models.RoleEvaluator, "eval@example.com")
	portfolio := seedPortfolio(t, db, owner.UserID, models.StatusDraft)

	if _, err := svc.AuthorizeEdit(portfolio.PortfolioID, owner.UserID, owner.Role); err != nil {
		t.Fatalf("owner edit denied: %v", err)
	}

	// Non-owner applicant: forbidden, indistinguishable from a role failure.
	if _, err := svc.AuthorizeEdit(portfolio.PortfolioID, other.UserID, other.Role); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	// Wrong role: forbidden even before the portfolio is looked up.
	if _, err := svc.AuthorizeEdit(portfolio.PortfolioID, evaluator.UserID, evaluator.Role); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for evaluator, got %v", err)
	}

	// Missing resource: distinct not-found outcome.
	if _, err := svc.AuthorizeEdit(9999, owner.UserID, owner.Role); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Lifecycle: non-editable statuses reject with a validation failure.
	db.Model(&models.Portfolio{}).
		Where("portfolio_id = ?", portfolio.PortfolioID).
		Update("status", models.StatusSubmitted)
	if _, err := svc.AuthorizeEdit(portfolio.PortfolioID, owner.UserID, owner.Role); err == nil {
		t.Fatal("expected lifecycle rejection for submitted portfolio")
	} else if _, ok := AsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransitionEnforcesWorkflow(t *testing.T) {
	db := newTestDB(t)
	svc := NewPortfolioService(db)

	admin := seedUser(t, db, models.RoleAdmin, "admin@example.com")
	applicant := seedUser(t, db, models.RoleApplicant, "applicant@example.com")
	portfolio := seedPortfolio(t, db, applicant.UserID, models.StatusSubmitted)

	// Applicants never advance status past submitted.
	if _, err := svc.Transition(portfolio.PortfolioID, applicant.Role, models.StatusUnderReview, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for applicant, got %v", err)
	}

	// Out-of-order transition rejected.
	if _, err := svc.Transition(portfolio.PortfolioID, admin.Role, models.StatusApproved, false); err == nil {
		t.Fatal("submitted -> approved should be rejected without force")
	}

	// Workflow path works.
	p, err := svc.Transition(portfolio.PortfolioID, admin.Role, models.StatusUnderReview, false)
	if err != nil {
		t.Fatalf("submitted -> under_review failed: %v", err)
	}
	if p.Status != models.StatusUnderReview {
		t.Fatalf("expected under_review, got %q", p.Status)
	}

	// Force allows an admin override outside the workflow map.
	p, err = svc.Transition(portfolio.PortfolioID, admin.Role, models.StatusRejected, true)
	if err != nil {
		t.Fatalf("forced transition failed: %v", err)
	}
	if p.Status != models.StatusRejected {
		t.Fatalf("expected rejected, got %q", p.Status)
	}

	var reloaded models.Portfolio
	if err := db.First(&reloaded, portfolio.PortfolioID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.ReviewedAt == nil {
		t.Fatal("decision should stamp reviewed_at")
	}
}

func TestGetVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewPortfolioService(db)

	owner := seedUser(t, db, models.RoleApplicant, "owner@example.com")
	other := seedUser(t, db, models.RoleApplicant, "other@example.com")
	admin := seedUser(t, db, models.RoleAdmin, "admin@example.com")
	assigned := seedUser(t, db, models.RoleEvaluator, "assigned@example.com")
	unassigned := seedUser(t, db, models.RoleEvaluator, "unassigned@example.com")
	portfolio := seedPortfolio(t, db, owner.UserID, models.StatusSubmitted)
	seedAssignment(t, db, portfolio.PortfolioID, assigned.UserID, models.AssignmentPending)

	cases := []struct {
		name    string
		user    models.User
		wantErr error
	}{
		{"owner", owner, nil},
		{"admin", admin, nil},
		{"assigned evaluator", assigned, nil},
		{"other applicant", other, ErrForbidden},
		{"unassigned evaluator", unassigned, ErrForbidden},
	}
	for _, tc := range cases {
		_, err := svc.Get(portfolio.PortfolioID, tc.user.UserID, tc.user.Role)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}

	if _, err := svc.Get(9999, admin.UserID, admin.Role); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing portfolio: got %v, want ErrNotFound", err)
	}
}

func TestDeleteSoftDeletesDocuments(t *testing.T) {
	db := newTestDB(t)
	svc := NewPortfolioService(db)

	owner := seedUser(t, db, models.RoleApplicant, "owner@example.com")
	portfolio := seedPortfolio(t, db, owner.UserID, models.StatusDraft)
	category := seedCategory(t, db, "Transcript", true)
	seedDocument(t, db, portfolio.PortfolioID, category.CategoryID, owner.UserID)

	if err := svc.Delete(portfolio.PortfolioID, owner.UserID, owner.Role); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var liveDocs int64
	db.Model(&models.PortfolioDocument{}).
		Where("portfolio_id = ? AND delete_at IS NULL", portfolio.PortfolioID).
		Count(&liveDocs)
	if liveDocs != 0 {
		t.Fatalf("expected cascaded soft delete, %d documents still live", liveDocs)
	}

	if _, err := svc.Get(portfolio.PortfolioID, owner.UserID, owner.Role); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted portfolio should be not found, got %v", err)
	}
}
