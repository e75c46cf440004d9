package services

import (
	"fmt"
	"strings"
	"time"

	"portfolio-review-api/models"

	"gorm.io/gorm"
)

// PortfolioService owns every ownership and lifecycle rule for portfolios.
// Controllers call these guards instead of re-deriving the checks, so the
// rules live in exactly one place.
type PortfolioService struct {
	db *gorm.DB
}

func NewPortfolioService(db *gorm.DB) *PortfolioService {
	return &PortfolioService{db: db}
}

// Get loads a live portfolio, enforcing visibility: admins see everything,
// an applicant only their own, an evaluator only portfolios they are
// assigned to. Missing rows return ErrNotFound; visible-but-not-permitted
// rows return ErrForbidden.
func (s *PortfolioService) Get(portfolioID, userID int, role models.Role) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.db.Preload("Documents", "delete_at IS NULL").Preload("Documents.Category").
		Where("portfolio_id = ? AND delete_at IS NULL", portfolioID).
		First(&portfolio).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role.IsAdminRole() || portfolio.UserID == userID {
		return &portfolio, nil
	}

	if role == models.RoleEvaluator {
		assigned, err := s.hasAssignment(portfolio.PortfolioID, userID)
		if err != nil {
			return nil, err
		}
		if assigned {
			return &portfolio, nil
		}
	}

	return nil, ErrForbidden
}

// AuthorizeEdit is the shared precondition gate for every mutation an
// applicant performs on a portfolio: permission, ownership, and lifecycle
// state are all re-checked here regardless of what route middleware ran.
func (s *PortfolioService) AuthorizeEdit(portfolioID, userID int, role models.Role) (*models.Portfolio, error) {
	if !models.PermSubmitPortfolios.Allows(role) {
		return nil, ErrForbidden
	}

	var portfolio models.Portfolio
	if err := s.db.Where("portfolio_id = ? AND delete_at IS NULL", portfolioID).
		First(&portfolio).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if portfolio.UserID != userID {
		return nil, ErrForbidden
	}

	if !portfolio.CanBeEdited() {
		return nil, NewValidationError("status",
			fmt.Sprintf("portfolio in status %q cannot be edited", portfolio.Status))
	}

	return &portfolio, nil
}

// Create starts a new portfolio in draft for the given applicant.
func (s *PortfolioService) Create(userID int, role models.Role, title, description string) (*models.Portfolio, error) {
	if !models.PermSubmitPortfolios.Allows(role) {
		return nil, ErrForbidden
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewValidationError("title", "title is required")
	}

	now := time.Now()
	portfolio := models.Portfolio{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      models.StatusDraft,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := s.db.Create(&portfolio).Error; err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// Update changes title/description on an editable portfolio.
func (s *PortfolioService) Update(portfolioID, userID int, role models.Role, title, description *string) (*models.Portfolio, error) {
	portfolio, err := s.AuthorizeEdit(portfolioID, userID, role)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, NewValidationError("title", "title is required")
		}
		updates["title"] = trimmed
		portfolio.Title = trimmed
	}
	if description != nil {
		updates["description"] = strings.TrimSpace(*description)
		portfolio.Description = strings.TrimSpace(*description)
	}

	if err := s.db.Model(&models.Portfolio{}).
		Where("portfolio_id = ?", portfolio.PortfolioID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return portfolio, nil
}

// Delete soft-deletes a draft portfolio and its documents.
func (s *PortfolioService) Delete(portfolioID, userID int, role models.Role) error {
	portfolio, err := s.AuthorizeEdit(portfolioID, userID, role)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Portfolio{}).
			Where("portfolio_id = ?", portfolio.PortfolioID).
			Update("delete_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&models.PortfolioDocument{}).
			Where("portfolio_id = ? AND delete_at IS NULL", portfolio.PortfolioID).
			Update("delete_at", now).Error
	})
}

// MissingRequiredCategories returns the names of required document categories
// that have no live document in the portfolio. All names are collected so the
// applicant sees the complete list at once.
func (s *PortfolioService) MissingRequiredCategories(tx *gorm.DB, portfolioID int) ([]string, error) {
	var required []models.DocumentCategory
	if err := tx.Where("is_required = ? AND delete_at IS NULL", true).
		Order("display_order").
		Find(&required).Error; err != nil {
		return nil, err
	}
	if len(required) == 0 {
		return nil, nil
	}

	var presentIDs []int
	if err := tx.Model(&models.PortfolioDocument{}).
		Where("portfolio_id = ? AND delete_at IS NULL", portfolioID).
		Distinct().
		Pluck("category_id", &presentIDs).Error; err != nil {
		return nil, err
	}

	present := make(map[int]bool, len(presentIDs))
	for _, id := range presentIDs {
		present[id] = true
	}

	var missing []string
	for _, cat := range required {
		if !present[cat.CategoryID] {
			missing = append(missing, cat.CategoryName)
		}
	}
	return missing, nil
}

// Submit moves an editable, complete portfolio to submitted. The status
// precondition is re-applied in the UPDATE's WHERE clause so two concurrent
// submits cannot both succeed.
func (s *PortfolioService) Submit(portfolioID, userID int, role models.Role) (*models.Portfolio, error) {
	portfolio, err := s.AuthorizeEdit(portfolioID, userID, role)
	if err != nil {
		if _, ok := AsValidationError(err); ok {
			return nil, NewValidationError("status", "portfolio cannot be submitted in its current status")
		}
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		missing, err := s.MissingRequiredCategories(tx, portfolio.PortfolioID)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return NewValidationError("documents",
				"missing required documents: "+strings.Join(missing, ", "))
		}

		result := tx.Model(&models.Portfolio{}).
			Where("portfolio_id = ? AND status IN ? AND delete_at IS NULL",
				portfolio.PortfolioID,
				[]models.PortfolioStatus{models.StatusDraft, models.StatusRevisionRequested}).
			Updates(map[string]interface{}{
				"status":       models.StatusSubmitted,
				"submitted_at": now,
				"update_at":    now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NewValidationError("status", "portfolio cannot be submitted in its current status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	portfolio.Status = models.StatusSubmitted
	portfolio.SubmittedAt = &now
	portfolio.UpdateAt = &now
	return portfolio, nil
}

// Transition applies an administrative status change. The workflow map is
// enforced unless force is set; applicants never reach this path. A decision
// (approved/rejected/revision_requested) stamps reviewed_at.
func (s *PortfolioService) Transition(portfolioID int, role models.Role, next models.PortfolioStatus, force bool) (*models.Portfolio, error) {
	if !models.PermManagePortfolios.Allows(role) {
		return nil, ErrForbidden
	}
	if !next.Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown status %q", next))
	}

	var portfolio models.Portfolio
	if err := s.db.Where("portfolio_id = ? AND delete_at IS NULL", portfolioID).
		First(&portfolio).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !force && !portfolio.Status.CanTransitionTo(next) {
		return nil, NewValidationError("status",
			fmt.Sprintf("cannot move portfolio from %q to %q", portfolio.Status, next))
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":    next,
		"update_at": now,
	}
	switch next {
	case models.StatusApproved, models.StatusRejected, models.StatusRevisionRequested:
		updates["reviewed_at"] = now
	}

	result := s.db.Model(&models.Portfolio{}).
		Where("portfolio_id = ? AND status = ? AND delete_at IS NULL", portfolio.PortfolioID, portfolio.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, NewValidationError("status", "portfolio status changed concurrently, retry")
	}

	portfolio.Status = next
	portfolio.UpdateAt = &now
	return &portfolio, nil
}

func (s *PortfolioService) hasAssignment(portfolioID, evaluatorID int) (bool, error) {
	var n int64
	if err := s.db.Model(&models.EvaluationAssignment{}).
		Where("portfolio_id = ? AND evaluator_id = ? AND delete_at IS NULL", portfolioID, evaluatorID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
