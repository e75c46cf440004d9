package services

import (
	"time"

	"portfolio-review-api/models"

	"gorm.io/gorm"
)

// EvaluationService owns the scoring workflow: draft evaluations belong to
// their author and stay mutable until submitted, submission locks the record,
// completes the assignment, and advances the portfolio.
type EvaluationService struct {
	db *gorm.DB
}

func NewEvaluationService(db *gorm.DB) *EvaluationService {
	return &EvaluationService{db: db}
}

// GetAssignment loads a live assignment owned by the evaluator.
func (s *EvaluationService) GetAssignment(assignmentID, evaluatorID int) (*models.EvaluationAssignment, error) {
	var assignment models.EvaluationAssignment
	if err := s.db.Preload("Portfolio").
		Where("assignment_id = ? AND delete_at IS NULL", assignmentID).
		First(&assignment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if assignment.EvaluatorID != evaluatorID {
		return nil, ErrForbidden
	}
	return &assignment, nil
}

// ListAssignments returns the evaluator's live assignments with portfolios.
func (s *EvaluationService) ListAssignments(evaluatorID int) ([]models.EvaluationAssignment, error) {
	var assignments []models.EvaluationAssignment
	err := s.db.Preload("Portfolio").
		Where("evaluator_id = ? AND delete_at IS NULL", evaluatorID).
		Order("create_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func validateScore(score int) error {
	if score < 0 || score > 100 {
		return NewValidationError("score", "score must be between 0 and 100")
	}
	return nil
}

// CreateDraft starts a draft evaluation for the evaluator's own assignment.
// One evaluation per assignment: a second create is rejected. Starting work
// moves a pending assignment to in_progress.
func (s *EvaluationService) CreateDraft(assignmentID, evaluatorID int, role models.Role, score int, comments string) (*models.Evaluation, error) {
	if !models.PermEvaluatePortfolios.Allows(role) {
		return nil, ErrForbidden
	}

	assignment, err := s.GetAssignment(assignmentID, evaluatorID)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.AssignmentCompleted {
		return nil, NewValidationError("assignment", "assignment is already completed")
	}
	if err := validateScore(score); err != nil {
		return nil, err
	}

	var existing int64
	if err := s.db.Model(&models.Evaluation{}).
		Where("assignment_id = ? AND delete_at IS NULL", assignmentID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, NewValidationError("evaluation", "an evaluation already exists for this assignment")
	}

	now := time.Now()
	evaluation := models.Evaluation{
		AssignmentID: assignment.AssignmentID,
		PortfolioID:  assignment.PortfolioID,
		EvaluatorID:  evaluatorID,
		Score:        score,
		Comments:     comments,
		Status:       models.EvaluationDraft,
		CreateAt:     &now,
		UpdateAt:     &now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&evaluation).Error; err != nil {
			return err
		}
		if assignment.Status == models.AssignmentPending {
			return tx.Model(&models.EvaluationAssignment{}).
				Where("assignment_id = ?", assignment.AssignmentID).
				Updates(map[string]interface{}{
					"status":    models.AssignmentInProgress,
					"update_at": now,
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// getOwnEvaluation loads a live evaluation authored by the evaluator.
func (s *EvaluationService) getOwnEvaluation(evaluationID, evaluatorID int) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := s.db.Where("evaluation_id = ? AND delete_at IS NULL", evaluationID).
		First(&evaluation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if evaluation.EvaluatorID != evaluatorID {
		return nil, ErrForbidden
	}
	return &evaluation, nil
}

// UpdateDraft changes score/comments on the author's own draft.
func (s *EvaluationService) UpdateDraft(evaluationID, evaluatorID int, role models.Role, score *int, comments *string) (*models.Evaluation, error) {
	if !models.PermEvaluatePortfolios.Allows(role) {
		return nil, ErrForbidden
	}

	evaluation, err := s.getOwnEvaluation(evaluationID, evaluatorID)
	if err != nil {
		return nil, err
	}
	if !evaluation.CanBeEdited() {
		return nil, NewValidationError("status", "submitted evaluations cannot be changed")
	}

	now := time.Now()
	updates := map[string]interface{}{"update_at": now}
	if score != nil {
		if err := validateScore(*score); err != nil {
			return nil, err
		}
		updates["score"] = *score
		evaluation.Score = *score
	}
	if comments != nil {
		updates["comments"] = *comments
		evaluation.Comments = *comments
	}

	if err := s.db.Model(&models.Evaluation{}).
		Where("evaluation_id = ?", evaluation.EvaluationID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	evaluation.UpdateAt = &now
	return evaluation, nil
}

// Submit locks the evaluation, completes the assignment, and moves the
// portfolio from under_review to evaluated. All three updates commit
// together; the status WHERE clause makes a double submit fail.
func (s *EvaluationService) Submit(evaluationID, evaluatorID int, role models.Role) (*models.Evaluation, error) {
	if !models.PermEvaluatePortfolios.Allows(role) {
		return nil, ErrForbidden
	}

	evaluation, err := s.getOwnEvaluation(evaluationID, evaluatorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Evaluation{}).
			Where("evaluation_id = ? AND status = ?", evaluation.EvaluationID, models.EvaluationDraft).
			Updates(map[string]interface{}{
				"status":       models.EvaluationSubmitted,
				"submitted_at": now,
				"update_at":    now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NewValidationError("status", "evaluation has already been submitted")
		}

		if err := tx.Model(&models.EvaluationAssignment{}).
			Where("assignment_id = ?", evaluation.AssignmentID).
			Updates(map[string]interface{}{
				"status":    models.AssignmentCompleted,
				"update_at": now,
			}).Error; err != nil {
			return err
		}

		// Advance the portfolio only along the review workflow; a portfolio
		// an admin already decided on stays where it is.
		return tx.Model(&models.Portfolio{}).
			Where("portfolio_id = ? AND status = ? AND delete_at IS NULL",
				evaluation.PortfolioID, models.StatusUnderReview).
			Updates(map[string]interface{}{
				"status":    models.StatusEvaluated,
				"update_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	evaluation.Status = models.EvaluationSubmitted
	evaluation.SubmittedAt = &now
	evaluation.UpdateAt = &now
	return evaluation, nil
}
