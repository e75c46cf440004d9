package services

import (
	"portfolio-review-api/models"

	"gorm.io/gorm"
)

// DocumentAccessService decides whether a user may read a portfolio document.
// Preview and download share the same rule; only the response disposition
// differs, and that is the controller's concern.
type DocumentAccessService struct {
	db *gorm.DB
}

func NewDocumentAccessService(db *gorm.DB) *DocumentAccessService {
	return &DocumentAccessService{db: db}
}

// GetDocument loads a live document with its portfolio, returning ErrNotFound
// for missing or soft-deleted rows.
func (s *DocumentAccessService) GetDocument(documentID int) (*models.PortfolioDocument, error) {
	var doc models.PortfolioDocument
	if err := s.db.Preload("Portfolio").
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.Portfolio.DeleteAt != nil {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// CanAccess grants when the requester owns the portfolio, holds an admin
// role, or is an evaluator with any live assignment to the portfolio
// (assignment status does not matter). Everything else is denied.
func (s *DocumentAccessService) CanAccess(userID int, role models.Role, doc *models.PortfolioDocument) (bool, error) {
	if role.IsAdminRole() {
		return true, nil
	}
	if doc.Portfolio.UserID == userID {
		return true, nil
	}
	if role != models.RoleEvaluator {
		return false, nil
	}

	var n int64
	if err := s.db.Model(&models.EvaluationAssignment{}).
		Where("portfolio_id = ? AND evaluator_id = ? AND delete_at IS NULL", doc.PortfolioID, userID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Authorize combines lookup and decision: ErrNotFound for dangling ids,
// ErrForbidden (with no further detail) when the rule denies.
func (s *DocumentAccessService) Authorize(documentID, userID int, role models.Role) (*models.PortfolioDocument, error) {
	doc, err := s.GetDocument(documentID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.CanAccess(userID, role, doc)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}
	return doc, nil
}
