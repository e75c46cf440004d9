package controllers

import (
	"net/http"
	"strconv"
	"time"

	"portfolio-review-api/config"
	"portfolio-review-api/middleware"
	"portfolio-review-api/models"
	"portfolio-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetAdminPortfolios lists every live portfolio with its owner, filterable by
// status.
func GetAdminPortfolios(c *gin.Context) {
	query := config.DB.Preload("Owner").Where("delete_at IS NULL")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var portfolios []models.Portfolio
	if err := query.Order("submitted_at DESC, create_at DESC").Find(&portfolios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolios": portfolios,
		"total":      len(portfolios),
	})
}

// TransitionPortfolioStatus applies an administrative workflow transition.
// force=true bypasses the workflow map for admin overrides.
func TransitionPortfolioStatus(c *gin.Context) {
	portfolioID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid portfolio id"})
		return
	}

	var req struct {
		Status models.PortfolioStatus `json:"status" binding:"required"`
		Force  bool                   `json:"force"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, _ := middleware.CurrentRole(c)

	portfolio, svcErr := services.NewPortfolioService(config.DB).
		Transition(portfolioID, role, req.Status, req.Force)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	notifyStatusChange(portfolio)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Portfolio status updated",
		"portfolio": portfolio,
	})
}

func notifyStatusChange(portfolio *models.Portfolio) {
	var owner models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", portfolio.UserID).
		First(&owner).Error; err != nil {
		return
	}

	pid := portfolio.PortfolioID
	notifType := "info"
	switch portfolio.Status {
	case models.StatusApproved:
		notifType = "success"
	case models.StatusRejected:
		notifType = "error"
	case models.StatusRevisionRequested:
		notifType = "warning"
	}

	_ = services.NewNotificationService(config.DB).NotifyWithEmail(owner,
		"Portfolio status: "+portfolio.Status.Label(),
		"Your portfolio \""+portfolio.Title+"\" is now "+portfolio.Status.Label()+".",
		notifType, &pid)
}

// CreateAssignment links an evaluator to a portfolio. Assigning the first
// evaluator moves a submitted portfolio into review.
func CreateAssignment(c *gin.Context) {
	var req struct {
		PortfolioID int `json:"portfolio_id" binding:"required"`
		EvaluatorID int `json:"evaluator_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID, _ := middleware.CurrentUserID(c)

	var portfolio models.Portfolio
	if err := config.DB.Where("portfolio_id = ? AND delete_at IS NULL", req.PortfolioID).
		First(&portfolio).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	var evaluator models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.EvaluatorID).
		First(&evaluator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}
	if evaluator.Role != models.RoleEvaluator {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is not an evaluator"})
		return
	}

	var existing int64
	if err := config.DB.Model(&models.EvaluationAssignment{}).
		Where("portfolio_id = ? AND evaluator_id = ? AND delete_at IS NULL",
			req.PortfolioID, req.EvaluatorID).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evaluator is already assigned to this portfolio"})
		return
	}

	now := time.Now()
	assignment := models.EvaluationAssignment{
		PortfolioID: req.PortfolioID,
		EvaluatorID: req.EvaluatorID,
		AssignedBy:  adminID,
		Status:      models.AssignmentPending,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
		return
	}

	if portfolio.Status == models.StatusSubmitted {
		role, _ := middleware.CurrentRole(c)
		if _, err := services.NewPortfolioService(config.DB).
			Transition(portfolio.PortfolioID, role, models.StatusUnderReview, false); err == nil {
			portfolio.Status = models.StatusUnderReview
		}
	}

	pid := portfolio.PortfolioID
	_ = services.NewNotificationService(config.DB).NotifyWithEmail(evaluator,
		"New evaluation assignment",
		"You have been assigned to evaluate portfolio \""+portfolio.Title+"\".",
		"info", &pid)

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Assignment created successfully",
		"assignment": assignment,
	})
}

// GetAdminAssignments lists assignments with evaluator and portfolio.
func GetAdminAssignments(c *gin.Context) {
	query := config.DB.Preload("Portfolio").Preload("Evaluator").
		Where("delete_at IS NULL")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var assignments []models.EvaluationAssignment
	if err := query.Order("create_at DESC").Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// DeleteAssignment soft deletes an assignment, revoking the evaluator's
// access to the portfolio's documents.
func DeleteAssignment(c *gin.Context) {
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment id"})
		return
	}

	var assignment models.EvaluationAssignment
	if err := config.DB.Where("assignment_id = ? AND delete_at IS NULL", assignmentID).
		First(&assignment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&assignment).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted successfully"})
}

// GetDashboardStats returns portfolio counts per workflow status.
func GetDashboardStats(c *gin.Context) {
	type statusCount struct {
		Status models.PortfolioStatus `json:"status"`
		Count  int64                  `json:"count"`
	}

	var rows []statusCount
	if err := config.DB.Model(&models.Portfolio{}).
		Select("status, COUNT(*) as count").
		Where("delete_at IS NULL").
		Group("status").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	counts := make(map[models.PortfolioStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	var total int64
	stats := make([]gin.H, 0, len(models.AllPortfolioStatuses))
	for _, status := range models.AllPortfolioStatuses {
		n := counts[status]
		total += n
		stats = append(stats, gin.H{
			"status": status,
			"label":  status.Label(),
			"color":  status.Color(),
			"count":  n,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      total,
		"by_status":  stats,
		"updated_at": time.Now(),
	})
}
