package controllers

import (
	"net/http"
	"strconv"

	"portfolio-review-api/config"
	"portfolio-review-api/middleware"
	"portfolio-review-api/models"
	"portfolio-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetAssignments lists the evaluator's own assignments.
func GetAssignments(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	assignments, err := services.NewEvaluationService(config.DB).ListAssignments(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// GetAssignment returns one of the evaluator's assignments with its portfolio.
func GetAssignment(c *gin.Context) {
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment id"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	assignment, svcErr := services.NewEvaluationService(config.DB).GetAssignment(assignmentID, userID)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignment": assignment,
		"status_display": gin.H{
			"label": assignment.Status.Label(),
			"color": assignment.Status.Color(),
		},
	})
}

// CreateEvaluation starts a draft evaluation on the evaluator's assignment.
func CreateEvaluation(c *gin.Context) {
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment id"})
		return
	}

	var req struct {
		Score    int    `json:"score"`
		Comments string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	evaluation, svcErr := services.NewEvaluationService(config.DB).
		CreateDraft(assignmentID, userID, role, req.Score, req.Comments)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Evaluation draft created",
		"evaluation": evaluation,
	})
}

// UpdateEvaluation changes the author's own draft.
func UpdateEvaluation(c *gin.Context) {
	evaluationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evaluation id"})
		return
	}

	var req struct {
		Score    *int    `json:"score"`
		Comments *string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	evaluation, svcErr := services.NewEvaluationService(config.DB).
		UpdateDraft(evaluationID, userID, role, req.Score, req.Comments)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Evaluation updated",
		"evaluation": evaluation,
	})
}

// SubmitEvaluation locks the evaluation, completes the assignment, and moves
// the portfolio to evaluated. The portfolio owner is notified.
func SubmitEvaluation(c *gin.Context) {
	evaluationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evaluation id"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	evaluation, svcErr := services.NewEvaluationService(config.DB).Submit(evaluationID, userID, role)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	var portfolio models.Portfolio
	if err := config.DB.Where("portfolio_id = ? AND delete_at IS NULL", evaluation.PortfolioID).
		First(&portfolio).Error; err == nil {
		pid := portfolio.PortfolioID
		_ = services.NewNotificationService(config.DB).Notify(portfolio.UserID,
			"Portfolio evaluated",
			"Your portfolio \""+portfolio.Title+"\" has been evaluated.",
			"info", &pid)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Evaluation submitted",
		"evaluation": evaluation,
	})
}
