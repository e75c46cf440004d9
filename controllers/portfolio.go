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

// GetPortfolios lists portfolios: applicants their own, admins everything.
func GetPortfolios(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	query := config.DB.Where("delete_at IS NULL")
	if !role.IsAdminRole() {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var portfolios []models.Portfolio
	if err := query.Order("create_at DESC").Find(&portfolios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolios": portfolios,
		"total":      len(portfolios),
	})
}

// GetPortfolio returns one portfolio with its documents.
func GetPortfolio(c *gin.Context) {
	portfolioID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid portfolio id"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	portfolio, svcErr := services.NewPortfolioService(config.DB).Get(portfolioID, userID, role)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio":      portfolio,
		"status_display": portfolio.StatusDisplay(),
		"can_be_edited":  portfolio.CanBeEdited(),
	})
}

// CreatePortfolio starts a new draft portfolio for the applicant.
func CreatePortfolio(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	portfolio, err := services.NewPortfolioService(config.DB).Create(userID, role, req.Title, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Portfolio created successfully",
		"portfolio": portfolio,
	})
}

// UpdatePortfolio changes title/description while the portfolio is editable.
func UpdatePortfolio(c *gin.Context) {
	portfolioID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid portfolio id"})
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	portfolio, svcErr := services.NewPortfolioService(config.DB).Update(portfolioID, userID, role, req.Title, req.Description)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Portfolio updated successfully",
		"portfolio": portfolio,
	})
}

// DeletePortfolio soft-deletes an editable portfolio and its documents.
func DeletePortfolio(c *gin.Context) {
	portfolioID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid portfolio id"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	if svcErr := services.NewPortfolioService(config.DB).Delete(portfolioID, userID, role); svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted successfully"})
}

// SubmitPortfolio moves a complete portfolio into the review workflow and
// notifies the admins.
func SubmitPortfolio(c *gin.Context) {
	portfolioID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid portfolio id"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	portfolio, svcErr := services.NewPortfolioService(config.DB).Submit(portfolioID, userID, role)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	notifySubmission(portfolio)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Portfolio submitted successfully",
		"portfolio": portfolio,
	})
}

// notifySubmission fans out submit notifications to every live admin account
// and confirms to the owner. Notification failures are logged only.
func notifySubmission(portfolio *models.Portfolio) {
	notif := services.NewNotificationService(config.DB)
	pid := portfolio.PortfolioID

	var owner models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", portfolio.UserID).
		First(&owner).Error; err == nil {
		_ = notif.NotifyWithEmail(owner,
			"Portfolio submitted",
			"Your portfolio \""+portfolio.Title+"\" has been submitted for review.",
			"success", &pid)
	}

	var admins []models.User
	if err := config.DB.
		Where("role IN ? AND delete_at IS NULL", []models.Role{models.RoleSuperAdmin, models.RoleAdmin}).
		Find(&admins).Error; err != nil {
		return
	}
	for _, admin := range admins {
		_ = notif.Notify(admin.UserID,
			"New portfolio submission",
			"Portfolio \""+portfolio.Title+"\" is awaiting review.",
			"info", &pid)
	}
}
