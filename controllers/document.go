package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"portfolio-review-api/config"
	"portfolio-review-api/middleware"
	"portfolio-review-api/models"
	"portfolio-review-api/services"
	"portfolio-review-api/utils"

	"github.com/gin-gonic/gin"
)

// UploadDocument stores a file into one of the portfolio's categories.
// Only the owner may upload, only while the portfolio is editable.
func UploadDocument(c *gin.Context) {
	portfolioID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid portfolio id"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	portfolio, svcErr := services.NewPortfolioService(config.DB).AuthorizeEdit(portfolioID, userID, role)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	categoryID, err := strconv.Atoi(c.PostForm("category_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	var category models.DocumentCategory
	if err := config.DB.Where("category_id = ? AND delete_at IS NULL", categoryID).
		First(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown document category"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size > utils.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	if !utils.IsAllowedUploadExtension(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	folder, err := utils.EnsurePortfolioFolder(utils.UploadRoot(), portfolio.UserID, portfolio.PortfolioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}

	storedFilename := utils.GenerateStoredFilename(file.Filename)
	fullPath := filepath.Join(folder, storedFilename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	now := time.Now()
	document := models.PortfolioDocument{
		PortfolioID:      portfolio.PortfolioID,
		CategoryID:       category.CategoryID,
		UploadedBy:       userID,
		OriginalFilename: file.Filename,
		StoredFilename:   storedFilename,
		MimeType:         utils.MimeTypeForUpload(file.Filename, file.Header.Get("Content-Type")),
		FileSize:         file.Size,
		Notes:            strings.TrimSpace(c.PostForm("notes")),
		UploadedAt:       &now,
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	if err := config.DB.Create(&document).Error; err != nil {
		// Remove the stored file so a failed insert leaves nothing behind.
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "File uploaded successfully",
		"document": document,
	})
}

// GetDocuments lists the portfolio's live documents, visibility per the
// portfolio access rule.
func GetDocuments(c *gin.Context) {
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

	var documents []models.PortfolioDocument
	if err := config.DB.Preload("Category").
		Where("portfolio_id = ? AND delete_at IS NULL", portfolio.PortfolioID).
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     len(documents),
	})
}

// DownloadDocument streams the stored file. ?preview=true renders inline with
// the recorded MIME type; otherwise the response forces a save dialog under
// the original display name. Owner, admin roles, and assigned evaluators
// (any assignment status) may read; everyone else gets a generic 403.
func DownloadDocument(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	document, svcErr := services.NewDocumentAccessService(config.DB).Authorize(documentID, userID, role)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	fullPath := filepath.Join(
		utils.UploadRoot(),
		fmt.Sprintf("user_%d", document.Portfolio.UserID),
		fmt.Sprintf("portfolio_%d", document.PortfolioID),
		document.StoredFilename,
	)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	preview := strings.EqualFold(c.Query("preview"), "true")
	if preview {
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", document.OriginalFilename))
		c.Header("Content-Type", document.MimeType)
	} else {
		c.Header("Content-Description", "File Transfer")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.OriginalFilename))
		c.Header("Content-Type", "application/octet-stream")
	}

	c.File(fullPath)
}

// DeleteDocument soft deletes a document while the portfolio is editable.
func DeleteDocument(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentRole(c)

	var document models.PortfolioDocument
	if err := config.DB.
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	// Re-check ownership and lifecycle through the shared guard.
	if _, svcErr := services.NewPortfolioService(config.DB).AuthorizeEdit(document.PortfolioID, userID, role); svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	now := time.Now()
	if err := config.DB.Model(&document).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
