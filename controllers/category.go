package controllers

import (
	"net/http"
	"strconv"
	"time"

	"portfolio-review-api/config"
	"portfolio-review-api/models"
	"portfolio-review-api/utils"

	"github.com/gin-gonic/gin"
)

// GetCategories returns the live document categories in display order.
// Available to every authenticated user; applicants need it for uploads.
func GetCategories(c *gin.Context) {
	var categories []models.DocumentCategory
	if err := config.DB.Where("delete_at IS NULL").
		Order("display_order").
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// CreateCategory adds a document category (admin, manage-rubrics).
func CreateCategory(c *gin.Context) {
	var req struct {
		CategoryName string `json:"category_name" binding:"required"`
		Code         string `json:"code" binding:"required"`
		IsRequired   bool   `json:"is_required"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	category := models.DocumentCategory{
		CategoryName: utils.SanitizeInput(req.CategoryName),
		Code:         utils.SanitizeInput(req.Code),
		IsRequired:   req.IsRequired,
		DisplayOrder: req.DisplayOrder,
		CreateAt:     &now,
		UpdateAt:     &now,
	}

	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

// UpdateCategory changes a category's fields, including the is_required flag
// that gates submission completeness.
func UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	var req struct {
		CategoryName *string `json:"category_name"`
		Code         *string `json:"code"`
		IsRequired   *bool   `json:"is_required"`
		DisplayOrder *int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.DocumentCategory
	if err := config.DB.Where("category_id = ? AND delete_at IS NULL", categoryID).
		First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.CategoryName != nil {
		updates["category_name"] = utils.SanitizeInput(*req.CategoryName)
	}
	if req.Code != nil {
		updates["code"] = utils.SanitizeInput(*req.Code)
	}
	if req.IsRequired != nil {
		updates["is_required"] = *req.IsRequired
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}

	if err := config.DB.Model(&category).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

// DeleteCategory soft deletes a category.
func DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	var category models.DocumentCategory
	if err := config.DB.Where("category_id = ? AND delete_at IS NULL", categoryID).
		First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&category).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
