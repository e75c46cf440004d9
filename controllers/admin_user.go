package controllers

import (
	"net/http"
	"strconv"
	"time"

	"portfolio-review-api/config"
	"portfolio-review-api/middleware"
	"portfolio-review-api/models"
	"portfolio-review-api/utils"

	"github.com/gin-gonic/gin"
)

// GetUsers lists live user accounts, optionally filtered by role.
func GetUsers(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("user_id").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

// CreateUser provisions an account with a role. Role assignment is admin-only
// by the route gate; there is no self-service role change anywhere.
func CreateUser(c *gin.Context) {
	var req struct {
		FirstName string      `json:"first_name" binding:"required"`
		LastName  string      `json:"last_name" binding:"required"`
		Email     string      `json:"email" binding:"required,email"`
		Password  string      `json:"password" binding:"required"`
		Role      models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var existing int64
	if err := config.DB.Model(&models.User{}).
		Where("email = ? AND delete_at IS NULL", req.Email).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	now := time.Now()
	user := models.User{
		FirstName: utils.SanitizeInput(req.FirstName),
		LastName:  utils.SanitizeInput(req.LastName),
		Email:     req.Email,
		Password:  hashed,
		Role:      req.Role,
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// UpdateUser changes profile fields and/or the assigned role.
func UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req struct {
		FirstName *string      `json:"first_name"`
		LastName  *string      `json:"last_name"`
		Role      *models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.FirstName != nil {
		updates["first_name"] = utils.SanitizeInput(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = utils.SanitizeInput(*req.LastName)
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
		updates["role"] = *req.Role
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DeleteUser soft deletes an account. Admins cannot delete themselves.
func DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	currentID, _ := middleware.CurrentUserID(c)
	if userID == currentID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&user).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetRoles exposes the role enum with display metadata for admin UIs.
func GetRoles(c *gin.Context) {
	roles := make([]gin.H, 0, len(models.AllRoles))
	for _, r := range models.AllRoles {
		roles = append(roles, gin.H{
			"name":  r,
			"label": r.Label(),
			"color": r.Color(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}
