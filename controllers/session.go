package controllers

import (
	"net/http"
	"strings"

	"portfolio-review-api/config"
	"portfolio-review-api/middleware"
	"portfolio-review-api/models"

	"github.com/gin-gonic/gin"
)

// sidebarStateCookie is the client preference cookie for the sidebar default.
const sidebarStateCookie = "sidebar_state"

// GetSessionContext returns everything a page render needs in one call:
// the current user, the permission flags for their role, and the sidebar
// preference. A missing cookie defaults to open.
func GetSessionContext(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	sidebarOpen := true
	if v, err := c.Cookie(sidebarStateCookie); err == nil {
		sidebarOpen = !strings.EqualFold(v, "false")
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"role": gin.H{
			"name":  user.Role,
			"label": user.Role.Label(),
			"color": user.Role.Color(),
		},
		"permissions":  models.PermissionFlags(user.Role),
		"sidebar_open": sidebarOpen,
	})
}
