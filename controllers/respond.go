package controllers

import (
	"errors"
	"net/http"

	"portfolio-review-api/services"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service-layer failures onto HTTP responses in one
// place. Forbidden stays generic so responses never reveal whether the
// resource exists or who owns it.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	default:
		if ve, ok := services.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation failed",
				"details": ve.Details,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
