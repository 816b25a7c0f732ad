package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/trailmate/internal/middleware"
	"github.com/joshua-takyi/trailmate/internal/models"
	"github.com/joshua-takyi/trailmate/internal/services"
)

func loginRequired(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success":   false,
		"message":   message,
		"error":     services.ErrUnauthenticated.Error(),
		"login_url": middleware.LoginPath,
	})
}

// writeError maps service errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var verr *models.ValidationError
	var backend *models.BackendError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(verr))
	case errors.Is(err, services.ErrUnauthenticated):
		loginRequired(c, "Log in to continue")
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	case errors.As(err, &backend):
		c.JSON(http.StatusBadGateway, models.ErrorResponse(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
	}
}
