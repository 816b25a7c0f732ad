package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/trailmate/internal/helpers"
	"github.com/joshua-takyi/trailmate/internal/middleware"
	"github.com/joshua-takyi/trailmate/internal/models"
	"github.com/joshua-takyi/trailmate/internal/services"
)

func SaveItem(s *services.SavedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			loginRequired(c, "Log in to save places")
			return
		}

		res, err := s.Save(c.Request.Context(), claims.UserID, helpers.StringTrim(c.Param("id")), c.Param("kind"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, "Saved"))
	}
}

func RemoveSavedItem(s *services.SavedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			loginRequired(c, "Log in to save places")
			return
		}

		if err := s.Remove(c.Request.Context(), claims.UserID, helpers.StringTrim(c.Param("id"))); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Item removed from saved places"))
	}
}

func ListSaved(s *services.SavedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			loginRequired(c, "Log in to save places")
			return
		}

		res, err := s.List(c.Request.Context(), claims.UserID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, ""))
	}
}

// SavedUnavailable answers saved-place routes when MongoDB is not configured.
func SavedUnavailable() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse("saved places are not enabled"))
	}
}
