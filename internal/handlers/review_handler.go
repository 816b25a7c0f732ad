package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/trailmate/internal/helpers"
	"github.com/joshua-takyi/trailmate/internal/middleware"
	"github.com/joshua-takyi/trailmate/internal/models"
	"github.com/joshua-takyi/trailmate/internal/services"
)

func ListPlaceReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID := helpers.StringTrim(c.Param("id"))

		reviews, err := rs.ListReviews(c.Request.Context(), placeID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}

// CreateReview appends a review and returns the reloaded review list.
// Anonymous callers get a login call-to-action instead.
func CreateReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			loginRequired(c, "Log in to write a review")
			return
		}

		placeID := helpers.StringTrim(c.Param("id"))
		if placeID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("place ID is required"))
			return
		}

		var form services.ReviewForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		var reviews []*models.Review
		var reloadErr error
		reload := func() {
			reviews, reloadErr = rs.ListReviews(c.Request.Context(), placeID)
		}

		review, err := rs.Submit(c.Request.Context(), placeID, &form, claims.UserID, claims.AccessToken, reload)
		if err != nil {
			var backend *models.BackendError
			if errors.As(err, &backend) {
				c.JSON(http.StatusBadGateway, models.ApiResponse{
					Success: false,
					Message: "Failed to submit review",
					Error:   err.Error(),
					Data:    form,
				})
				return
			}
			writeError(c, err)
			return
		}
		if reloadErr != nil {
			_ = c.Error(reloadErr)
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"review":  review,
			"reviews": reviews,
			"form":    form,
		}, "Review submitted!"))
	}
}
