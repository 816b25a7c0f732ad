package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/trailmate/internal/helpers"
	"github.com/joshua-takyi/trailmate/internal/middleware"
	"github.com/joshua-takyi/trailmate/internal/models"
	"github.com/joshua-takyi/trailmate/internal/services"
)

const imagesField = "images"

func CreatePlace(ps *services.PlaceService, maxImageBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			loginRequired(c, "Log in to add a place")
			return
		}

		form := services.NewPlaceForm()
		if maxImageBytes > 0 {
			form.MaxImageSize = maxImageBytes
		}
		if err := c.ShouldBind(form); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		if mf, err := c.MultipartForm(); err == nil {
			uploads := make([]services.ImageUpload, 0, len(mf.File[imagesField]))
			for _, fh := range mf.File[imagesField] {
				uploads = append(uploads, services.ImageUpload{
					Filename:    fh.Filename,
					ContentType: fh.Header.Get("Content-Type"),
					Size:        fh.Size,
					Open: func() (io.ReadCloser, error) {
						return fh.Open()
					},
				})
			}
			if err := form.AddImages(uploads...); err != nil {
				writeError(c, err)
				return
			}
		} else if !errors.Is(err, http.ErrNotMultipart) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result, err := ps.Submit(c.Request.Context(), form, claims.UserID, claims.AccessToken)
		if err != nil {
			var subErr *services.SubmissionError
			if errors.As(err, &subErr) && subErr.Policy == services.AbortAfterPartialCommit {
				// The place is live but its first review was lost.
				c.JSON(http.StatusBadGateway, models.ApiResponse{
					Success: false,
					Error:   subErr.Error(),
					Message: "Place was published but the review could not be saved",
					Data:    gin.H{"place": subErr.Place, "step": subErr.Step},
				})
				return
			}
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(result, result.Place.Name+" has been published."))
	}
}

// GetPlace answers 404 for any load failure; the page does not tell a
// missing place apart from an unreachable backend.
func GetPlace(ps *services.PlaceService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		detail, err := ps.GetPlaceDetail(c.Request.Context(), id)
		if err != nil {
			logger.Warn("Place detail unavailable", "place_id", id, "error", err)
			c.JSON(http.StatusNotFound, models.ErrorResponse("Place not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(detail, ""))
	}
}
