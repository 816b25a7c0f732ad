package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/trailmate/internal/helpers"
	"github.com/joshua-takyi/trailmate/internal/models"
	"github.com/joshua-takyi/trailmate/internal/services"
)

// Explore serves the merged catalog + community feed for ?search=.
func Explore(ls *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := strings.ToLower(c.Query("search"))

		feed := ls.Mount(c.Request.Context())
		c.JSON(http.StatusOK, models.SuccessResponse(feed.Search(search), ""))
	}
}

func GetDestination(ls *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		dest, err := ls.Destination(id)
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Destination not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(dest, ""))
	}
}

func FormOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(models.Options(), ""))
	}
}
