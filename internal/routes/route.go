package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/trailmate/internal/container"
	"github.com/joshua-takyi/trailmate/internal/handlers"
	"github.com/joshua-takyi/trailmate/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = container.Config.MaxUploadBytes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	auth := container.Authenticator
	secureCookies := container.Config.IsProduction()

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "trailmate-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.Signup(container.UserService))
		v1.POST("/login", handlers.Login(container.UserService, secureCookies))
		v1.POST("/refresh", handlers.Refresh(container.UserService, secureCookies))
		v1.POST("/logout", handlers.Logout(secureCookies))

		v1.GET("/explore", handlers.Explore(container.ListingService))
		v1.GET("/destinations/:id", handlers.GetDestination(container.ListingService))
		v1.GET("/meta/options", handlers.FormOptions())
		v1.GET("/places/:id", handlers.GetPlace(container.PlaceService, container.Logger))
		v1.GET("/places/:id/reviews", handlers.ListPlaceReviews(container.ReviewService))

		// Anonymous visitors get a login prompt instead of a bare 401.
		v1.POST("/places/:id/reviews", auth.OptionalAuth(), handlers.CreateReview(container.ReviewService))
	}

	protected := v1.Group("/")
	protected.Use(auth.RequireAuth())
	{
		protected.GET("/me", handlers.Me())
		protected.POST("/places", handlers.CreatePlace(container.PlaceService, container.Config.MaxUploadBytes))
	}

	list, save, remove := handlers.SavedUnavailable(), handlers.SavedUnavailable(), handlers.SavedUnavailable()
	if container.SavedService != nil {
		list = handlers.ListSaved(container.SavedService)
		save = handlers.SaveItem(container.SavedService)
		remove = handlers.RemoveSavedItem(container.SavedService)
	}
	savedRoutes := protected.Group("/saved")
	{
		savedRoutes.GET("", list)
		savedRoutes.PUT("/:kind/:id", save)
		savedRoutes.DELETE("/:id", remove)
	}

	return r
}
