package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/trailmate/internal/config"
	"github.com/joshua-takyi/trailmate/internal/connect"
	"github.com/joshua-takyi/trailmate/internal/helpers"
	"github.com/joshua-takyi/trailmate/internal/middleware"
	"github.com/joshua-takyi/trailmate/internal/models"
	"github.com/joshua-takyi/trailmate/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	TokenVerifier  *helpers.TokenVerifier
	Authenticator  *middleware.Authenticator
	UserService    *services.UserService
	ListingService *services.ListingService
	PlaceService   *services.PlaceService
	ReviewService  *services.ReviewService
	// nil when MongoDB is not configured
	SavedService *services.SavedService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
) (*Container, error) {
	supa := models.SupabaseNewRepo(supabaseClient, cfg.SupabaseURL, cfg.SupabaseAnonKey).
		WithRequestTimeout(cfg.SupabaseReadTimeout)

	store, err := newObjectStore(cfg, supa)
	if err != nil {
		return nil, err
	}

	catalog, err := models.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load destination catalog: %w", err)
	}

	verifier, err := helpers.NewTokenVerifier(ctx, cfg.SupabaseJWKSURL, cfg.SupabaseJWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to set up token verification: %w", err)
	}

	userService := services.NewUserService(supa)
	placeService := services.NewPlaceService(supa, supa, store, logger)

	c := &Container{
		Config:         cfg,
		Logger:         logger,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,
		TokenVerifier:  verifier,
		Authenticator:  middleware.NewAuthenticator(verifier, userService, logger, cfg.IsProduction()),
		UserService:    userService,
		ListingService: services.NewListingService(supa, catalog, cfg.ListingRemoteTimeout, logger),
		PlaceService:   placeService,
		ReviewService:  services.NewReviewService(supa, logger),
	}

	if mongoDBClient != nil {
		mdb := models.MongodbNewRepo(mongoDBClient)
		idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := mdb.EnsureIndexes(idxCtx); err != nil {
			logger.Warn("Failed to ensure saved places indexes", "error", err)
		}
		c.SavedService = services.NewSavedService(mdb, supa, catalog)
	}

	logger.Info("Container ready",
		"storage_provider", cfg.StorageProvider,
		"catalog_size", len(catalog),
		"saved_places", c.SavedService != nil,
	)
	return c, nil
}

func newObjectStore(cfg *config.Config, supa *models.SupabaseRepo) (models.ObjectStore, error) {
	switch cfg.StorageProvider {
	case models.StorageCloudinary:
		cld, err := connect.CloudinaryCredentials(cfg)
		if err != nil {
			return nil, err
		}
		return models.NewCloudinaryStorage(cld, cfg.ImagesBucket), nil
	case models.StorageS3:
		client, err := connect.S3Client(cfg)
		if err != nil {
			return nil, err
		}
		return models.NewS3Storage(client, cfg.S3Bucket, cfg.S3PublicBaseURL), nil
	default:
		return models.NewSupabaseStorage(supa, cfg.ImagesBucket), nil
	}
}

// Close releases background resources owned by the container.
func (c *Container) Close() {
	if c.TokenVerifier != nil {
		c.TokenVerifier.Close()
	}
}
