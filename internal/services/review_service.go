package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joshua-takyi/trailmate/internal/helpers"
	"github.com/joshua-takyi/trailmate/internal/models"
)

// ReviewForm is the standalone review form on a community place. A zero
// Rating means the user has not picked one yet.
type ReviewForm struct {
	Rating        int    `json:"rating"`
	Text          string `json:"text"`
	VisitedSeason string `json:"visited_season"`
}

// ToggleSeason selects season, or clears it when it is already selected.
// Clients that drive the form model in process use it for the season chips;
// the HTTP API receives the chosen season directly.
func (f *ReviewForm) ToggleSeason(season string) {
	if f.VisitedSeason == season {
		f.VisitedSeason = ""
		return
	}
	f.VisitedSeason = season
}

func (f *ReviewForm) Reset() {
	*f = ReviewForm{}
}

func (f *ReviewForm) Validate() error {
	if f.Rating == 0 {
		return models.NewValidationError("rating", "Please select a rating")
	}
	if f.Rating < 1 || f.Rating > 5 {
		return models.NewValidationError("rating", "rating must be between 1 and 5")
	}
	if strings.TrimSpace(f.Text) == "" {
		return models.NewValidationError("text", "Please write a review")
	}
	if f.VisitedSeason != "" && !models.IsSeason(f.VisitedSeason) {
		return models.NewValidationError("visited_season", "%q is not a valid season", f.VisitedSeason)
	}
	return nil
}

type ReviewService struct {
	reviews models.ReviewsRepo
	logger  *slog.Logger
}

func NewReviewService(reviews models.ReviewsRepo, logger *slog.Logger) *ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewService{reviews: reviews, logger: logger}
}

// Submit writes one review. Invalid input is rejected before any network
// call. On success the form is reset and onAdded, when set, is called so the
// caller can reload the review list. On failure the form is left as entered.
func (rs *ReviewService) Submit(ctx context.Context, placeID string, form *ReviewForm, userID, accessToken string, onAdded func()) (*models.Review, error) {
	if userID == "" {
		form.Reset()
		return nil, ErrUnauthenticated
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	review, err := rs.reviews.CreateReview(ctx, &models.NewReview{
		PlaceID:       placeID,
		UserID:        userID,
		Rating:        form.Rating,
		Text:          strings.TrimSpace(form.Text),
		VisitedSeason: helpers.NullIfEmpty(form.VisitedSeason),
	}, accessToken)
	if err != nil {
		rs.logger.Error("Review submission failed", "place_id", placeID, "user_id", userID, "error", err)
		return nil, err
	}

	form.Reset()
	if onAdded != nil {
		onAdded()
	}
	return review, nil
}

func (rs *ReviewService) ListReviews(ctx context.Context, placeID string) ([]*models.Review, error) {
	return rs.reviews.GetReviewsByPlace(ctx, placeID)
}
