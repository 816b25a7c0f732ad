package services

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/trailmate/internal/helpers"
	"github.com/joshua-takyi/trailmate/internal/models"
)

const (
	MaxPlaceImages      = 5
	DefaultReviewRating = 5
	DefaultMaxImageSize = 5 << 20
)

// ImageUpload is one photo selected in the place form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// PlaceForm collects the composite place submission: details, photos and an
// optional first review.
type PlaceForm struct {
	Name        string `form:"name" json:"name" validate:"max=200"`
	Location    string `form:"location" json:"location" validate:"max=200"`
	Description string `form:"description" json:"description" validate:"max=2000"`
	Category    string `form:"category" json:"category" validate:"category"`
	Difficulty  string `form:"difficulty" json:"difficulty" validate:"difficulty"`
	BestSeason  string `form:"best_season" json:"best_season" validate:"max=100"`
	Elevation   string `form:"elevation" json:"elevation" validate:"max=50"`
	Duration    string `form:"duration" json:"duration" validate:"max=50"`

	SeasonBest  string `form:"season_best" json:"season_best" validate:"max=500"`
	SeasonOkay  string `form:"season_okay" json:"season_okay" validate:"max=500"`
	SeasonAvoid string `form:"season_avoid" json:"season_avoid" validate:"max=500"`

	PackingEssential string `form:"packing_essential" json:"packing_essential" validate:"max=1000"`
	PackingOptional  string `form:"packing_optional" json:"packing_optional" validate:"max=1000"`
	PackingAvoid     string `form:"packing_avoid" json:"packing_avoid" validate:"max=1000"`
	SafetyTips       string `form:"safety_tips" json:"safety_tips" validate:"max=1000"`

	Latitude  string `form:"latitude" json:"latitude"`
	Longitude string `form:"longitude" json:"longitude"`

	ReviewRating int    `form:"review_rating" json:"review_rating"`
	ReviewText   string `form:"review_text" json:"review_text" validate:"max=2000"`
	ReviewSeason string `form:"review_season" json:"review_season" validate:"omitempty,season"`

	MaxImageSize int64 `form:"-" json:"-"`

	images []ImageUpload
}

func NewPlaceForm() *PlaceForm {
	return &PlaceForm{
		Category:     models.DefaultCategory,
		Difficulty:   models.DefaultDifficulty,
		ReviewRating: DefaultReviewRating,
		MaxImageSize: DefaultMaxImageSize,
	}
}

// AddImages appends photos to the selection. Going past MaxPlaceImages in
// total rejects the whole batch and leaves the selection untouched.
func (f *PlaceForm) AddImages(files ...ImageUpload) error {
	if len(f.images)+len(files) > MaxPlaceImages {
		return models.NewValidationError("images", "Max %d images allowed", MaxPlaceImages)
	}
	f.images = append(f.images, files...)
	return nil
}

func (f *PlaceForm) Images() []ImageUpload {
	return append([]ImageUpload(nil), f.images...)
}

// HasReview reports whether the form carries a first review.
func (f *PlaceForm) HasReview() bool {
	return strings.TrimSpace(f.ReviewText) != ""
}

// Validate runs every client-local check. It never touches the network.
func (f *PlaceForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Location) == "" {
		return models.NewValidationError("name", "Name and location are required")
	}

	if err := models.Validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0])
		}
		return models.NewValidationError("", "invalid place data provided: %v", err)
	}

	if _, err := parseCoordinate(f.Latitude, -90, 90); err != nil {
		return models.NewValidationError("latitude", "latitude %v", err)
	}
	if _, err := parseCoordinate(f.Longitude, -180, 180); err != nil {
		return models.NewValidationError("longitude", "longitude %v", err)
	}

	if len(f.images) > MaxPlaceImages {
		return models.NewValidationError("images", "Max %d images allowed", MaxPlaceImages)
	}
	maxSize := f.MaxImageSize
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	for _, img := range f.images {
		if img.Size > maxSize {
			return models.NewValidationError("images", "%s is larger than %dMB", img.Filename, maxSize>>20)
		}
	}

	if f.HasReview() && (f.ReviewRating < 1 || f.ReviewRating > 5) {
		return models.NewValidationError("review_rating", "rating must be between 1 and 5")
	}

	return nil
}

// NewPlace converts the form into the insert payload. Empty optional text is
// stored as absent; list fields are split one item per line.
func (f *PlaceForm) NewPlace(userID string, imageURLs []string) *models.NewPlace {
	lat, _ := parseCoordinate(f.Latitude, -90, 90)
	lng, _ := parseCoordinate(f.Longitude, -180, 180)
	if imageURLs == nil {
		imageURLs = []string{}
	}

	return &models.NewPlace{
		UserID:           userID,
		Name:             strings.TrimSpace(f.Name),
		Location:         strings.TrimSpace(f.Location),
		Description:      helpers.NullIfEmpty(strings.TrimSpace(f.Description)),
		Category:         f.Category,
		Difficulty:       f.Difficulty,
		BestSeason:       helpers.NullIfEmpty(f.BestSeason),
		Elevation:        helpers.NullIfEmpty(f.Elevation),
		Duration:         helpers.NullIfEmpty(f.Duration),
		SeasonBest:       helpers.NullIfEmpty(f.SeasonBest),
		SeasonOkay:       helpers.NullIfEmpty(f.SeasonOkay),
		SeasonAvoid:      helpers.NullIfEmpty(f.SeasonAvoid),
		PackingEssential: helpers.SplitLines(f.PackingEssential),
		PackingOptional:  helpers.SplitLines(f.PackingOptional),
		PackingAvoid:     helpers.SplitLines(f.PackingAvoid),
		SafetyTips:       helpers.SplitLines(f.SafetyTips),
		Latitude:         lat,
		Longitude:        lng,
		ImageURLs:        imageURLs,
	}
}

// NewReview builds the first review for a freshly created place.
func (f *PlaceForm) NewReview(placeID, userID string) *models.NewReview {
	return &models.NewReview{
		PlaceID:       placeID,
		UserID:        userID,
		Rating:        f.ReviewRating,
		Text:          strings.TrimSpace(f.ReviewText),
		VisitedSeason: helpers.NullIfEmpty(f.ReviewSeason),
	}
}

func parseCoordinate(raw string, min, max float64) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("must be a number")
	}
	if v < min || v > max {
		return nil, fmt.Errorf("must be between %g and %g", min, max)
	}
	return &v, nil
}

func fieldError(fe validator.FieldError) *models.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "max":
		return models.NewValidationError(field, "%s must be at most %s characters", fe.Field(), fe.Param())
	case "category", "difficulty", "season":
		return models.NewValidationError(field, "%s %q is not a valid %s", fe.Field(), fe.Value(), fe.Tag())
	default:
		return models.NewValidationError(field, "%s is invalid", fe.Field())
	}
}
