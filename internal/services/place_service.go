package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/trailmate/internal/models"
)

var ErrUnauthenticated = errors.New("login required")

// FailurePolicy says what is already persisted when a submission step fails.
type FailurePolicy int

const (
	// AbortBeforeCommit: no place or review row exists. Uploaded objects from
	// earlier images are left in storage.
	AbortBeforeCommit FailurePolicy = iota
	// AbortAfterPartialCommit: the place row exists and is not rolled back.
	AbortAfterPartialCommit
)

func (p FailurePolicy) String() string {
	switch p {
	case AbortBeforeCommit:
		return "abort_before_commit"
	case AbortAfterPartialCommit:
		return "abort_after_partial_commit"
	default:
		return "unknown"
	}
}

type SubmissionStep string

const (
	StepValidate     SubmissionStep = "validate"
	StepUploadImages SubmissionStep = "upload_images"
	StepInsertPlace  SubmissionStep = "insert_place"
	StepInsertReview SubmissionStep = "insert_review"
)

// SubmissionError reports the step a composite submission stopped at. Error
// returns the underlying message unchanged.
type SubmissionError struct {
	Step   SubmissionStep
	Policy FailurePolicy
	// Place is set when the place row was created before the failure.
	Place *models.Place
	Err   error
}

func (e *SubmissionError) Error() string {
	return e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

type SubmissionResult struct {
	Place    *models.Place  `json:"place"`
	Review   *models.Review `json:"review,omitempty"`
	Redirect string         `json:"redirect"`
}

// submission is the state threaded through the steps of one Submit call.
type submission struct {
	form        *PlaceForm
	userID      string
	accessToken string
	imageURLs   []string
	place       *models.Place
	review      *models.Review
}

type submissionStep struct {
	name   SubmissionStep
	policy FailurePolicy
	run    func(ctx context.Context, s *submission) error
}

type PlaceService struct {
	places  models.PlacesRepo
	reviews models.ReviewsRepo
	store   models.ObjectStore
	logger  *slog.Logger

	now    func() time.Time
	suffix func() string
}

func NewPlaceService(places models.PlacesRepo, reviews models.ReviewsRepo, store models.ObjectStore, logger *slog.Logger) *PlaceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaceService{
		places:  places,
		reviews: reviews,
		store:   store,
		logger:  logger,
		now:     time.Now,
		suffix:  randomSuffix,
	}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// UploadPath namespaces an image under its owner and gives it a
// collision-resistant name that keeps the original extension.
func (ps *PlaceService) UploadPath(userID, filename string) string {
	return fmt.Sprintf("%s/%s-%s%s",
		userID,
		strconv.FormatInt(ps.now().UnixMilli(), 10),
		ps.suffix(),
		filepath.Ext(filename),
	)
}

// Submit runs the composite submission: validate, upload images one at a
// time, insert the place, then insert the optional first review. The first
// failing step stops the sequence.
func (ps *PlaceService) Submit(ctx context.Context, form *PlaceForm, userID, accessToken string) (*SubmissionResult, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	s := &submission{form: form, userID: userID, accessToken: accessToken}
	steps := []submissionStep{
		{name: StepValidate, policy: AbortBeforeCommit, run: ps.validate},
		{name: StepUploadImages, policy: AbortBeforeCommit, run: ps.uploadImages},
		{name: StepInsertPlace, policy: AbortBeforeCommit, run: ps.insertPlace},
		{name: StepInsertReview, policy: AbortAfterPartialCommit, run: ps.insertReview},
	}

	for _, step := range steps {
		ps.logger.Debug("Place submission step", "step", step.name, "user_id", userID)
		if err := step.run(ctx, s); err != nil {
			if step.name != StepValidate {
				ps.logger.Error("Place submission failed",
					"step", step.name,
					"policy", step.policy.String(),
					"user_id", userID,
					"uploaded", len(s.imageURLs),
					"error", err,
				)
			}
			return nil, &SubmissionError{Step: step.name, Policy: step.policy, Place: s.place, Err: err}
		}
	}

	ps.logger.Info("Place published", "place_id", s.place.ID, "user_id", userID, "images", len(s.imageURLs))
	return &SubmissionResult{
		Place:    s.place,
		Review:   s.review,
		Redirect: "/place/" + s.place.ID,
	}, nil
}

func (ps *PlaceService) validate(ctx context.Context, s *submission) error {
	return s.form.Validate()
}

// uploadImages is strictly sequential: image n+1 starts only after image n
// is stored and its public URL resolved.
func (ps *PlaceService) uploadImages(ctx context.Context, s *submission) error {
	for _, img := range s.form.images {
		path := ps.UploadPath(s.userID, img.Filename)
		if err := ps.uploadOne(ctx, path, img, s.accessToken); err != nil {
			return err
		}
		url, err := ps.store.PublicURL(path)
		if err != nil {
			return err
		}
		s.imageURLs = append(s.imageURLs, url)
	}
	return nil
}

func (ps *PlaceService) uploadOne(ctx context.Context, path string, img ImageUpload, accessToken string) error {
	if img.Open == nil {
		return fmt.Errorf("image %s has no content", img.Filename)
	}
	file, err := img.Open()
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", img.Filename, err)
	}
	defer file.Close()

	return ps.store.Upload(ctx, path, file, img.ContentType, accessToken)
}

func (ps *PlaceService) insertPlace(ctx context.Context, s *submission) error {
	place, err := ps.places.CreatePlace(ctx, s.form.NewPlace(s.userID, s.imageURLs), s.accessToken)
	if err != nil {
		return err
	}
	s.place = place
	return nil
}

func (ps *PlaceService) insertReview(ctx context.Context, s *submission) error {
	if !s.form.HasReview() {
		return nil
	}
	review, err := ps.reviews.CreateReview(ctx, s.form.NewReview(s.place.ID, s.userID), s.accessToken)
	if err != nil {
		return err
	}
	s.review = review
	return nil
}

// GetPlaceDetail loads a community place and its reviews, newest first. Only
// a failure to load the place itself is an error.
func (ps *PlaceService) GetPlaceDetail(ctx context.Context, id string) (*models.PlaceDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ErrNotFound
	}

	place, err := ps.places.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The place is still shown when its reviews cannot be loaded.
	reviews, err := ps.reviews.GetReviewsByPlace(ctx, id)
	if err != nil {
		ps.logger.Warn("Reviews unavailable, showing place without them", "place_id", id, "error", err)
		reviews = []*models.Review{}
	}

	return &models.PlaceDetail{Place: place, Reviews: reviews}, nil
}
