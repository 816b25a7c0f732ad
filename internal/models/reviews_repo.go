package models

import (
	"context"
	"fmt"
)

const reviewColumns = "*, profiles(display_name)"

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *NewReview, accessToken string) (*Review, error)
	GetReviewsByPlace(ctx context.Context, placeID string) ([]*Review, error)
}

func (su *SupabaseRepo) CreateReview(ctx context.Context, review *NewReview, accessToken string) (*Review, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, err
	}

	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	var created []Review
	_, err = client.From(ReviewsTable).
		Insert(review, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, &BackendError{Op: "insert review", Err: err}
	}

	if len(created) == 0 {
		return nil, &BackendError{Op: "insert review", Err: fmt.Errorf("no review returned after insert")}
	}

	return &created[0], nil
}

func (su *SupabaseRepo) GetReviewsByPlace(ctx context.Context, placeID string) ([]*Review, error) {
	var reviews []*Review
	_, err := newestFirst(su.from(ReviewsTable).
		Select(reviewColumns, "", false).
		Eq("place_id", placeID)).
		ExecuteTo(&reviews)
	if err != nil {
		return nil, &BackendError{Op: "list reviews", Err: err}
	}
	if reviews == nil {
		reviews = []*Review{}
	}
	return reviews, nil
}
