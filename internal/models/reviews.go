package models

import (
	"encoding/json"
	"time"
)

// DefaultAuthorName is shown for reviewers without a display name.
const DefaultAuthorName = "User"

type ReviewAuthor struct {
	DisplayName string `json:"display_name"`
}

// Review is a rating-plus-text record attached to one place.
type Review struct {
	ID            string        `json:"id"`
	PlaceID       string        `json:"place_id"`
	UserID        string        `json:"user_id"`
	Rating        int           `json:"rating"`
	Text          string        `json:"text"`
	VisitedSeason *string       `json:"visited_season"`
	CreatedAt     time.Time     `json:"created_at"`
	Author        *ReviewAuthor `json:"profiles,omitempty"`
}

func (r *Review) AuthorName() string {
	if r.Author == nil || r.Author.DisplayName == "" {
		return DefaultAuthorName
	}
	return r.Author.DisplayName
}

// MarshalJSON adds author_name so clients never deal with the raw join.
func (r Review) MarshalJSON() ([]byte, error) {
	type review Review
	return json.Marshal(struct {
		review
		AuthorName string `json:"author_name"`
	}{review(r), r.AuthorName()})
}

type NewReview struct {
	PlaceID       string  `json:"place_id"`
	UserID        string  `json:"user_id"`
	Rating        int     `json:"rating"`
	Text          string  `json:"text"`
	VisitedSeason *string `json:"visited_season"`
}

func (r NewReview) ValidateReview() error {
	if r.Rating < 1 || r.Rating > 5 {
		return NewValidationError("rating", "rating must be between 1 and 5")
	}
	if r.PlaceID == "" {
		return NewValidationError("place_id", "invalid place ID")
	}
	if r.UserID == "" {
		return NewValidationError("user_id", "invalid user ID")
	}
	return nil
}
