package models

import (
	"time"
)

const (
	PlacesTable  = "places"
	ReviewsTable = "reviews"
)

// Place is a community-submitted destination stored in the places table.
// Rating and ReviewCount are maintained by the database, never by this service.
type Place struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	Description      *string   `json:"description"`
	Category         string    `json:"category"`
	Difficulty       string    `json:"difficulty"`
	BestSeason       *string   `json:"best_season"`
	Elevation        *string   `json:"elevation"`
	Duration         *string   `json:"duration"`
	SeasonBest       *string   `json:"season_best"`
	SeasonOkay       *string   `json:"season_okay"`
	SeasonAvoid      *string   `json:"season_avoid"`
	PackingEssential []string  `json:"packing_essential"`
	PackingOptional  []string  `json:"packing_optional"`
	PackingAvoid     []string  `json:"packing_avoid"`
	SafetyTips       []string  `json:"safety_tips"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	ImageURLs        []string  `json:"image_urls"`
	Rating           float64   `json:"rating"`
	ReviewCount      int       `json:"review_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewPlace is the insert payload for the places table. Nil pointers are sent
// as null so optional fields are stored as absent.
type NewPlace struct {
	UserID           string   `json:"user_id"`
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	Description      *string  `json:"description"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	BestSeason       *string  `json:"best_season"`
	Elevation        *string  `json:"elevation"`
	Duration         *string  `json:"duration"`
	SeasonBest       *string  `json:"season_best"`
	SeasonOkay       *string  `json:"season_okay"`
	SeasonAvoid      *string  `json:"season_avoid"`
	PackingEssential []string `json:"packing_essential"`
	PackingOptional  []string `json:"packing_optional"`
	PackingAvoid     []string `json:"packing_avoid"`
	SafetyTips       []string `json:"safety_tips"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	ImageURLs        []string `json:"image_urls"`
}

// PlaceDetail is everything the community detail page shows.
type PlaceDetail struct {
	Place   *Place    `json:"place"`
	Reviews []*Review `json:"reviews"`
}
