package models

import "slices"

const (
	DefaultCategory   = "General"
	DefaultDifficulty = "Easy"
)

var Categories = []string{
	"Trekking",
	"Beach & Culture",
	"Jungle & Wildlife",
	"Heritage & Culture",
	"Mountain",
	"Desert",
	"Urban",
	"General",
}

var Difficulties = []string{"Easy", "Moderate", "Hard", "Expert"}

var Seasons = []string{"Spring", "Summer", "Autumn", "Winter", "Dry Season", "Wet Season"}

func IsCategory(s string) bool   { return slices.Contains(Categories, s) }
func IsDifficulty(s string) bool { return slices.Contains(Difficulties, s) }
func IsSeason(s string) bool     { return slices.Contains(Seasons, s) }

// FormOptions is served to clients so the select inputs stay in sync with validation.
type FormOptions struct {
	Categories   []string `json:"categories"`
	Difficulties []string `json:"difficulties"`
	Seasons      []string `json:"seasons"`
}

func Options() FormOptions {
	return FormOptions{
		Categories:   slices.Clone(Categories),
		Difficulties: slices.Clone(Difficulties),
		Seasons:      slices.Clone(Seasons),
	}
}
