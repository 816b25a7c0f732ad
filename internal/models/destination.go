package models

type Difficulty string

// SeasonalInfo is the best/okay/avoid triple shown on every guide.
type SeasonalInfo struct {
	Best  string `yaml:"best" json:"best"`
	Okay  string `yaml:"okay" json:"okay"`
	Avoid string `yaml:"avoid" json:"avoid"`
}

type PackingList struct {
	Essential []string `yaml:"essential" json:"essential"`
	Optional  []string `yaml:"optional" json:"optional"`
	Avoid     []string `yaml:"avoid" json:"avoid"`
}

// CatalogReview is a canned review bundled with a curated destination.
type CatalogReview struct {
	ID            string `yaml:"id" json:"id"`
	Author        string `yaml:"author" json:"author"`
	Avatar        string `yaml:"avatar" json:"avatar"`
	Date          string `yaml:"date" json:"date"`
	Rating        int    `yaml:"rating" json:"rating"`
	Text          string `yaml:"text" json:"text"`
	VisitedSeason string `yaml:"visited_season" json:"visited_season"`
}

// Destination is a curated guide from the bundled catalog. It is never
// mutated at runtime.
type Destination struct {
	ID           string          `yaml:"id" json:"id"`
	Name         string          `yaml:"name" json:"name"`
	Location     string          `yaml:"location" json:"location"`
	Image        string          `yaml:"image" json:"image"`
	Difficulty   Difficulty      `yaml:"difficulty" json:"difficulty"`
	BestSeason   string          `yaml:"best_season" json:"best_season"`
	Rating       float64         `yaml:"rating" json:"rating"`
	ReviewCount  int             `yaml:"review_count" json:"review_count"`
	Category     string          `yaml:"category" json:"category"`
	Elevation    string          `yaml:"elevation,omitempty" json:"elevation,omitempty"`
	Duration     string          `yaml:"duration,omitempty" json:"duration,omitempty"`
	Description  string          `yaml:"description" json:"description"`
	SeasonalInfo SeasonalInfo    `yaml:"seasonal_info" json:"seasonal_info"`
	PackingList  PackingList     `yaml:"packing_list" json:"packing_list"`
	SafetyTips   []string        `yaml:"safety_tips" json:"safety_tips"`
	Reviews      []CatalogReview `yaml:"reviews" json:"reviews"`
}
