package models

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v2"
)

//go:embed catalog.yaml
var catalogYAML []byte

var (
	catalogOnce sync.Once
	catalog     []Destination
	catalogErr  error
)

// ParseCatalog decodes a catalog document and checks every entry against the
// destination invariants.
func ParseCatalog(data []byte) ([]Destination, error) {
	var doc struct {
		Destinations []Destination `yaml:"destinations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Destinations))
	for i, d := range doc.Destinations {
		if d.ID == "" || d.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: id and name are required", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, d.ID)
		}
		seen[d.ID] = struct{}{}
		if !IsDifficulty(string(d.Difficulty)) {
			return nil, fmt.Errorf("catalog entry %q: unknown difficulty %q", d.ID, d.Difficulty)
		}
		for _, r := range d.Reviews {
			if r.Rating < 1 || r.Rating > 5 {
				return nil, fmt.Errorf("catalog entry %q: review %q rating out of range", d.ID, r.ID)
			}
		}
	}
	return doc.Destinations, nil
}

// Catalog returns the bundled destinations in their authored order. The
// returned slice is a copy; callers may reslice it freely.
func Catalog() ([]Destination, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseCatalog(catalogYAML)
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	return slices.Clone(catalog), nil
}

// FindDestination looks up a curated destination by id.
func FindDestination(destinations []Destination, id string) (*Destination, error) {
	for i := range destinations {
		if destinations[i].ID == id {
			d := destinations[i]
			return &d, nil
		}
	}
	return nil, ErrNotFound
}
