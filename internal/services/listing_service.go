package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/trailmate/internal/models"
)

// ListingService builds the explore feed: bundled catalog entries followed by
// community places from Supabase.
type ListingService struct {
	places        models.PlacesRepo
	catalog       []models.Destination
	remoteTimeout time.Duration
	logger        *slog.Logger
}

func NewListingService(places models.PlacesRepo, catalog []models.Destination, remoteTimeout time.Duration, logger *slog.Logger) *ListingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListingService{
		places:        places,
		catalog:       catalog,
		remoteTimeout: remoteTimeout,
		logger:        logger,
	}
}

// Feed holds one snapshot of the remote places. Searching a feed filters the
// snapshot locally and never fetches again; a new snapshot needs a new Mount.
type Feed struct {
	catalog  []models.Destination
	snapshot []*models.Place
}

// Listing is the result of one search over a feed.
type Listing struct {
	Search       string               `json:"search"`
	Destinations []models.Destination `json:"destinations"`
	Places       []*models.Place      `json:"places,omitempty"`
	NoResults    bool                 `json:"no_results"`
}

type listResult struct {
	places []*models.Place
	err    error
}

// Mount fetches the remote snapshot. A failed or slow fetch is logged and the
// feed degrades to catalog only; it never returns an error.
func (ls *ListingService) Mount(ctx context.Context) *Feed {
	feed := &Feed{catalog: ls.catalog}

	if ls.remoteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ls.remoteTimeout)
		defer cancel()
	}

	// postgrest-go does not take a context, so the deadline is enforced here.
	resultChan := make(chan listResult, 1)
	go func() {
		places, err := ls.places.ListPlaces(ctx)
		resultChan <- listResult{places: places, err: err}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			ls.logger.Warn("Community places unavailable, serving catalog only", "error", res.err)
			return feed
		}
		feed.snapshot = res.places
	case <-ctx.Done():
		ls.logger.Warn("Community places fetch timed out, serving catalog only", "error", ctx.Err())
	}

	return feed
}

// Search filters both sources by term. Each source keeps its own order:
// catalog in authored order, places as the store returned them.
func (f *Feed) Search(term string) *Listing {
	term = strings.ToLower(term)

	listing := &Listing{
		Search:       term,
		Destinations: []models.Destination{},
	}
	for _, d := range f.catalog {
		if MatchesSearch(term, d.Name, d.Location, d.Category) {
			listing.Destinations = append(listing.Destinations, d)
		}
	}
	for _, p := range f.snapshot {
		if MatchesSearch(term, p.Name, p.Location, p.Category) {
			listing.Places = append(listing.Places, p)
		}
	}

	listing.NoResults = len(listing.Destinations) == 0 && len(listing.Places) == 0
	return listing
}

// MatchesSearch reports whether term is empty or a case-insensitive substring
// of any of fields.
func MatchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Destination returns one curated guide from the catalog.
func (ls *ListingService) Destination(id string) (*models.Destination, error) {
	d, err := models.FindDestination(ls.catalog, id)
	if err != nil {
		return nil, fmt.Errorf("destination %q: %w", id, err)
	}
	return d, nil
}
