package models

import (
	"context"
	"fmt"

	"github.com/supabase-community/postgrest-go"
)

type PlacesRepo interface {
	CreatePlace(ctx context.Context, place *NewPlace, accessToken string) (*Place, error)
	ListPlaces(ctx context.Context) ([]*Place, error)
	GetPlaceByID(ctx context.Context, id string) (*Place, error)
}

// newestFirst orders by creation time and breaks ties on id so the feed is
// stable when two rows share a timestamp.
func newestFirst(f *postgrest.FilterBuilder) *postgrest.FilterBuilder {
	return f.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Order("id", &postgrest.OrderOpts{Ascending: false})
}

func (su *SupabaseRepo) CreatePlace(ctx context.Context, place *NewPlace, accessToken string) (*Place, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	var created []Place
	_, err = client.From(PlacesTable).
		Insert(place, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, &BackendError{Op: "insert place", Err: err}
	}

	if len(created) == 0 {
		return nil, &BackendError{Op: "insert place", Err: fmt.Errorf("no place returned after insert")}
	}

	return &created[0], nil
}

func (su *SupabaseRepo) ListPlaces(ctx context.Context) ([]*Place, error) {
	var places []*Place
	_, err := newestFirst(su.from(PlacesTable).Select("*", "", false)).
		ExecuteTo(&places)
	if err != nil {
		return nil, &BackendError{Op: "list places", Err: err}
	}
	if places == nil {
		places = []*Place{}
	}
	return places, nil
}

func (su *SupabaseRepo) GetPlaceByID(ctx context.Context, id string) (*Place, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	// PostgREST returns an array even for a primary key match.
	var places []Place
	_, err := su.from(PlacesTable).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&places)
	if err != nil {
		return nil, &BackendError{Op: "get place", Err: err}
	}

	if len(places) == 0 {
		return nil, ErrNotFound
	}

	return &places[0], nil
}
