package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joshua-takyi/trailmate/internal/models"
)

type SavedService struct {
	savedRepo models.SavedRepo
	places    models.PlacesRepo
	catalog   []models.Destination
}

func NewSavedService(savedRepo models.SavedRepo, places models.PlacesRepo, catalog []models.Destination) *SavedService {
	return &SavedService{
		savedRepo: savedRepo,
		places:    places,
		catalog:   catalog,
	}
}

func (ss *SavedService) Save(ctx context.Context, userID, itemID, kind string) (*models.SavedPlaces, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(itemID) == "" || strings.ContainsAny(itemID, ".$") {
		return nil, models.NewValidationError("item_id", "invalid item ID")
	}
	if kind != models.SavedKindDestination && kind != models.SavedKindPlace {
		return nil, models.NewValidationError("kind", "kind must be either 'destination' or 'place'")
	}
	if err := ss.itemExists(ctx, itemID, kind); err != nil {
		return nil, err
	}

	return ss.savedRepo.SaveItem(ctx, userID, itemID, kind)
}

// itemExists resolves itemID against the catalog or the community places,
// depending on kind. Missing items report models.ErrNotFound.
func (ss *SavedService) itemExists(ctx context.Context, itemID, kind string) error {
	if kind == models.SavedKindDestination {
		_, err := models.FindDestination(ss.catalog, itemID)
		return err
	}
	if _, err := ss.places.GetPlaceByID(ctx, itemID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to look up place: %w", err)
	}
	return nil
}

func (ss *SavedService) Remove(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if strings.TrimSpace(itemID) == "" || strings.ContainsAny(itemID, ".$") {
		return models.NewValidationError("item_id", "invalid item ID")
	}

	if err := ss.savedRepo.RemoveItem(ctx, userID, itemID); err != nil {
		return fmt.Errorf("failed to remove saved item: %w", err)
	}
	return nil
}

func (ss *SavedService) List(ctx context.Context, userID string) (*models.SavedPlaces, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	return ss.savedRepo.GetSaved(ctx, userID)
}
