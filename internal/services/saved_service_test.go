package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joshua-takyi/trailmate/internal/models"
)

type fakeSaved struct {
	items map[string]map[string]models.SavedItem
}

func (f *fakeSaved) SaveItem(ctx context.Context, userID, itemID, kind string) (*models.SavedPlaces, error) {
	if f.items == nil {
		f.items = map[string]map[string]models.SavedItem{}
	}
	if f.items[userID] == nil {
		f.items[userID] = map[string]models.SavedItem{}
	}
	f.items[userID][itemID] = models.SavedItem{ItemID: itemID, Kind: kind}
	return &models.SavedPlaces{UserID: userID, Items: f.items[userID]}, nil
}

func (f *fakeSaved) RemoveItem(ctx context.Context, userID, itemID string) error {
	return nil
}

func (f *fakeSaved) GetSaved(ctx context.Context, userID string) (*models.SavedPlaces, error) {
	return &models.SavedPlaces{UserID: userID, Items: f.items[userID]}, nil
}

func newTestSavedService(t *testing.T, repo *fakeSaved) *SavedService {
	t.Helper()
	places := &fakePlaces{byID: map[string]*models.Place{"p1": {ID: "p1", Name: "Everest BC"}}}
	return NewSavedService(repo, places, testCatalog(t))
}

func TestSavedServiceSave(t *testing.T) {
	repo := &fakeSaved{}
	ss := newTestSavedService(t, repo)

	res, err := ss.Save(context.Background(), "u1", "bali-beaches", models.SavedKindDestination)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if item, ok := res.Items["bali-beaches"]; len(res.Items) != 1 || !ok || item.Kind != models.SavedKindDestination {
		t.Errorf("items = %+v", res.Items)
	}

	tests := []struct {
		userID, itemID, kind string
		wantField            string
	}{
		{"u1", "", models.SavedKindPlace, "item_id"},
		{"u1", "a.b", models.SavedKindPlace, "item_id"},
		{"u1", "$where", models.SavedKindPlace, "item_id"},
		{"u1", "p1", "event", "kind"},
	}
	for _, tt := range tests {
		_, err := ss.Save(context.Background(), tt.userID, tt.itemID, tt.kind)
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) || vErr.Field != tt.wantField {
			t.Errorf("Save(%q, %q) error = %v, want %s validation error", tt.itemID, tt.kind, err, tt.wantField)
		}
	}

	if _, err := ss.Save(context.Background(), "", "p1", models.SavedKindPlace); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
}

func TestSavedServiceRemoveAndList(t *testing.T) {
	ss := newTestSavedService(t, &fakeSaved{})

	if err := ss.Remove(context.Background(), "u1", "p1"); err != nil {
		t.Errorf("Remove() error = %v", err)
	}
	if err := ss.Remove(context.Background(), "", "p1"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}

	res, err := ss.List(context.Background(), "u1")
	if err != nil || res.UserID != "u1" {
		t.Errorf("List() = %+v, %v", res, err)
	}
}

func TestSavedServiceSaveRequiresExistingItem(t *testing.T) {
	repo := &fakeSaved{}
	ss := newTestSavedService(t, repo)

	if _, err := ss.Save(context.Background(), "u1", "p1", models.SavedKindPlace); err != nil {
		t.Errorf("Save(place p1) error = %v", err)
	}

	tests := []struct {
		itemID, kind string
	}{
		{"atlantis", models.SavedKindDestination},
		{"missing", models.SavedKindPlace},
		{"p1", models.SavedKindDestination},
		{"bali-beaches", models.SavedKindPlace},
	}
	for _, tt := range tests {
		if _, err := ss.Save(context.Background(), "u1", tt.itemID, tt.kind); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Save(%q, %q) error = %v, want ErrNotFound", tt.itemID, tt.kind, err)
		}
	}
	if got := len(repo.items["u1"]); got != 1 {
		t.Errorf("saved %d items, want only p1", got)
	}
}
