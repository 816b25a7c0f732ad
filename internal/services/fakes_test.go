package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/joshua-takyi/trailmate/internal/models"
)

type fakePlaces struct {
	mu       sync.Mutex
	list     []*models.Place
	listErr  error
	block    chan struct{}
	listCall int

	created   []*models.NewPlace
	createErr error
	byID      map[string]*models.Place
}

func (f *fakePlaces) CreatePlace(ctx context.Context, p *models.NewPlace, accessToken string) (*models.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, p)
	return &models.Place{
		ID:        fmt.Sprintf("place-%d", len(f.created)),
		UserID:    p.UserID,
		Name:      p.Name,
		Location:  p.Location,
		Category:  p.Category,
		ImageURLs: p.ImageURLs,
	}, nil
}

func (f *fakePlaces) ListPlaces(ctx context.Context) ([]*models.Place, error) {
	f.mu.Lock()
	f.listCall++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.list, f.listErr
}

func (f *fakePlaces) GetPlaceByID(ctx context.Context, id string) (*models.Place, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakePlaces) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCall
}

type fakeReviews struct {
	created   []*models.NewReview
	createErr error
	byPlace   map[string][]*models.Review
	listErr   error
}

func (f *fakeReviews) CreateReview(ctx context.Context, r *models.NewReview, accessToken string) (*models.Review, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, r)
	return &models.Review{
		ID:            fmt.Sprintf("review-%d", len(f.created)),
		PlaceID:       r.PlaceID,
		UserID:        r.UserID,
		Rating:        r.Rating,
		Text:          r.Text,
		VisitedSeason: r.VisitedSeason,
	}, nil
}

func (f *fakeReviews) GetReviewsByPlace(ctx context.Context, placeID string) ([]*models.Review, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byPlace[placeID], nil
}

// fakeStore fails the upload numbered failOn (1-based) when set.
type fakeStore struct {
	objects map[string]string
	order   []string
	failOn  int
	calls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}}
}

func (s *fakeStore) Upload(ctx context.Context, path string, file io.Reader, contentType, accessToken string) error {
	s.calls++
	if s.failOn > 0 && s.calls == s.failOn {
		return errors.New("storage quota exceeded")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	s.objects[path] = string(data)
	s.order = append(s.order, path)
	return nil
}

func (s *fakeStore) PublicURL(path string) (string, error) {
	return "https://cdn.test/" + path, nil
}

func image(name, body string) ImageUpload {
	return ImageUpload{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}
