package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joshua-takyi/trailmate/internal/models"
)

func newTestPlaceService() (*PlaceService, *fakePlaces, *fakeReviews, *fakeStore) {
	places := &fakePlaces{}
	reviews := &fakeReviews{}
	store := newFakeStore()
	ps := NewPlaceService(places, reviews, store, quietLogger())
	ps.now = func() time.Time { return time.UnixMilli(1700000000000) }
	n := 0
	ps.suffix = func() string {
		n++
		return strings.Repeat(string(rune('a'+n-1)), 12)
	}
	return ps, places, reviews, store
}

func everestForm(t *testing.T) *PlaceForm {
	t.Helper()
	form := NewPlaceForm()
	form.Name = "Everest BC"
	form.Location = "Nepal"
	form.Category = "Trekking"
	form.PackingEssential = "Boots\n\nRain jacket\n  "
	form.ReviewRating = 5
	form.ReviewText = "Amazing"
	if err := form.AddImages(image("a.JPG", "one"), image("b.png", "two")); err != nil {
		t.Fatalf("AddImages() error = %v", err)
	}
	return form
}

func TestSubmitPublishesPlaceWithImagesAndReview(t *testing.T) {
	ps, places, reviews, store := newTestPlaceService()

	res, err := ps.Submit(context.Background(), everestForm(t), "u1", "token")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	wantPaths := []string{"u1/1700000000000-aaaaaaaaaaaa.JPG", "u1/1700000000000-bbbbbbbbbbbb.png"}
	if !equalStrings(store.order, wantPaths) {
		t.Errorf("upload order = %v, want %v", store.order, wantPaths)
	}

	if len(places.created) != 1 {
		t.Fatalf("created %d places, want 1", len(places.created))
	}
	p := places.created[0]
	if p.UserID != "u1" || p.Name != "Everest BC" || p.Location != "Nepal" {
		t.Errorf("unexpected place payload %+v", p)
	}
	if !equalStrings(p.PackingEssential, []string{"Boots", "Rain jacket"}) {
		t.Errorf("PackingEssential = %q", p.PackingEssential)
	}
	if p.PackingOptional == nil || len(p.PackingOptional) != 0 {
		t.Errorf("PackingOptional = %#v, want empty list", p.PackingOptional)
	}
	if p.Description != nil {
		t.Errorf("Description = %q, want nil", *p.Description)
	}
	wantURLs := []string{"https://cdn.test/" + wantPaths[0], "https://cdn.test/" + wantPaths[1]}
	if !equalStrings(p.ImageURLs, wantURLs) {
		t.Errorf("ImageURLs = %v, want %v", p.ImageURLs, wantURLs)
	}

	if len(reviews.created) != 1 {
		t.Fatalf("created %d reviews, want 1", len(reviews.created))
	}
	r := reviews.created[0]
	if r.PlaceID != res.Place.ID || r.UserID != "u1" || r.Rating != 5 || r.Text != "Amazing" {
		t.Errorf("unexpected review payload %+v", r)
	}

	if res.Redirect != "/place/"+res.Place.ID {
		t.Errorf("Redirect = %q", res.Redirect)
	}
	if res.Review == nil {
		t.Error("Review missing from result")
	}
}

func TestSubmitWithoutReviewSkipsReviewInsert(t *testing.T) {
	ps, places, reviews, _ := newTestPlaceService()
	form := NewPlaceForm()
	form.Name = "Quiet Lake"
	form.Location = "Finland"
	form.ReviewText = "   "

	res, err := ps.Submit(context.Background(), form, "u1", "")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(places.created) != 1 || len(reviews.created) != 0 {
		t.Errorf("places=%d reviews=%d, want 1 and 0", len(places.created), len(reviews.created))
	}
	if res.Review != nil {
		t.Error("Review should be nil")
	}
	if len(places.created[0].ImageURLs) != 0 || places.created[0].ImageURLs == nil {
		t.Errorf("ImageURLs = %#v, want empty list", places.created[0].ImageURLs)
	}
}

func TestSubmitRequiresNameAndLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
	}{
		{"", "Nepal"},
		{"Everest", ""},
		{"   ", "Nepal"},
	}
	for _, tt := range tests {
		ps, places, reviews, store := newTestPlaceService()
		form := NewPlaceForm()
		form.Name, form.Location = tt.name, tt.location
		_ = form.AddImages(image("a.jpg", "x"))

		_, err := ps.Submit(context.Background(), form, "u1", "")
		var subErr *SubmissionError
		if !errors.As(err, &subErr) || subErr.Step != StepValidate {
			t.Fatalf("error = %v, want validate SubmissionError", err)
		}
		if err.Error() != "Name and location are required" {
			t.Errorf("message = %q", err.Error())
		}
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) {
			t.Error("expected a ValidationError underneath")
		}
		if store.calls != 0 || len(places.created) != 0 || len(reviews.created) != 0 {
			t.Errorf("network calls made: uploads=%d places=%d reviews=%d", store.calls, len(places.created), len(reviews.created))
		}
	}
}

func TestSubmitUnauthenticated(t *testing.T) {
	ps, places, _, store := newTestPlaceService()

	_, err := ps.Submit(context.Background(), everestForm(t), "", "")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("error = %v, want ErrUnauthenticated", err)
	}
	if store.calls != 0 || len(places.created) != 0 {
		t.Error("no calls expected without a user")
	}
}

func TestSubmitUploadFailureStopsBeforeInsert(t *testing.T) {
	ps, places, reviews, store := newTestPlaceService()
	store.failOn = 3
	form := everestForm(t)
	if err := form.AddImages(image("c.jpg", "three"), image("d.jpg", "four")); err != nil {
		t.Fatal(err)
	}

	_, err := ps.Submit(context.Background(), form, "u1", "")
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("error = %v, want SubmissionError", err)
	}
	if subErr.Step != StepUploadImages || subErr.Policy != AbortBeforeCommit {
		t.Errorf("step=%s policy=%s", subErr.Step, subErr.Policy)
	}
	if err.Error() != "storage quota exceeded" {
		t.Errorf("message = %q, want backend message", err.Error())
	}
	// Objects from earlier uploads stay behind.
	if len(store.objects) != 2 {
		t.Errorf("stored %d objects, want 2", len(store.objects))
	}
	if store.calls != 3 {
		t.Errorf("upload attempts = %d, want 3", store.calls)
	}
	if len(places.created) != 0 || len(reviews.created) != 0 {
		t.Error("no rows should be written after an upload failure")
	}
}

func TestSubmitPlaceInsertFailure(t *testing.T) {
	ps, places, reviews, _ := newTestPlaceService()
	places.createErr = errors.New(`new row violates row-level security policy for table "places"`)

	_, err := ps.Submit(context.Background(), everestForm(t), "u1", "")
	var subErr *SubmissionError
	if !errors.As(err, &subErr) || subErr.Step != StepInsertPlace {
		t.Fatalf("error = %v, want insert_place failure", err)
	}
	if subErr.Policy != AbortBeforeCommit || subErr.Place != nil {
		t.Errorf("policy=%s place=%v", subErr.Policy, subErr.Place)
	}
	if len(reviews.created) != 0 {
		t.Error("review must not be attempted when the place insert fails")
	}
}

func TestSubmitReviewFailureLeavesPlace(t *testing.T) {
	ps, places, reviews, _ := newTestPlaceService()
	reviews.createErr = errors.New("reviews insert failed")

	_, err := ps.Submit(context.Background(), everestForm(t), "u1", "")
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("error = %v, want SubmissionError", err)
	}
	if subErr.Step != StepInsertReview || subErr.Policy != AbortAfterPartialCommit {
		t.Errorf("step=%s policy=%s", subErr.Step, subErr.Policy)
	}
	if subErr.Place == nil || len(places.created) != 1 {
		t.Error("place row should exist and be reported")
	}
	if err.Error() != "reviews insert failed" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestAddImagesRejectsOverLimit(t *testing.T) {
	form := NewPlaceForm()
	for i := 0; i < 4; i++ {
		if err := form.AddImages(image("ok.jpg", "x")); err != nil {
			t.Fatalf("AddImages(%d) error = %v", i, err)
		}
	}

	err := form.AddImages(image("e.jpg", "x"), image("f.jpg", "x"))
	if err == nil || err.Error() != "Max 5 images allowed" {
		t.Fatalf("error = %v, want Max 5 images allowed", err)
	}
	if n := len(form.Images()); n != 4 {
		t.Errorf("selection has %d images, want 4 unchanged", n)
	}

	if err := form.AddImages(image("e.jpg", "x")); err != nil {
		t.Errorf("fifth image rejected: %v", err)
	}
}

func TestPlaceFormValidate(t *testing.T) {
	valid := func() *PlaceForm {
		f := NewPlaceForm()
		f.Name, f.Location = "Fjord", "Norway"
		return f
	}

	tests := []struct {
		name   string
		mutate func(f *PlaceForm)
		field  string
	}{
		{"bad category", func(f *PlaceForm) { f.Category = "Space" }, "category"},
		{"bad difficulty", func(f *PlaceForm) { f.Difficulty = "Impossible" }, "difficulty"},
		{"latitude not a number", func(f *PlaceForm) { f.Latitude = "north" }, "latitude"},
		{"latitude out of range", func(f *PlaceForm) { f.Latitude = "91" }, "latitude"},
		{"longitude out of range", func(f *PlaceForm) { f.Longitude = "-181" }, "longitude"},
		{"review rating out of range", func(f *PlaceForm) { f.ReviewText = "great"; f.ReviewRating = 0 }, "review_rating"},
		{"bad review season", func(f *PlaceForm) { f.ReviewSeason = "Monsoonish" }, "review_season"},
		{"image too large", func(f *PlaceForm) {
			f.MaxImageSize = 1
			_ = f.AddImages(image("big.jpg", "too big"))
		}, "images"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(f)
			err := f.Validate()
			var vErr *models.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}

	f := valid()
	f.Latitude, f.Longitude = " 27.98 ", "86.92"
	if err := f.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	p := f.NewPlace("u1", nil)
	if p.Latitude == nil || *p.Latitude != 27.98 || p.Longitude == nil || *p.Longitude != 86.92 {
		t.Errorf("coordinates = %v, %v", p.Latitude, p.Longitude)
	}
	if p.Category != models.DefaultCategory || p.Difficulty != models.DefaultDifficulty {
		t.Errorf("defaults = %q, %q", p.Category, p.Difficulty)
	}
}

func TestUploadPath(t *testing.T) {
	ps, _, _, _ := newTestPlaceService()

	tests := []struct {
		filename string
		want     string
	}{
		{"photo.JPEG", "u1/1700000000000-aaaaaaaaaaaa.JPEG"},
		{"noext", "u1/1700000000000-bbbbbbbbbbbb"},
		{"archive.tar.gz", "u1/1700000000000-cccccccccccc.gz"},
	}
	for _, tt := range tests {
		if got := ps.UploadPath("u1", tt.filename); got != tt.want {
			t.Errorf("UploadPath(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestRandomSuffix(t *testing.T) {
	a, b := randomSuffix(), randomSuffix()
	if len(a) != 12 || len(b) != 12 {
		t.Fatalf("suffix lengths = %d, %d, want 12", len(a), len(b))
	}
	if a == b {
		t.Error("suffixes should differ")
	}
}

func TestGetPlaceDetail(t *testing.T) {
	ps, places, reviews, _ := newTestPlaceService()
	places.byID = map[string]*models.Place{"p1": {ID: "p1", Name: "Fjord"}}
	reviews.byPlace = map[string][]*models.Review{"p1": {{ID: "r2"}, {ID: "r1"}}}

	detail, err := ps.GetPlaceDetail(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetPlaceDetail() error = %v", err)
	}
	if detail.Place.Name != "Fjord" || len(detail.Reviews) != 2 {
		t.Errorf("unexpected detail %+v", detail)
	}

	for _, id := range []string{"", "missing"} {
		if _, err := ps.GetPlaceDetail(context.Background(), id); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetPlaceDetail(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestGetPlaceDetailKeepsPlaceWhenReviewsFail(t *testing.T) {
	ps, places, reviews, _ := newTestPlaceService()
	places.byID = map[string]*models.Place{"p1": {ID: "p1", Name: "Fjord"}}
	reviews.listErr = &models.BackendError{Op: "list reviews", Err: errors.New("connection reset")}

	detail, err := ps.GetPlaceDetail(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetPlaceDetail() error = %v, want place without reviews", err)
	}
	if detail.Place == nil || detail.Place.ID != "p1" {
		t.Errorf("Place = %+v", detail.Place)
	}
	if detail.Reviews == nil || len(detail.Reviews) != 0 {
		t.Errorf("Reviews = %#v, want empty list", detail.Reviews)
	}
}
