package services

import (
	"context"
	"errors"
	"testing"

	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/extract"
)

type recordingStore struct {
	site   string
	saved  []*domain.Listing
	err    error
	stored []*domain.Listing
}

func (s *recordingStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *recordingStore) SaveListings(ctx context.Context, site string, listings []*domain.Listing) error {
	s.site = site
	s.saved = listings
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, listings...)
	return nil
}

func (s *recordingStore) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	return s.stored, nil
}

func sampleFragments() []extract.Fragment {
	return []extract.Fragment{
		{
			URL:       "https://philadelphia.craigslist.org/mob/7812345678.html",
			Title:     "iPhone 13",
			PriceText: "$425",
			MetaParts: []string{"4h ago", "Fishtown"},
		},
		{
			URL:   "https://philadelphia.craigslist.org/mob/7800000001.html",
			Title: "WE BUY phones",
		},
	}
}

func TestExtractSessionRunAndSave(t *testing.T) {
	ctx := context.Background()
	st := &recordingStore{}
	session := NewExtractSession(ctx, SessionDeps{Store: st}, "philadelphia", "19107", nil)

	if coords := session.OriginCoords(); coords == nil || coords.Lat != 39.9526 {
		t.Fatalf("origin = %v, want table-resolved 19107", coords)
	}

	listings, err := session.Run(ctx, sampleFragments(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("listings = %d, want 1 after noise filtering", len(listings))
	}
	if st.site != "philadelphia" || len(st.saved) != 1 {
		t.Fatalf("store received site=%q listings=%d", st.site, len(st.saved))
	}

	// Without a geocoder "Fishtown" falls back to the metro table, which is the
	// same point as the 19107 origin; the usefulness filter must reject it.
	if listings[0].DriveDistanceMiles != nil {
		t.Fatalf("drive_distance_miles = %v, want nil for placeholder resolution", *listings[0].DriveDistanceMiles)
	}
}

func TestExtractSessionSaveDisabled(t *testing.T) {
	ctx := context.Background()
	st := &recordingStore{}
	session := NewExtractSession(ctx, SessionDeps{Store: st}, "philadelphia", "", nil)

	if _, err := session.Run(ctx, sampleFragments(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.saved != nil {
		t.Fatal("store must not be touched when save is off")
	}
}

func TestExtractSessionSaveFailurePropagates(t *testing.T) {
	ctx := context.Background()
	st := &recordingStore{err: errors.New("disk full")}
	session := NewExtractSession(ctx, SessionDeps{Store: st}, "philadelphia", "", nil)

	listings, err := session.Run(ctx, sampleFragments(), true)
	if err == nil {
		t.Fatal("expected persistence error to propagate")
	}
	if len(listings) != 1 {
		t.Fatalf("listings = %d, extraction output must survive a failed save", len(listings))
	}
}

func TestExtractSessionOriginFromEnv(t *testing.T) {
	t.Setenv(envOriginAddress, "19107")

	session := NewExtractSession(context.Background(), SessionDeps{}, "philadelphia", "", nil)
	if coords := session.OriginCoords(); coords == nil || coords.Lat != 39.9526 {
		t.Fatalf("origin = %v, want env-configured 19107", coords)
	}
}
