package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSqliteListingStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSqliteListingStore(openTestDB(t))

	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// Schema creation is idempotent.
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema (repeat): %v", err)
	}

	price := 450.0
	externalID := int64(7812345678)
	hours := 4.0
	location := "Fishtown"
	miles := 3.2
	scrapedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	listings := []*domain.Listing{
		{
			URL:                "https://philadelphia.craigslist.org/mob/7812345678.html",
			Title:              "iPhone 13 Pro",
			Price:              &price,
			ExternalID:         &externalID,
			PostedHoursAgo:     &hours,
			Location:           &location,
			DriveDistanceMiles: &miles,
			ScrapedAt:          scrapedAt,
		},
		{
			URL:       "https://philadelphia.craigslist.org/mob/7812345679.html",
			Title:     "Unknown Title",
			ScrapedAt: scrapedAt.Add(time.Minute),
		},
	}

	if err := s.SaveListings(ctx, "philadelphia", listings); err != nil {
		t.Fatalf("save listings: %v", err)
	}

	got, err := s.ListListings(ctx)
	if err != nil {
		t.Fatalf("list listings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("listings = %d, want 2", len(got))
	}

	// Newest scrape first.
	if got[0].Title != "Unknown Title" {
		t.Fatalf("order wrong, first = %q", got[0].Title)
	}

	full := got[1]
	if full.Price == nil || *full.Price != 450.0 {
		t.Fatalf("price = %v", full.Price)
	}
	if full.ExternalID == nil || *full.ExternalID != 7812345678 {
		t.Fatalf("external id = %v", full.ExternalID)
	}
	if full.PostedHoursAgo == nil || *full.PostedHoursAgo != 4.0 {
		t.Fatalf("posted hours = %v", full.PostedHoursAgo)
	}
	if full.PostedDate != nil || full.PostedLabel != nil {
		t.Fatalf("unexpected posted fields: %v / %v", full.PostedDate, full.PostedLabel)
	}
	if full.Location == nil || *full.Location != "Fishtown" {
		t.Fatalf("location = %v", full.Location)
	}
	if full.DriveDurationMinutes != nil {
		t.Fatalf("duration = %v, want nil", *full.DriveDurationMinutes)
	}
}

func TestSqliteListingStoreUpsertByURL(t *testing.T) {
	ctx := context.Background()
	s := NewSqliteListingStore(openTestDB(t))
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	url := "https://southjersey.craigslist.org/mob/7810000001.html"
	first := 500.0
	second := 425.0

	save := func(price float64, at time.Time) {
		t.Helper()
		err := s.SaveListings(ctx, "southjersey", []*domain.Listing{{
			URL:       url,
			Title:     "PS5 bundle",
			Price:     &price,
			ScrapedAt: at,
		}})
		if err != nil {
			t.Fatalf("save listings: %v", err)
		}
	}

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	save(first, base)
	save(second, base.Add(time.Hour))

	got, err := s.ListListings(ctx)
	if err != nil {
		t.Fatalf("list listings: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("listings = %d, want 1 after upsert", len(got))
	}
	if got[0].Price == nil || *got[0].Price != 425.0 {
		t.Fatalf("price = %v, want latest save to win", got[0].Price)
	}
}

func TestSqliteListingStoreEmptyBatch(t *testing.T) {
	ctx := context.Background()
	s := NewSqliteListingStore(openTestDB(t))
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := s.SaveListings(ctx, "philadelphia", nil); err != nil {
		t.Fatalf("empty batch must be a no-op, got %v", err)
	}
}
