package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// SQLite-backed implementation of the ListingStore port. Listings are keyed
// by URL; re-saving a URL replaces the previous row.
type SqliteListingStore struct{ DB *sql.DB }

func NewSqliteListingStore(db *sql.DB) *SqliteListingStore {
	return &SqliteListingStore{DB: db}
}

// Create the listings table if it does not exist.
func (s *SqliteListingStore) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("ensure schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS listings (
		url TEXT PRIMARY KEY,
		site TEXT NOT NULL,
		title TEXT NOT NULL,
		price REAL,
		external_id INTEGER,
		posted_label TEXT,
		posted_hours_ago REAL,
		posted_date TEXT,
		location TEXT,
		drive_distance_miles REAL,
		drive_duration_minutes REAL,
		scraped_at TIMESTAMP NOT NULL
	);
	`
	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure schema: create listings table: %w", err)
	}

	return nil
}

// Upsert a batch of listings in one transaction.
func (s *SqliteListingStore) SaveListings(ctx context.Context, site string, listings []*domain.Listing) error {
	if s.DB == nil {
		return errors.New("save listings: DB is nil")
	}
	if len(listings) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save listings: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO listings (
		url,
		site,
		title,
		price,
		external_id,
		posted_label,
		posted_hours_ago,
		posted_date,
		location,
		drive_distance_miles,
		drive_duration_minutes,
		scraped_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("save listings: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range listings {
		_, err := stmt.ExecContext(ctx,
			l.URL,
			site,
			l.Title,
			l.Price,
			l.ExternalID,
			l.PostedLabel,
			l.PostedHoursAgo,
			l.PostedDate,
			l.Location,
			l.DriveDistanceMiles,
			l.DriveDurationMinutes,
			l.ScrapedAt,
		)
		if err != nil {
			return fmt.Errorf("save listings: insert url=%s: %w", l.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save listings: commit tx: %w", err)
	}

	return nil
}

// Return all stored listings, newest scrape first.
func (s *SqliteListingStore) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	if s.DB == nil {
		return nil, errors.New("list listings: DB is nil")
	}

	query := `
	SELECT
		url,
		title,
		price,
		external_id,
		posted_label,
		posted_hours_ago,
		posted_date,
		location,
		drive_distance_miles,
		drive_duration_minutes,
		scraped_at
	FROM listings
	ORDER BY scraped_at DESC, url;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list listings: query listings table: %w", err)
	}
	defer rows.Close()

	listings := make([]*domain.Listing, 0, 64)
	for rows.Next() {
		var l domain.Listing
		err := rows.Scan(
			&l.URL,
			&l.Title,
			&l.Price,
			&l.ExternalID,
			&l.PostedLabel,
			&l.PostedHoursAgo,
			&l.PostedDate,
			&l.Location,
			&l.DriveDistanceMiles,
			&l.DriveDurationMinutes,
			&l.ScrapedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list listings: scan row: %w", err)
		}
		listings = append(listings, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list listings: row iteration: %w", err)
	}

	return listings, nil
}
