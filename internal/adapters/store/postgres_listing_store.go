package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// Postgres-backed implementation of the ListingStore port. Same contract as
// the SQLite variant; deployments pick one via configuration.
type PostgresListingStore struct{ DB *sql.DB }

func NewPostgresListingStore(db *sql.DB) *PostgresListingStore {
	return &PostgresListingStore{DB: db}
}

func (s *PostgresListingStore) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("ensure schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS listings (
		url TEXT PRIMARY KEY,
		site TEXT NOT NULL,
		title TEXT NOT NULL,
		price DOUBLE PRECISION,
		external_id BIGINT,
		posted_label TEXT,
		posted_hours_ago DOUBLE PRECISION,
		posted_date TEXT,
		location TEXT,
		drive_distance_miles DOUBLE PRECISION,
		drive_duration_minutes DOUBLE PRECISION,
		scraped_at TIMESTAMPTZ NOT NULL
	);
	`
	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure schema: create listings table: %w", err)
	}

	return nil
}

func (s *PostgresListingStore) SaveListings(ctx context.Context, site string, listings []*domain.Listing) error {
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
	INSERT INTO listings (
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
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (url) DO UPDATE SET
		site = EXCLUDED.site,
		title = EXCLUDED.title,
		price = EXCLUDED.price,
		external_id = EXCLUDED.external_id,
		posted_label = EXCLUDED.posted_label,
		posted_hours_ago = EXCLUDED.posted_hours_ago,
		posted_date = EXCLUDED.posted_date,
		location = EXCLUDED.location,
		drive_distance_miles = EXCLUDED.drive_distance_miles,
		drive_duration_minutes = EXCLUDED.drive_duration_minutes,
		scraped_at = EXCLUDED.scraped_at;
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

func (s *PostgresListingStore) ListListings(ctx context.Context) ([]*domain.Listing, error) {
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
