package dto

import (
	"time"

	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/extract"
)

type ExtractRequest struct {
	Site       string             `json:"site"`
	OriginText string             `json:"origin_text"`
	OriginLat  *float64           `json:"origin_lat"`
	OriginLon  *float64           `json:"origin_lon"`
	Save       bool               `json:"save"`
	Fragments  []extract.Fragment `json:"fragments"`
}

type ListingResponse struct {
	URL                  string    `json:"url"`
	Title                string    `json:"title"`
	Price                *float64  `json:"price"`
	ExternalID           *int64    `json:"external_id"`
	PostedLabel          *string   `json:"posted_label"`
	PostedHoursAgo       *float64  `json:"posted_hours_ago"`
	PostedDate           *string   `json:"posted_date"`
	Location             *string   `json:"location"`
	DriveDistanceMiles   *float64  `json:"drive_distance_miles"`
	DriveDurationMinutes *float64  `json:"drive_duration_minutes"`
	ScrapedAt            time.Time `json:"scraped_at"`
}

type ExtractResponse struct {
	Site      string            `json:"site"`
	OriginLat *float64          `json:"origin_lat"`
	OriginLon *float64          `json:"origin_lon"`
	Resolved  int               `json:"resolved_locations"`
	Listings  []ListingResponse `json:"listings"`
}

type ListListingsResponse struct {
	Listings []ListingResponse `json:"listings"`
}

// FromListing maps a domain listing onto the wire shape.
func FromListing(l *domain.Listing) ListingResponse {
	return ListingResponse{
		URL:                  l.URL,
		Title:                l.Title,
		Price:                l.Price,
		ExternalID:           l.ExternalID,
		PostedLabel:          l.PostedLabel,
		PostedHoursAgo:       l.PostedHoursAgo,
		PostedDate:           l.PostedDate,
		Location:             l.Location,
		DriveDistanceMiles:   l.DriveDistanceMiles,
		DriveDurationMinutes: l.DriveDurationMinutes,
		ScrapedAt:            l.ScrapedAt,
	}
}
