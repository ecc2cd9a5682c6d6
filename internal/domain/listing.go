package domain

import "time"

// Represents a single normalized marketplace listing extracted from a search
// result fragment. Pointer fields are nil when the source fragment did not
// carry the value or it could not be parsed.
//
// When PostedLabel is parseable, exactly one of PostedHoursAgo and PostedDate
// is set; when it is not, both stay nil and the raw label is retained.
type Listing struct {
	URL                  string
	Title                string
	Price                *float64
	ExternalID           *int64
	PostedLabel          *string
	PostedHoursAgo       *float64
	PostedDate           *string
	Location             *string
	DriveDistanceMiles   *float64
	DriveDurationMinutes *float64
	ScrapedAt            time.Time
}
