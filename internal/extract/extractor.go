package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// Resolver maps listing location text to coordinates within a shared search
// session; services.Resolver satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, locationText, listingURL, siteCode string) *domain.ResolvedLocation
	Useful(loc *domain.ResolvedLocation, origin *domain.Coordinates) bool
}

// Enricher computes drive metrics for a resolved listing location;
// services.DriveMetricsEngine satisfies it.
type Enricher interface {
	Compute(ctx context.Context, q domain.DriveQuery) *domain.DriveMetrics
}

// Titles matching any of these are not genuine sale-by-owner offers: buyer /
// reseller solicitations, repair services, and accessory listings. Word
// boundaries keep unrelated substrings (e.g. "showcase") from matching.
var noiseFilters = []*regexp.Regexp{
	// Buyer / reseller phrases
	regexp.MustCompile(`(?i)\bwe\s*buy\b`),
	regexp.MustCompile(`(?i)\bbuyer(s)?\b`),
	regexp.MustCompile(`(?i)\bbuying\b`),
	regexp.MustCompile(`(?i)\bsell\s+me\s+your\b`),
	regexp.MustCompile(`(?i)\bcash\s+for\b`),
	regexp.MustCompile(`(?i)\boffer\s+cash\b`),
	regexp.MustCompile(`(?i)\btop\s+\w*\s*buyer\b`),
	// Repair / service listings
	regexp.MustCompile(`(?i)\brepair(s|ing)?\b`),
	regexp.MustCompile(`(?i)\bfix(ing)?\b`),
	// Accessories (cases, chargers, cables, etc.)
	regexp.MustCompile(`(?i)\bcase(s)?\b`),
	regexp.MustCompile(`(?i)screen\s*protector`),
	regexp.MustCompile(`(?i)privacy\s+screen`),
	regexp.MustCompile(`(?i)\bcharger(s)?\b`),
	regexp.MustCompile(`(?i)\bcable(s)?\b`),
	regexp.MustCompile(`(?i)\bholster(s)?\b`),
	regexp.MustCompile(`(?i)\bwallet\b`),
	regexp.MustCompile(`(?i)charging\s+station`),
	regexp.MustCompile(`(?i)wireless\s+charging`),
	regexp.MustCompile(`(?i)charge\s+card`),
}

var (
	externalIDPattern   = regexp.MustCompile(`/(\d+)\.html`)
	relativeTimePattern = regexp.MustCompile(`^(\d+)([mhd])`)
)

// Extractor normalizes parsed listing fragments into Listing records and
// optionally enriches them with drive-distance estimates.
type Extractor struct {
	Resolver Resolver
	Enricher Enricher
	SiteCode string

	// Origin of the search; either or both may be empty/nil.
	OriginText   string
	OriginCoords *domain.Coordinates
}

// Extract turns fragments into listings, preserving input order. Noise
// listings are discarded; malformed fragments are logged and skipped
// individually without aborting the batch.
func (e *Extractor) Extract(ctx context.Context, fragments []Fragment) []*domain.Listing {
	listings := make([]*domain.Listing, 0, len(fragments))

	for i, frag := range fragments {
		listing, err := e.extractOne(ctx, frag)
		if err != nil {
			log.Printf("warning: skipped fragment index=%d err=%v", i, err)
			continue
		}
		if listing == nil {
			// Filtered as noise.
			continue
		}
		listings = append(listings, listing)
	}

	return listings
}

func (e *Extractor) extractOne(ctx context.Context, frag Fragment) (*domain.Listing, error) {
	url := strings.TrimSpace(frag.URL)
	if url == "" {
		return nil, errors.New("fragment has no URL")
	}

	title := strings.TrimSpace(frag.Title)
	if title == "" {
		title = "Unknown Title"
	}

	if IsNoise(title) {
		return nil, nil
	}

	listing := &domain.Listing{
		URL:       url,
		Title:     title,
		Price:     ParsePrice(frag.PriceText),
		ScrapedAt: time.Now(),
	}

	if m := externalIDPattern.FindStringSubmatch(url); m != nil {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse external id %q: %w", m[1], err)
		}
		listing.ExternalID = &id
	}

	postedLabel, location := splitMeta(frag)
	if postedLabel != "" {
		listing.PostedLabel = &postedLabel
		if strings.Contains(strings.ToLower(postedLabel), "ago") {
			if hours, ok := RelativeHours(postedLabel); ok {
				listing.PostedHoursAgo = &hours
			}
		} else {
			date := postedLabel
			listing.PostedDate = &date
		}
	}
	if location != "" {
		listing.Location = &location
	}

	e.enrich(ctx, listing)
	return listing, nil
}

// enrich populates drive distance/duration when an origin is configured and
// the listing location resolves usefully. Search-result-level estimates are
// geodesic-only; routed estimates are reserved for single-ad detail fetches.
func (e *Extractor) enrich(ctx context.Context, listing *domain.Listing) {
	if e.Resolver == nil || e.Enricher == nil || listing.Location == nil {
		return
	}
	if e.OriginText == "" && e.OriginCoords == nil {
		return
	}

	loc := e.Resolver.Resolve(ctx, *listing.Location, listing.URL, e.SiteCode)
	if !e.Resolver.Useful(loc, e.OriginCoords) {
		return
	}

	metrics := e.Enricher.Compute(ctx, domain.DriveQuery{
		OriginText:         e.OriginText,
		OriginCoords:       e.OriginCoords,
		Destination:        &loc.Coords,
		FallbackToGeodesic: true,
		AttemptRouting:     false,
	})
	if metrics == nil {
		return
	}

	listing.DriveDistanceMiles = &metrics.DistanceMiles
	listing.DriveDurationMinutes = metrics.DurationMinutes
}

// splitMeta pulls the posted label and the neighborhood out of a fragment's
// meta parts, falling back to the standalone location element.
func splitMeta(frag Fragment) (postedLabel, location string) {
	if len(frag.MetaParts) > 0 {
		postedLabel = strings.TrimSpace(frag.MetaParts[0])
	}
	if len(frag.MetaParts) > 1 {
		location = strings.TrimSpace(frag.MetaParts[1])
	}
	if location == "" {
		location = strings.TrimSpace(frag.LocationText)
	}
	return postedLabel, location
}

// IsNoise reports whether a listing title matches the noise filter.
func IsNoise(title string) bool {
	if title == "" {
		return false
	}
	for _, pattern := range noiseFilters {
		if pattern.MatchString(title) {
			return true
		}
	}
	return false
}

// RelativeHours converts labels like "4h ago", "30m ago", "2d ago" into
// hours. ok is false when the label carries no leading <int><unit> token.
func RelativeHours(label string) (float64, bool) {
	label = strings.TrimSpace(strings.ReplaceAll(strings.ToLower(label), "ago", ""))

	m := relativeTimePattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	switch m[2] {
	case "m":
		return math.Round(float64(value)/60*100) / 100, true
	case "h":
		return float64(value), true
	case "d":
		return float64(value * 24), true
	}
	return 0, false
}

// ParsePrice extracts a numeric price from strings like "$1,234.56"; nil when
// the text carries no parseable number.
func ParsePrice(priceText string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(priceText, "$", ""), ",", ""))
	if cleaned == "" {
		return nil
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}
