package services

import (
	"context"
	"strings"

	"github.com/decoded1/marketplace-cli/internal/adapters/geocode"
	"github.com/decoded1/marketplace-cli/internal/config"
	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/geo"
	"github.com/decoded1/marketplace-cli/internal/ports"
)

// Origin address override consulted when a search supplies neither origin
// text nor coordinates.
const envOriginAddress = "MARKETPLACE_ORIGIN_ADDRESS"

// An IP location further than this from the configured origin triggers a
// mismatch notice.
const ipMismatchThresholdMiles = 30.0

// OriginResolver resolves the searcher's own location. It consults the fixed
// location tables first (no network), then the geocoder when one is
// configured.
type OriginResolver struct {
	Geocoder ports.Geocoder // nil restricts resolution to the tables
}

// ResolveOrigin maps origin text to coordinates; ok is false when neither the
// tables nor the geocoder can place it.
func (o *OriginResolver) ResolveOrigin(ctx context.Context, text string) (domain.Coordinates, bool) {
	if strings.TrimSpace(text) == "" {
		return domain.Coordinates{}, false
	}

	if params, ok := geo.Lookup(text, 0); ok && params.Coords != nil {
		return *params.Coords, true
	}

	if o.Geocoder != nil {
		if coords, err := o.Geocoder.Geocode(ctx, text); err == nil {
			return coords, true
		}
	}

	return domain.Coordinates{}, false
}

// OriginFromEnv returns the configured origin address override, if any.
func OriginFromEnv() string {
	return strings.TrimSpace(config.Get(envOriginAddress, ""))
}

// Outcome of comparing the configured origin against the IP-derived location.
type IPComparison struct {
	OriginCoords  domain.Coordinates
	IPCoords      domain.Coordinates
	IPDescription string
	DistanceMiles float64
	Mismatch      bool
}

// CompareOriginWithIP measures how far the caller's IP location sits from the
// configured origin. Front ends may prompt for an origin update when Mismatch
// is set; the comparison never feeds listing resolution.
func CompareOriginWithIP(ctx context.Context, origin domain.Coordinates, locator *geocode.IPLocator) (*IPComparison, error) {
	ipLoc, err := locator.Locate(ctx)
	if err != nil {
		return nil, err
	}

	desc := strings.Join(nonEmpty(ipLoc.City, ipLoc.Region), ", ")
	if desc == "" {
		desc = "your current area"
	}

	distance := origin.GeodesicMilesTo(ipLoc.Coords)
	return &IPComparison{
		OriginCoords:  origin,
		IPCoords:      ipLoc.Coords,
		IPDescription: desc,
		DistanceMiles: distance,
		Mismatch:      distance > ipMismatchThresholdMiles,
	}, nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
