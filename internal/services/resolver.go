package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/decoded1/marketplace-cli/internal/adapters/cache"
	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/geo"
	"github.com/decoded1/marketplace-cli/internal/ports"
)

// Resolved coordinates closer than this to the origin are treated as
// placeholder geocoding output and rejected. Heuristic carried over from the
// original tuning; override per Resolver if a deployment needs a different
// band.
const DefaultUsefulnessThresholdMiles = 0.5

// Subdomain-style host token of an embedded listing URL
// (e.g. https://south-jersey.example.org/... -> "south-jersey").
var listingHostPattern = regexp.MustCompile(`https?://([^./]+)\.`)

// Resolver turns textual locations into coordinates through tiered
// strategies, backed by a per-session memoizing cache.
//
// Tier order: session cache, network geocoding (when a geocoder is
// configured), known-city table, known-site table. Every outcome — including
// failure — is written to the cache before returning, so a repeated query for
// the same normalized key never re-executes network calls.
type Resolver struct {
	Geocoder                 ports.Geocoder // nil disables the network tier
	Cache                    *cache.SessionGeoCache
	UsefulnessThresholdMiles float64
}

func NewResolver(geocoder ports.Geocoder, sessionCache *cache.SessionGeoCache) *Resolver {
	if sessionCache == nil {
		sessionCache = cache.NewSessionGeoCache()
	}
	return &Resolver{
		Geocoder:                 geocoder,
		Cache:                    sessionCache,
		UsefulnessThresholdMiles: DefaultUsefulnessThresholdMiles,
	}
}

// Resolve maps a location string to coordinates, or nil when every tier
// misses. listingURL, when present, is used to derive a city hint from its
// host; siteCode is the marketplace site the listing came from.
//
// Geocoding failures fall through silently to the next tier; total failure is
// cached as a negative result, not an error.
func (r *Resolver) Resolve(ctx context.Context, locationText, listingURL, siteCode string) *domain.ResolvedLocation {
	if strings.TrimSpace(locationText) == "" {
		return nil
	}

	if loc, ok := r.Cache.Get(locationText); ok {
		return loc
	}

	city := deriveCity(listingURL)
	var resolved *domain.ResolvedLocation

	if r.Geocoder != nil {
		query := locationText
		if city != "" {
			query = locationText + ", " + city
		}
		if coords, err := r.Geocoder.Geocode(ctx, query); err == nil {
			resolved = &domain.ResolvedLocation{Coords: coords, Quality: domain.QualityNetworkGeocode}
		}
	}

	if resolved == nil && city != "" {
		first := strings.Fields(city)[0]
		if coords, ok := geo.SiteCoords(first); ok {
			resolved = &domain.ResolvedLocation{Coords: coords, Quality: domain.QualityCityTable}
		}
	}

	if resolved == nil && siteCode != "" {
		if coords, ok := geo.SiteCoords(siteCode); ok {
			resolved = &domain.ResolvedLocation{Coords: coords, Quality: domain.QualitySiteTable}
		}
	}

	r.Cache.Put(locationText, resolved)
	return resolved
}

// Useful reports whether a resolution should be consumed for drive-metrics
// purposes. A point within the usefulness threshold of the origin is likely a
// default/placeholder coordinate and is rejected.
func (r *Resolver) Useful(loc *domain.ResolvedLocation, origin *domain.Coordinates) bool {
	if loc == nil {
		return false
	}
	if origin == nil {
		return true
	}

	threshold := r.UsefulnessThresholdMiles
	if threshold <= 0 {
		threshold = DefaultUsefulnessThresholdMiles
	}

	return origin.GeodesicMilesTo(loc.Coords) >= threshold
}

// deriveCity extracts the host's subdomain token from an embedded URL with
// dashes replaced by spaces; "" when no URL-shaped text is present.
func deriveCity(listingURL string) string {
	m := listingHostPattern.FindStringSubmatch(listingURL)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], "-", " ")
}
