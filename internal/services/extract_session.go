package services

import (
	"context"
	"fmt"

	"github.com/decoded1/marketplace-cli/internal/adapters/cache"
	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/extract"
	"github.com/decoded1/marketplace-cli/internal/ports"
)

// ExtractSession owns everything one search shares across its listings: the
// origin, the site code, and a fresh geo cache so repeated neighborhoods
// resolve only once. Sessions are cheap; build one per search request.
type ExtractSession struct {
	extractor *extract.Extractor
	cache     *cache.SessionGeoCache
	store     ports.ListingStore
	siteCode  string
}

// SessionDeps carries the long-lived collaborators shared by all sessions.
type SessionDeps struct {
	Geocoder ports.Geocoder
	Provider ports.RouteProvider
	Store    ports.ListingStore
}

// NewExtractSession wires a session for one search. originText falls back to
// the environment override when empty; origin coordinates are resolved from
// the text eagerly so every listing shares them.
func NewExtractSession(ctx context.Context, deps SessionDeps, siteCode, originText string, originCoords *domain.Coordinates) *ExtractSession {
	if originText == "" && originCoords == nil {
		originText = OriginFromEnv()
	}

	sessionCache := cache.NewSessionGeoCache()
	resolver := NewResolver(deps.Geocoder, sessionCache)
	origin := &OriginResolver{Geocoder: deps.Geocoder}
	engine := NewDriveMetricsEngine(deps.Provider, origin)

	if originCoords == nil && originText != "" {
		if coords, ok := origin.ResolveOrigin(ctx, originText); ok {
			originCoords = &coords
		}
	}

	return &ExtractSession{
		extractor: &extract.Extractor{
			Resolver:     resolver,
			Enricher:     engine,
			SiteCode:     siteCode,
			OriginText:   originText,
			OriginCoords: originCoords,
		},
		cache:    sessionCache,
		store:    deps.Store,
		siteCode: siteCode,
	}
}

// Run extracts the fragments and optionally persists the result. Extraction
// itself never fails; only the persistence sink can return an error.
func (s *ExtractSession) Run(ctx context.Context, fragments []extract.Fragment, save bool) ([]*domain.Listing, error) {
	listings := s.extractor.Extract(ctx, fragments)

	if save && s.store != nil {
		if err := s.store.SaveListings(ctx, s.siteCode, listings); err != nil {
			return listings, fmt.Errorf("extract session: save listings: %w", err)
		}
	}

	return listings, nil
}

// OriginCoords exposes the session origin, if it resolved.
func (s *ExtractSession) OriginCoords() *domain.Coordinates {
	return s.extractor.OriginCoords
}

// CacheSize reports how many distinct location strings the session resolved.
func (s *ExtractSession) CacheSize() int { return s.cache.Len() }
