package services

import (
	"context"
	"errors"
	"log"

	"github.com/decoded1/marketplace-cli/internal/adapters/routing"
	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/ports"
)

// DriveMetricsEngine produces a best-effort distance/duration estimate for an
// origin/destination pair.
//
// It is a strict two-tier fallback: a routed estimate is authoritative when
// available; geodesic distance is a lower-fidelity substitute, never blended.
// The engine retains no state between calls; all inputs arrive in the query.
type DriveMetricsEngine struct {
	Provider ports.RouteProvider // nil disables routing entirely
	Origin   *OriginResolver
}

func NewDriveMetricsEngine(provider ports.RouteProvider, origin *OriginResolver) *DriveMetricsEngine {
	if origin == nil {
		origin = &OriginResolver{}
	}
	return &DriveMetricsEngine{Provider: provider, Origin: origin}
}

// Compute returns drive metrics for the query, or nil when neither routing
// nor geodesic fallback can produce one. Transient routing failures are
// absorbed: a missing result signals the enrichment gap, not an error.
func (e *DriveMetricsEngine) Compute(ctx context.Context, q domain.DriveQuery) *domain.DriveMetrics {
	if q.Destination == nil {
		return nil
	}
	destination := *q.Destination

	origin := q.OriginCoords
	if origin == nil {
		if q.OriginText == "" {
			return nil
		}
		coords, ok := e.Origin.ResolveOrigin(ctx, q.OriginText)
		if !ok {
			return nil
		}
		origin = &coords
	}

	if q.AttemptRouting && e.Provider != nil {
		metrics, err := e.Provider.Route(ctx, *origin, destination, "")
		if err == nil && metrics != nil {
			metrics.Origin = *origin
			metrics.Destination = destination
			metrics.Fallback = false
			return metrics
		}
		if err != nil && !errors.Is(err, routing.ErrCredentialsExhausted) {
			log.Printf("routing unavailable, considering fallback: %v", err)
		}
	}

	if q.FallbackToGeodesic {
		miles := origin.GeodesicMilesTo(destination)
		return &domain.DriveMetrics{
			DistanceMiles: miles,
			DistanceKm:    miles * domain.KmPerMile,
			Origin:        *origin,
			Destination:   destination,
			Fallback:      true,
		}
	}

	return nil
}
