package ports

import (
	"context"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// Contract for retrieving driving distance and duration between two
// coordinate pairs from an external routing service.
type RouteProvider interface {
	// Route returns driving metrics between origin and destination.
	// credential optionally pins the first credential to try; pass "" to
	// let the provider draw from its own pool.
	Route(ctx context.Context, origin, destination domain.Coordinates, credential string) (*domain.DriveMetrics, error)
}
