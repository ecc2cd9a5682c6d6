package ports

import (
	"context"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// Contract for resolving a free-text location query to coordinates over the
// network. Implementations return an error when the query does not resolve.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}
