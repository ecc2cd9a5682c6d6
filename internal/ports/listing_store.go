package ports

import (
	"context"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// Port: a boundary for persisting and retrieving extracted listings.
type ListingStore interface {
	// EnsureSchema creates the backing tables if they do not exist.
	EnsureSchema(ctx context.Context) error
	// SaveListings upserts a batch of listings keyed by URL.
	SaveListings(ctx context.Context, site string, listings []*domain.Listing) error
	// ListListings returns all stored listings in insertion order.
	ListListings(ctx context.Context) ([]*domain.Listing, error)
}
