package cache

import (
	"strings"
	"sync"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// In-memory memoizing cache mapping normalized location text to a resolution
// outcome. Negative outcomes (location could not be resolved) are cached as
// nil entries so a repeated query never re-executes network calls.
//
// A SessionGeoCache is owned by one search session and is never persisted.
// It is safe for concurrent use.
type SessionGeoCache struct {
	mu      sync.Mutex
	entries map[string]*domain.ResolvedLocation
}

func NewSessionGeoCache() *SessionGeoCache {
	return &SessionGeoCache{entries: make(map[string]*domain.ResolvedLocation)}
}

// NormalizeKey produces the canonical cache key for a location string.
func NormalizeKey(locationText string) string {
	return strings.ToLower(strings.TrimSpace(locationText))
}

// Get returns the cached outcome for the location, if any. The second return
// reports whether an entry exists; the first may be nil for a cached miss.
func (c *SessionGeoCache) Get(locationText string) (*domain.ResolvedLocation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	loc, ok := c.entries[NormalizeKey(locationText)]
	return loc, ok
}

// Put records the outcome for the location. A nil location records a
// resolution failure.
func (c *SessionGeoCache) Put(locationText string, loc *domain.ResolvedLocation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[NormalizeKey(locationText)] = loc
}

// Len reports the number of cached outcomes, including negative ones.
func (c *SessionGeoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
