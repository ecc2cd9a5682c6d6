package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/platform/obs"
)

// credentialSource supplies credentials for the geocoding endpoint; the
// routing rotator satisfies it.
type credentialSource interface {
	Next() (string, bool)
}

// Client resolves free-text location queries against the OpenRouteService
// /geocode/search endpoint. Construction is gated behind an explicit enable
// flag at the composition root; a nil *Client means geocoding is disabled.
type Client struct {
	session     *http.Client
	baseURL     string
	credentials credentialSource
}

func NewClient(baseURL string, credentials credentialSource) *Client {
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	return &Client{
		session:     &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
		credentials: credentials,
	}
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a textual location (ZIP, address, city) to coordinates.
func (c *Client) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: query must be non-empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/geocode/search", nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: create request: %w", err)
	}

	if c.credentials != nil {
		if key, ok := c.credentials.Next(); ok {
			req.Header.Set("Authorization", key)
		}
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("text", query)
	q.Set("boundary.country", "US")
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: decode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode: no results for %q", query)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("geocode: invalid coordinate format for %q", query)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
