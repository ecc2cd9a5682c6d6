package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/decoded1/marketplace-cli/internal/domain"
	"github.com/decoded1/marketplace-cli/internal/platform/obs"
)

const DefaultBaseURL = "https://api.openrouteservice.org"

// ErrCredentialsExhausted is returned when every credential in the pool has
// been attempted (or the pool is empty) without a successful response.
var ErrCredentialsExhausted = errors.New("routing: credential pool exhausted")

// DirectionsClient implements RouteProvider using the OpenRouteService
// directions endpoint.
//
// Authorization and rate-limit failures (401/429) are recovered by rotating
// to the next unused credential; any other non-success status is terminal for
// the call. Retry attempts are capped by the size of the credential pool.
type DirectionsClient struct {
	session *http.Client
	baseURL string
	profile string
	rotator *CredentialRotator
}

func NewDirectionsClient(baseURL string, rotator *CredentialRotator) *DirectionsClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &DirectionsClient{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		profile: "driving-car",
		rotator: rotator,
	}
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type routeSummary struct {
	Distance *float64 `json:"distance"`
	Duration *float64 `json:"duration"`
}

// The directions endpoint answers in one of two shapes depending on the
// requested format: a plain routes array or a GeoJSON feature collection.
// Both are decoded up front and probed explicitly.
type directionsResponse struct {
	Routes []struct {
		Summary *routeSummary `json:"summary"`
	} `json:"routes"`
	Features []struct {
		Properties struct {
			Summary *routeSummary `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Route returns driving metrics between origin and destination, rotating
// credentials on 401/429 until the pool is exhausted. A non-empty credential
// argument is tried first.
func (c *DirectionsClient) Route(
	ctx context.Context,
	origin, destination domain.Coordinates,
	credential string,
) (_ *domain.DriveMetrics, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	})
	if err != nil {
		return nil, fmt.Errorf("route: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, c.profile)
	attempted := make(map[string]struct{})

	for {
		current := ""
		if credential != "" {
			if _, ok := attempted[credential]; !ok {
				current = credential
			}
		}
		if current == "" {
			next, ok := c.rotator.Next()
			if !ok {
				return nil, ErrCredentialsExhausted
			}
			if _, tried := attempted[next]; tried {
				return nil, ErrCredentialsExhausted
			}
			current = next
		}
		attempted[current] = struct{}{}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("route: create request: %w", err)
		}
		req.Header.Set("Authorization", current)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.session.Do(req)
		if err != nil {
			return nil, fmt.Errorf("route: execute request: %w", err)
		}

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusTooManyRequests {
			// Credential rejected or rate-limited; try the next one.
			resp.Body.Close()
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("route: unexpected status %d", resp.StatusCode)
		}

		metrics, err := decodeDirections(resp.Body, origin, destination)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		return metrics, nil
	}
}

func decodeDirections(body io.Reader, origin, destination domain.Coordinates) (*domain.DriveMetrics, error) {
	var decoded directionsResponse
	if err := json.NewDecoder(body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("route: decode response: %w", err)
	}

	var summary *routeSummary
	switch {
	case len(decoded.Routes) > 0 && decoded.Routes[0].Summary != nil:
		summary = decoded.Routes[0].Summary
	case len(decoded.Features) > 0 && decoded.Features[0].Properties.Summary != nil:
		summary = decoded.Features[0].Properties.Summary
	default:
		return nil, errors.New("route: response carries no route summary")
	}

	if summary.Distance == nil {
		return nil, errors.New("route: summary has no distance")
	}

	distanceKm := *summary.Distance / 1000.0
	metrics := &domain.DriveMetrics{
		DistanceKm:    distanceKm,
		DistanceMiles: distanceKm * domain.MilesPerKm,
		Origin:        origin,
		Destination:   destination,
	}

	if summary.Duration != nil {
		minutes := *summary.Duration / 60.0
		metrics.DurationMinutes = &minutes
	}

	return metrics, nil
}
