package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// City-level location derived from the caller's public IP. Used only for an
// interactive comparison against a configured origin, never for listing
// resolution.
type IPLocation struct {
	Coords domain.Coordinates
	City   string
	Region string
}

// IPLocator queries an ipinfo-style endpoint for best-effort IP geolocation.
type IPLocator struct {
	session *http.Client
	baseURL string
	token   string
}

func NewIPLocator(baseURL, token string) *IPLocator {
	if baseURL == "" {
		baseURL = "https://ipinfo.io"
	}
	return &IPLocator{
		session: &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
		token:   token,
	}
}

type ipinfoResponse struct {
	Loc    string `json:"loc"`
	City   string `json:"city"`
	Region string `json:"region"`
}

// Locate returns the coordinates and city/region metadata for the current
// public IP.
func (l *IPLocator) Locate(ctx context.Context) (*IPLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/json", nil)
	if err != nil {
		return nil, fmt.Errorf("ip locate: create request: %w", err)
	}

	if l.token != "" {
		q := req.URL.Query()
		q.Set("token", l.token)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := l.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ip locate: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ip locate: unexpected status %d", resp.StatusCode)
	}

	var decoded ipinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("ip locate: decode response: %w", err)
	}

	lat, lon, err := parseLoc(decoded.Loc)
	if err != nil {
		return nil, fmt.Errorf("ip locate: %w", err)
	}

	return &IPLocation{
		Coords: domain.Coordinates{Lat: lat, Lon: lon},
		City:   decoded.City,
		Region: decoded.Region,
	}, nil
}

// parseLoc splits the "lat,lon" loc field.
func parseLoc(loc string) (float64, float64, error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed loc field %q", loc)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude: %w", err)
	}

	return lat, lon, nil
}
