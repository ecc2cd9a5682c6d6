package geo

import (
	"strings"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// Fixed metro-area coordinates keyed by marketplace site code. This is the
// lowest-fidelity resolution tier and requires no network access.
var siteCoordinates = map[string]domain.Coordinates{
	"philadelphia": {Lat: 39.9526, Lon: -75.1652},
	"southjersey":  {Lat: 39.7831, Lon: -74.9958},
	"jerseyshore":  {Lat: 39.9470, Lon: -74.1710},
	"washingtondc": {Lat: 38.9072, Lon: -77.0369},
	"baltimore":    {Lat: 39.2904, Lon: -76.6122},
	"newyork":      {Lat: 40.7128, Lon: -74.0060},
}

// SiteCoords looks up the metro-area coordinates for a site code.
func SiteCoords(code string) (domain.Coordinates, bool) {
	c, ok := siteCoordinates[strings.ToLower(strings.TrimSpace(code))]
	return c, ok
}
