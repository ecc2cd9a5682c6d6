package geo

import (
	"fmt"
	"strings"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

// Standardized location parameters shared by all marketplace platforms.
// Coords is nil when the location could not be pinned to coordinates.
type LocationParams struct {
	ZIPCode          string
	City             string
	State            string
	Coords           *domain.Coordinates
	RadiusMiles      int
	MarketplaceSites []string
	PrimarySite      string
	OfferUpCity      string
	OfferUpState     string
	FacebookCityCode string
}

// Hardcoded mappings for common locations. Expand as coverage grows.
var zipLocations = map[string]LocationParams{
	"08021": {
		ZIPCode:          "08021",
		City:             "Pine Hill",
		State:            "New Jersey",
		Coords:           &domain.Coordinates{Lat: 39.7831, Lon: -74.9958},
		MarketplaceSites: []string{"southjersey", "philadelphia", "jerseyshore"},
		PrimarySite:      "southjersey",
		OfferUpCity:      "Newark",
		OfferUpState:     "New Jersey",
		FacebookCityCode: "philly",
	},
	"19107": {
		ZIPCode:          "19107",
		City:             "Philadelphia",
		State:            "Pennsylvania",
		Coords:           &domain.Coordinates{Lat: 39.9526, Lon: -75.1652},
		MarketplaceSites: []string{"philadelphia"},
		PrimarySite:      "philadelphia",
		OfferUpCity:      "Philadelphia",
		OfferUpState:     "Pennsylvania",
		FacebookCityCode: "philly",
	},
}

var cityLocations = map[string]LocationParams{
	"philadelphia": zipLocations["19107"],
	"philly":       zipLocations["19107"],
	"pine hill":    zipLocations["08021"],
	"newark": {
		City:             "Newark",
		State:            "New Jersey",
		Coords:           &domain.Coordinates{Lat: 40.7357, Lon: -74.1724},
		MarketplaceSites: []string{"newjersey", "philadelphia"},
		PrimarySite:      "newjersey",
		OfferUpCity:      "Newark",
		OfferUpState:     "New Jersey",
		FacebookCityCode: "philadelphia",
	},
}

// Lookup resolves a freeform location input (ZIP or city name) against the
// fixed tables. It performs no network access; callers fall back to a network
// geocoder when the tables miss.
func Lookup(input string, radiusMiles int) (*LocationParams, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, false
	}

	if isZIP(input) {
		zip := strings.ReplaceAll(input, "-", "")
		if p, ok := zipLocations[zip]; ok {
			p.RadiusMiles = radiusMiles
			return &p, true
		}
		return nil, false
	}

	for key, data := range cityLocations {
		if strings.Contains(input, key) {
			p := data
			p.RadiusMiles = radiusMiles
			return &p, true
		}
	}

	return nil, false
}

func isZIP(s string) bool {
	s = strings.ReplaceAll(s, "-", "")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// InferSites guesses appropriate marketplace site codes from a state/city
// pair geocoded off-table. Simplified heuristic for the mid-Atlantic region.
func InferSites(state, city string) []string {
	stateLower := strings.ToLower(state)
	cityLower := strings.ToLower(city)

	switch {
	case strings.Contains(stateLower, "pennsylvania"), strings.Contains(stateLower, "pa"):
		return []string{"philadelphia"}
	case strings.Contains(stateLower, "new jersey"), strings.Contains(stateLower, "nj"):
		switch {
		case strings.Contains(cityLower, "south"),
			strings.Contains(cityLower, "pine"),
			strings.Contains(cityLower, "camden"):
			return []string{"southjersey", "philadelphia", "jerseyshore"}
		case strings.Contains(cityLower, "north"), strings.Contains(cityLower, "newark"):
			return []string{"newjersey", "newyork"}
		default:
			return []string{"newjersey", "philadelphia"}
		}
	case strings.Contains(stateLower, "new york"), strings.Contains(stateLower, "ny"):
		return []string{"newyork"}
	}

	return []string{"philadelphia"}
}

// SearchParams projects LocationParams into the query parameters a specific
// platform adapter expects.
func SearchParams(p *LocationParams, platform string) (map[string]any, error) {
	switch platform {
	case "facebook":
		out := map[string]any{
			"city_code": p.FacebookCityCode,
			"radius":    p.RadiusMiles,
		}
		if p.Coords != nil {
			out["latitude"] = p.Coords.Lat
			out["longitude"] = p.Coords.Lon
		}
		return out, nil

	case "offerup":
		return map[string]any{
			"state":           p.OfferUpState,
			"city":            p.OfferUpCity,
			"pickup_distance": p.RadiusMiles,
		}, nil

	case "craigslist":
		primary := p.PrimarySite
		if primary == "" && len(p.MarketplaceSites) > 0 {
			primary = p.MarketplaceSites[0]
		}

		out := map[string]any{
			"site":  primary,
			"city":  p.City,
			"state": p.State,
		}
		if p.ZIPCode != "" {
			out["postal"] = p.ZIPCode
			out["search_distance"] = p.RadiusMiles
		}
		if len(p.MarketplaceSites) > 0 {
			out["sites"] = p.MarketplaceSites
		}
		return out, nil
	}

	return nil, fmt.Errorf("search params: unknown platform %q", platform)
}
