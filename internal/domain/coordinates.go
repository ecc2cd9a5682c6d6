package domain

import "math"

// Conversion factors between the two distance units used across the system.
// Routing responses arrive in kilometers; user-facing output is in miles.
const (
	MilesPerKm = 0.621371
	KmPerMile  = 1.60934
)

// Mean Earth radius in miles, used for great-circle distance.
const earthRadiusMiles = 3958.7613

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
// OpenRouteService expects longitude first.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// GeodesicMilesTo computes the great-circle distance in miles between two
// coordinate pairs using the haversine formula. It is a total function over
// valid coordinates and has no side effects.
func (c Coordinates) GeodesicMilesTo(other Coordinates) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - c.Lat) * math.Pi / 180
	dLon := (other.Lon - c.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(a))
}
