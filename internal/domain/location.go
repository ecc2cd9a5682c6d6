package domain

// Quality marks which resolution tier produced a location.
// Lower tiers carry lower geographic fidelity.
type Quality string

const (
	QualityNetworkGeocode Quality = "network-geocode"
	QualityCityTable      Quality = "city-table"
	QualitySiteTable      Quality = "site-table"
)

// A textual location resolved to coordinates, tagged with the tier that
// produced it. A ResolvedLocation always has coordinates; an unresolved
// location is represented as a nil *ResolvedLocation.
type ResolvedLocation struct {
	Coords  Coordinates
	Quality Quality
}
