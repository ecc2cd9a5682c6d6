package domain

// Distance and travel duration between an origin and a destination.
//
// Fallback reports that the estimate was produced without a routing call,
// from straight-line distance only. DurationMinutes is always nil when
// Fallback is true: geodesic distance carries no timing data.
type DriveMetrics struct {
	DistanceKm      float64
	DistanceMiles   float64
	DurationMinutes *float64
	Origin          Coordinates
	Destination     Coordinates
	Fallback        bool
}

// Input to the drive-metrics engine. Destination must be fully specified;
// origin may be given as coordinates, as free text, or both (coordinates win).
type DriveQuery struct {
	OriginText         string
	OriginCoords       *Coordinates
	Destination        *Coordinates
	FallbackToGeodesic bool
	AttemptRouting     bool
}
