package domain

import (
	"math"
	"testing"
)

func TestGeodesicMilesTo(t *testing.T) {
	// Center City Philadelphia to the Camden waterfront area.
	origin := Coordinates{Lat: 39.9526, Lon: -75.1652}
	dest := Coordinates{Lat: 39.95, Lon: -75.10}

	got := origin.GeodesicMilesTo(dest)
	if got < 3.4 || got > 3.6 {
		t.Fatalf("distance = %f, want ~3.5 miles", got)
	}
}

func TestGeodesicMilesToZero(t *testing.T) {
	p := Coordinates{Lat: 40.7128, Lon: -74.0060}
	if d := p.GeodesicMilesTo(p); d != 0 {
		t.Fatalf("distance to self = %f, want 0", d)
	}
}

func TestGeodesicMilesToSymmetric(t *testing.T) {
	a := Coordinates{Lat: 39.9526, Lon: -75.1652}
	b := Coordinates{Lat: 38.9072, Lon: -77.0369}

	ab := a.GeodesicMilesTo(b)
	ba := b.GeodesicMilesTo(a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}

	// Philadelphia to Washington DC is roughly 120 miles as the crow flies.
	if ab < 110 || ab > 130 {
		t.Fatalf("distance = %f, want ~120 miles", ab)
	}
}

func TestCoordsToList(t *testing.T) {
	c := Coordinates{Lat: 39.7831, Lon: -74.9958}
	list := c.CoordsToList()
	if len(list) != 2 || list[0] != c.Lon || list[1] != c.Lat {
		t.Fatalf("CoordsToList() = %v, want [lon lat]", list)
	}
}
