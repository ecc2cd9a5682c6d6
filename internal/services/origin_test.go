package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/decoded1/marketplace-cli/internal/adapters/geocode"
	"github.com/decoded1/marketplace-cli/internal/domain"
)

func TestResolveOriginFromTables(t *testing.T) {
	o := &OriginResolver{}

	coords, ok := o.ResolveOrigin(context.Background(), "19107")
	if !ok {
		t.Fatal("expected ZIP table hit")
	}
	if coords.Lat != 39.9526 || coords.Lon != -75.1652 {
		t.Fatalf("coords = %v", coords)
	}

	if _, ok := o.ResolveOrigin(context.Background(), "nowhere special"); ok {
		t.Fatal("expected miss without a geocoder")
	}
	if _, ok := o.ResolveOrigin(context.Background(), "  "); ok {
		t.Fatal("blank origin must not resolve")
	}
}

func TestResolveOriginFallsBackToGeocoder(t *testing.T) {
	g := &countingGeocoder{coords: domain.Coordinates{Lat: 40.0, Lon: -75.2}}
	o := &OriginResolver{Geocoder: g}

	coords, ok := o.ResolveOrigin(context.Background(), "123 Market St, Philadelphia")
	if !ok || coords.Lat != 40.0 {
		t.Fatalf("coords = %v, ok = %v", coords, ok)
	}
	if g.calls != 1 {
		t.Fatalf("geocoder calls = %d", g.calls)
	}

	// Table hits never reach the geocoder.
	if _, ok := o.ResolveOrigin(context.Background(), "philadelphia"); !ok {
		t.Fatal("expected city table hit")
	}
	if g.calls != 1 {
		t.Fatalf("geocoder consulted on table hit, calls = %d", g.calls)
	}

	g.err = errors.New("service down")
	if _, ok := o.ResolveOrigin(context.Background(), "456 Chestnut St"); ok {
		t.Fatal("expected failure to propagate as a miss")
	}
}

func TestOriginFromEnv(t *testing.T) {
	t.Setenv(envOriginAddress, "  19107 ")
	if got := OriginFromEnv(); got != "19107" {
		t.Fatalf("origin = %q", got)
	}

	t.Setenv(envOriginAddress, "")
	if got := OriginFromEnv(); got != "" {
		t.Fatalf("origin = %q, want empty", got)
	}
}

func ipinfoServer(t *testing.T, lat, lon float64, city, region string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"loc":"%f,%f","city":"%s","region":"%s"}`, lat, lon, city, region)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCompareOriginWithIPMatch(t *testing.T) {
	srv := ipinfoServer(t, 39.9490, -75.1600, "Philadelphia", "Pennsylvania")
	locator := geocode.NewIPLocator(srv.URL, "")

	origin := domain.Coordinates{Lat: 39.9526, Lon: -75.1652}
	cmp, err := CompareOriginWithIP(context.Background(), origin, locator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.Mismatch {
		t.Fatalf("nearby IP flagged as mismatch, distance %.1f miles", cmp.DistanceMiles)
	}
	if cmp.IPDescription != "Philadelphia, Pennsylvania" {
		t.Fatalf("description = %q", cmp.IPDescription)
	}
}

func TestCompareOriginWithIPMismatch(t *testing.T) {
	srv := ipinfoServer(t, 40.7128, -74.0060, "New York", "New York")
	locator := geocode.NewIPLocator(srv.URL, "")

	origin := domain.Coordinates{Lat: 39.9526, Lon: -75.1652}
	cmp, err := CompareOriginWithIP(context.Background(), origin, locator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmp.Mismatch {
		t.Fatalf("distant IP not flagged, distance %.1f miles", cmp.DistanceMiles)
	}
	if cmp.DistanceMiles < 70 || cmp.DistanceMiles > 90 {
		t.Fatalf("distance = %.1f miles, want ~80", cmp.DistanceMiles)
	}
}

func TestCompareOriginWithIPDescriptionFallback(t *testing.T) {
	srv := ipinfoServer(t, 39.9526, -75.1652, "", "")
	locator := geocode.NewIPLocator(srv.URL, "")

	cmp, err := CompareOriginWithIP(context.Background(), domain.Coordinates{Lat: 39.9526, Lon: -75.1652}, locator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.IPDescription != "your current area" {
		t.Fatalf("description = %q", cmp.IPDescription)
	}
}
