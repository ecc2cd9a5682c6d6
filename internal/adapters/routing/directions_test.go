package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/decoded1/marketplace-cli/internal/domain"
)

var (
	testOrigin = domain.Coordinates{Lat: 39.9526, Lon: -75.1652}
	testDest   = domain.Coordinates{Lat: 39.7831, Lon: -74.9958}
)

func newTestClient(t *testing.T, handler http.HandlerFunc, keys string) *DirectionsClient {
	t.Helper()
	t.Setenv(envCredentialList, keys)
	t.Setenv(envCredentialSingle, "")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewDirectionsClient(srv.URL, NewCredentialRotator())
}

func TestRouteRoutesShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/directions/driving-car" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "key1" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"routes":[{"summary":{"distance":18600.0,"duration":1380.0}}]}`))
	}, "key1")

	m, err := c.Route(context.Background(), testOrigin, testDest, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.DistanceKm != 18.6 {
		t.Fatalf("distance_km = %f, want 18.6", m.DistanceKm)
	}
	wantMiles := 18.6 * domain.MilesPerKm
	if diff := m.DistanceMiles - wantMiles; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("distance_miles = %f, want %f", m.DistanceMiles, wantMiles)
	}
	if m.DurationMinutes == nil || *m.DurationMinutes != 23.0 {
		t.Fatalf("duration_minutes = %v, want 23", m.DurationMinutes)
	}
	if m.Fallback {
		t.Fatal("routed metrics must not be marked as fallback")
	}
}

func TestRouteGeoJSONShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[{"properties":{"summary":{"distance":5000.0,"duration":600.0}}}]}`))
	}, "key1")

	m, err := c.Route(context.Background(), testOrigin, testDest, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.DistanceKm != 5.0 {
		t.Fatalf("distance_km = %f, want 5", m.DistanceKm)
	}
	if m.DurationMinutes == nil || *m.DurationMinutes != 10.0 {
		t.Fatalf("duration_minutes = %v, want 10", m.DurationMinutes)
	}
}

func TestRouteRotatesOnUnauthorized(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("Authorization")
		seen = append(seen, key)
		if key != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"routes":[{"summary":{"distance":1000.0,"duration":120.0}}]}`))
	}, "bad1,good")

	m, err := c.Route(context.Background(), testOrigin, testDest, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || m.DistanceKm != 1.0 {
		t.Fatalf("metrics = %v", m)
	}
	if len(seen) != 2 || seen[0] != "bad1" || seen[1] != "good" {
		t.Fatalf("credential order = %v", seen)
	}
}

func TestRouteExplicitCredentialFirst(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusTooManyRequests)
	}, "pool1,pool2")

	_, err := c.Route(context.Background(), testOrigin, testDest, "pinned")
	if !errors.Is(err, ErrCredentialsExhausted) {
		t.Fatalf("err = %v, want ErrCredentialsExhausted", err)
	}
	if len(seen) == 0 || seen[0] != "pinned" {
		t.Fatalf("explicit credential was not tried first: %v", seen)
	}
}

func TestRouteHardFailureStopsRotation(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}, "k1,k2,k3")

	_, err := c.Route(context.Background(), testOrigin, testDest, "")
	if err == nil {
		t.Fatal("expected error on 500")
	}
	if errors.Is(err, ErrCredentialsExhausted) {
		t.Fatalf("500 must be terminal, not exhaustion: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (no rotation on hard failure)", calls)
	}
}

func TestRouteExhaustsPool(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}, "k1,k2")

	_, err := c.Route(context.Background(), testOrigin, testDest, "")
	if !errors.Is(err, ErrCredentialsExhausted) {
		t.Fatalf("err = %v, want ErrCredentialsExhausted", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want one per pool credential", calls)
	}
}

func TestRouteUnparseableSummary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metadata":{"service":"routing"}}`))
	}, "key1")

	if _, err := c.Route(context.Background(), testOrigin, testDest, ""); err == nil {
		t.Fatal("expected error when neither response shape yields a summary")
	}
}

func TestRouteSendsLonLatOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Coordinates [][]float64 `json:"coordinates"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.Coordinates) != 2 {
			t.Fatalf("coordinates = %v", body.Coordinates)
		}
		if body.Coordinates[0][0] != testOrigin.Lon || body.Coordinates[0][1] != testOrigin.Lat {
			t.Errorf("origin not in [lon, lat] order: %v", body.Coordinates[0])
		}
		w.Write([]byte(`{"routes":[{"summary":{"distance":1.0,"duration":1.0}}]}`))
	}, "key1")

	if _, err := c.Route(context.Background(), testOrigin, testDest, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
