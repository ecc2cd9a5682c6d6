package api

import (
	"net/http"

	"github.com/decoded1/marketplace-cli/internal/adapters/geocode"
	"github.com/decoded1/marketplace-cli/internal/api/handlers"
	"github.com/decoded1/marketplace-cli/internal/ports"
	"github.com/decoded1/marketplace-cli/internal/services"
)

// Deps carries the long-lived collaborators the HTTP layer needs.
type Deps struct {
	Geocoder ports.Geocoder      // nil disables network geocoding
	Provider ports.RouteProvider // nil disables routed estimates
	Store    ports.ListingStore
	Locator  *geocode.IPLocator
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	listingHandler := &handlers.ListingHandler{Deps: services.SessionDeps{
		Geocoder: deps.Geocoder,
		Provider: deps.Provider,
		Store:    deps.Store,
	}}
	queryHandler := &handlers.ListingQueryHandler{Store: deps.Store}
	metricsHandler := &handlers.MetricsHandler{
		Engine: services.NewDriveMetricsEngine(deps.Provider, &services.OriginResolver{Geocoder: deps.Geocoder}),
	}
	locationHandler := &handlers.LocationHandler{Geocoder: deps.Geocoder}
	originHandler := &handlers.OriginHandler{Geocoder: deps.Geocoder, Locator: deps.Locator}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/listings/extract", listingHandler.Extract)
	mux.HandleFunc("/listings", queryHandler.List)
	mux.HandleFunc("/metrics/drive", metricsHandler.Drive)
	mux.HandleFunc("/locations/resolve", locationHandler.Resolve)
	mux.HandleFunc("/search/url", handlers.BuildSearchURL)
	mux.HandleFunc("/origin/ipcheck", originHandler.IPCheck)

	return loggingMiddleware(mux)
}
