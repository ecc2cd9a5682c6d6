package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/decoded1/marketplace-cli/internal/adapters/geocode"
	"github.com/decoded1/marketplace-cli/internal/adapters/routing"
	"github.com/decoded1/marketplace-cli/internal/adapters/store"
	"github.com/decoded1/marketplace-cli/internal/api"
	"github.com/decoded1/marketplace-cli/internal/config"
	"github.com/decoded1/marketplace-cli/internal/platform/db"
	"github.com/decoded1/marketplace-cli/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, ORS, ipinfo) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	orsBaseURL := config.Get("ORS_BASE_URL", routing.DefaultBaseURL)

	conn, listingStore, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Create tables on startup for local runs.
	if err := listingStore.EnsureSchema(context.Background()); err != nil {
		log.Fatal(err)
	}

	rotator := routing.NewCredentialRotator()
	provider := routing.NewDirectionsClient(orsBaseURL, rotator)

	// Network geocoding costs per-request quota; it is opt-in.
	var geocoder ports.Geocoder
	if config.Bool("MARKETPLACE_ENABLE_GEOCODE") {
		geocoder = geocode.NewClient(orsBaseURL, rotator)
	}

	locator := geocode.NewIPLocator("", config.Get("IPINFO_TOKEN", ""))

	router := api.NewRouter(api.Deps{
		Geocoder: geocoder,
		Provider: provider,
		Store:    listingStore,
		Locator:  locator,
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStore picks the listing store backend: Postgres when DATABASE_URL is
// set, file-backed SQLite otherwise.
func openStore() (*sql.DB, ports.ListingStore, error) {
	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		conn, err := db.OpenPostgres(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return conn, store.NewPostgresListingStore(conn), nil
	}

	conn, err := db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
	if err != nil {
		return nil, nil, err
	}
	return conn, store.NewSqliteListingStore(conn), nil
}
