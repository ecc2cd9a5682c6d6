package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/decoded1/marketplace-cli/internal/adapters/store"
	"github.com/decoded1/marketplace-cli/internal/config"
	"github.com/decoded1/marketplace-cli/internal/platform/db"
	"github.com/decoded1/marketplace-cli/internal/ports"
)

// dbtool initializes the listing schema and reports what the store holds.
// Useful for provisioning a fresh database before first run.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx := context.Background()

	var listingStore ports.ListingStore
	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		conn, err := db.OpenPostgres(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		listingStore = store.NewPostgresListingStore(conn)
	} else {
		conn, err := db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		listingStore = store.NewSqliteListingStore(conn)
	}

	log.Println("Initializing database schema...")
	if err := listingStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	listings, err := listingStore.ListListings(ctx)
	if err != nil {
		log.Fatalf("listing count failed: %v", err)
	}
	log.Printf("Store holds %d listing(s).", len(listings))
}
