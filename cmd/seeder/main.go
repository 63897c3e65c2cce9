package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"courtside/internal/database"
	"courtside/internal/fixtures"
	"courtside/internal/store"
	"courtside/internal/syncer"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"FIXTURES_DIR":   "./fixtures",
		"MIGRATIONS_DIR": "./migrations",
	}
	if value, ok := os.LookupEnv("DB_NAME"); ok {
		config["DB_NAME"] = value
	} else {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}
	if value, ok := os.LookupEnv("FIXTURES_DIR"); ok {
		config["FIXTURES_DIR"] = value
	}
	if value, ok := os.LookupEnv("MIGRATIONS_DIR"); ok {
		config["MIGRATIONS_DIR"] = value
	}
	return config
}

// The seeder loads fixture files straight from disk into the store,
// overwriting whatever is there. Unlike the lazy seeding the server does,
// this is a force-seed for bootstrapping a fresh deployment or resetting
// a demo environment.
func main() {
	log.Info("Starting store seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], "", "", cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	defer db.Close()

	kv := store.NewSQLite(db)
	ctx := context.Background()
	startTime := time.Now()

	seeded := 0
	for key, chain := range syncer.DefaultSources() {
		var stored bool
		for _, source := range chain {
			path := filepath.Join(cfg["FIXTURES_DIR"], source.Fixture)
			body, err := os.ReadFile(path)
			if err != nil {
				log.Warn("Fixture file unreadable, trying next source", "key", key, "path", path, "error", err)
				continue
			}

			collection, err := fixtures.DecodeCollection[json.RawMessage](body, source.WrapperKeys...)
			if err != nil {
				log.Warn("Fixture file undecodable, trying next source", "key", key, "path", path, "error", err)
				continue
			}

			normalized, err := json.Marshal(collection)
			if err != nil {
				log.Fatalf("Failed to normalize collection for %s: %s", key, err)
			}
			if err := kv.Set(ctx, key, normalized); err != nil {
				log.Fatalf("Failed to write key %s: %s", key, err)
			}

			log.Info("Seeded collection", "key", key, "fixture", source.Fixture, "count", len(collection))
			stored = true
			seeded++
			break
		}
		if !stored {
			log.Error("No usable source for key, skipping", "key", key)
		}
	}

	log.Info("Seeding finished.", "seeded", seeded, "duration", time.Since(startTime))
}
