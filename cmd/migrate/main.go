package main

// Apply the lead database schema:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"github.com/KarimovMurodilla/lead-management-system/internal/shared/config"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is not set; nothing to migrate (env=%s)", cfg.Env)
		os.Exit(1)
	}

	log.Printf("applying lead schema migrations (env=%s)", cfg.Env)

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("lead schema is up to date")
}
