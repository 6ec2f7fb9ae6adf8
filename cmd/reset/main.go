// Command reset drops and recreates the development database, applies the
// migrations and seeds the catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/osse101/DreamJournal_Go/internal/bootstrap"
	"github.com/osse101/DreamJournal_Go/internal/config"
	"github.com/osse101/DreamJournal_Go/internal/database"
	"github.com/osse101/DreamJournal_Go/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	force := flag.Bool("force", false, "allow resetting outside the dev environment")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}
	if !logger.IsDevelopment(cfg.Environment) && !*force {
		log.Fatalf("Refusing to reset a %q database without -force", cfg.Environment)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, serverConnString)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL server: %v", err)
	}

	dbName := pgx.Identifier{cfg.DBName}.Sanitize()

	log.Printf("Terminating existing connections to %s...", cfg.DBName)
	if _, err := conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`, cfg.DBName); err != nil {
		log.Printf("Warning: failed to terminate connections: %v", err)
	}

	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
		log.Fatalf("Failed to drop database: %v", err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+dbName); err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	_ = conn.Close(ctx)
	log.Printf("Database %s recreated", cfg.DBName)

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 2, time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.DBName, err)
	}
	defer pool.Close()

	version, err := database.Migrate(ctx, pool)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Migrated to version %d", version)

	repos := bootstrap.InitializeRepositories(pool)
	if err := bootstrap.SyncCatalogFromFile(ctx, cfg.CatalogPath, cfg.CatalogSchemaPath, repos.CatalogStore); err != nil {
		log.Fatalf("Catalog seed failed: %v", err)
	}

	log.Println("Database reset complete")
}
