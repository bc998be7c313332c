package main

import (
	"paydash/internal/config" // Custom import path (Config)
	"paydash/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point for migration and demo seeding
func main() {
	cfg := config.LoadConfig() // Load configuration

	database, err := db.Open(cfg.DBPath) // Open the SQLite store
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if err := db.Seed(database); err != nil {
		logrus.Fatalf("seeding failed: %v", err)
	}
}
