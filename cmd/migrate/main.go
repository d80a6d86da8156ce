package main

import (
	"hoststore/internal/config" // Custom import path (Config)
	"hoststore/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run AutoMigrate against the configured database
}
