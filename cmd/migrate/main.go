package main

import (
	"restaurant_system/internal/config" // Custom import path (Config)
	"restaurant_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration of both service stores
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Auth store
	authConn, err := db.Open(cfg.AuthDBPath)
	if err != nil {
		logrus.Fatalf("failed to open auth store: %v", err)
	}
	if err := db.MigrateAuth(authConn); err != nil {
		logrus.Fatalf("auth migration failed: %v", err)
	}

	// Order store
	orderConn, err := db.Open(cfg.OrderDBPath)
	if err != nil {
		logrus.Fatalf("failed to open order store: %v", err)
	}
	if err := db.MigrateOrder(orderConn); err != nil {
		logrus.Fatalf("order migration failed: %v", err)
	}

	logrus.Info("Migration completed.") // Log successful migration
}
