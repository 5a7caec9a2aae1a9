package db

import (
	"restaurant_system/internal/domain" // Importing domain models

	"github.com/glebarez/sqlite" // Pure-Go sqlite driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open opens a file-backed sqlite store at the given path
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// MigrateAuth creates or updates the auth service schema
func MigrateAuth(g *gorm.DB) error {
	// AutoMigrate is idempotent: it creates missing tables, columns and indexes
	return g.AutoMigrate(&domain.User{}, &domain.Session{})
}

// MigrateOrder creates or updates the order service schema
func MigrateOrder(g *gorm.DB) error {
	return g.AutoMigrate(&domain.Dish{}, &domain.Order{}, &domain.OrderDish{})
}
