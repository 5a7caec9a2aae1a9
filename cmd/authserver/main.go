package main

import (
	"log" // log package is needed for logging

	"restaurant_system/internal/api"        // Custom package for API handlers
	"restaurant_system/internal/config"     // Custom package for configuration
	"restaurant_system/internal/db"         // Custom package for storage
	"restaurant_system/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the auth service
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// The signing key must come from the environment
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Open the auth store and migrate its schema idempotently
	conn, err := db.Open(cfg.AuthDBPath)
	if err != nil {
		logrus.Fatalf("failed to open auth store: %v", err) // Fatal error if the store cannot be opened
	}
	if err := db.MigrateAuth(conn); err != nil {
		logrus.Fatalf("auth migration failed: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Registration and login routes
	r.POST("/register", api.RegisterHandler(conn))                   // Registration endpoint
	r.POST("/register_with_role", api.RegisterWithRoleHandler(conn)) // Registration with explicit role
	r.POST("/token", api.TokenHandler(conn, cfg.JWTSecret))          // Token issuance endpoint

	// Current-user route (protected by JWT)
	users := r.Group("/users")
	users.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret)) // Verify bearer tokens
	users.GET("/me", api.MeHandler(conn))                  // Current user endpoint

	log.Println("Auth service running on " + cfg.AuthPort) // Log server start
	r.Run(":" + cfg.AuthPort)                              // Start the server on the auth port
}
