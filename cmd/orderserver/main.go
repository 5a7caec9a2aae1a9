package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"restaurant_system/internal/api"        // Custom package for API handlers
	"restaurant_system/internal/config"     // Custom package for configuration
	"restaurant_system/internal/db"         // Custom package for storage
	"restaurant_system/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the order service
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Tokens from the auth service are verified locally with the shared key
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Open the order store and migrate its schema idempotently
	conn, err := db.Open(cfg.OrderDBPath)
	if err != nil {
		logrus.Fatalf("failed to open order store: %v", err) // Fatal error if the store cannot be opened
	}
	if err := db.MigrateOrder(conn); err != nil {
		logrus.Fatalf("order migration failed: %v", err)
	}

	// Setup Redis client for the menu cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
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

	// Order routes
	r.POST("/orders", api.CreateOrderHandler(conn, redisClient)) // Order placement endpoint
	r.GET("/orders/:id", api.GetOrderHandler(conn))              // Order lookup endpoint

	// Batch fulfilment (protected, manager only)
	r.POST("/process_orders",
		middleware.JWTAuthMiddleware(cfg.JWTSecret), // Verify the bearer token locally
		middleware.ManagerOnlyMiddleware(),          // Gate on the verified role claim
		api.ProcessOrdersHandler(conn))              // Batch fulfilment endpoint

	// Dish catalog routes
	r.POST("/dishes", api.CreateDishHandler(conn, redisClient))       // Create dish endpoint
	r.GET("/dishes/:id", api.GetDishHandler(conn))                    // Get dish endpoint
	r.PUT("/dishes/:id", api.UpdateDishHandler(conn, redisClient))    // Update dish endpoint
	r.DELETE("/dishes/:id", api.DeleteDishHandler(conn, redisClient)) // Delete dish endpoint
	r.GET("/menu", api.MenuHandler(conn, redisClient))                // In-stock menu endpoint

	log.Println("Order service running on " + cfg.OrderPort) // Log server start
	r.Run(":" + cfg.OrderPort)                               // Start the server on the order port
}
