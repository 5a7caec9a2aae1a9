package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AuthPort    string // Auth service port
	OrderPort   string // Order service port
	AuthDBPath  string // Auth service sqlite file
	OrderDBPath string // Order service sqlite file
	JWTSecret   string // JWT signing key, must be supplied externally
	RedisAddr   string // Redis server address
	RedisPass   string // Redis password
	RedisDB     int    // Redis database number
	IsProd      bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AuthPort:    getEnv("AUTH_PORT", "8000"),            // Auth service port
		OrderPort:   getEnv("ORDER_PORT", "8001"),           // Order service port
		AuthDBPath:  getEnv("AUTH_DB_PATH", "auth.db"),      // Auth store file
		OrderDBPath: getEnv("ORDER_DB_PATH", "order.db"),    // Order store file
		JWTSecret:   os.Getenv("JWT_SECRET"),                // No fallback, servers refuse to start without it
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"), // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:     redisDB,                                // Redis database number
		IsProd:      os.Getenv("IS_PROD") == "true",         // Is production environment
	}
}

// getEnv returns the environment variable or a fallback value
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
