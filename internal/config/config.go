package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	MigrationsDir      string // Directory goose reads migrations from
	DBConnectRetries   int    // Ping attempts before giving up at startup
	RedisURL           string // Optional, caching is disabled when empty
	MealsCacheTTL      time.Duration
	JWTSecret          string // Secret key for JWT token signing
	JWTTTL             int    // JWT token expiration time in hours
	CORSOrigin         string
	LogLevel           string
	RateLimitRPS       float64 // General API endpoints (requests per second)
	RateLimitBurst     int
	RateLimitAuthRPS   float64 // Auth endpoints (stricter)
	RateLimitAuthBurst int
	RateLimitBulkRPS   float64 // Bulk meal ingestion (strictest)
	RateLimitBulkBurst int
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:               getEnv("PORT", "5050"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
		DBConnectRetries:   getEnvInt("DB_CONNECT_RETRIES", 5),
		RedisURL:           getEnv("REDIS_URL", ""),
		MealsCacheTTL:      time.Duration(getEnvInt("MEALS_CACHE_TTL_SECONDS", 300)) * time.Second,
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTTTL:             getEnvInt("JWT_TTL_HOURS", 1),
		CORSOrigin:         getEnv("CORS_ORIGIN", "*"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 2),
		RateLimitAuthBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 5),
		RateLimitBulkRPS:   getEnvFloat("RATE_LIMIT_BULK_RPS", 1),
		RateLimitBulkBurst: getEnvInt("RATE_LIMIT_BULK_BURST", 3),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL_HOURS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
