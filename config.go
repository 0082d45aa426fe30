package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// config is read from the environment, optionally seeded from a .env file.
type config struct {
	HTTPPort       int
	SnapshotDBPath string
	SnapshotSeed   bool
	SnapshotDebug  bool
	RedisAddr      string
	CacheTTL       time.Duration
	LogLevel       string
	AllowedOrigins string
}

func loadConfig() config {
	// a missing .env is normal; real environment variables always win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	return config{
		HTTPPort:       getEnvInt("HTTP_PORT", 3000),
		SnapshotDBPath: getEnv("SNAPSHOT_DB_PATH", "condo.db"),
		SnapshotSeed:   getEnvBool("SNAPSHOT_SEED", true),
		SnapshotDebug:  getEnvBool("SNAPSHOT_DEBUG", false),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}
