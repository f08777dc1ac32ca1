package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names.
const (
	StorageBackendFile  = "file"
	StorageBackendRedis = "redis"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Logger  LoggerConfig
}

// APIConfig holds backend API configuration.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig holds durable local storage configuration. The cart
// snapshot and theme key live in the selected backend.
type StorageConfig struct {
	Backend       string // "file" or "redis"
	Dir           string // state directory for the file backend
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      int // seconds, 0 means no expiry
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from the environment, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	// Missing .env is fine; real environment variables win anyway.
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:4000"),
			Timeout: time.Duration(getEnvAsInt("API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Storage: StorageConfig{
			Backend:       getEnv("STORAGE_BACKEND", StorageBackendFile),
			Dir:           getEnv("STORAGE_DIR", defaultStateDir()),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			RedisTTL:      getEnvAsInt("REDIS_TTL_SECONDS", 0),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}

	switch c.Storage.Backend {
	case StorageBackendFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage directory is required for the file backend")
		}
	case StorageBackendRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
		if c.Storage.RedisTTL < 0 {
			return fmt.Errorf("redis TTL cannot be negative")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s (must be file or redis)", c.Storage.Backend)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// RedisTTLDuration returns the configured redis key expiry.
func (c *StorageConfig) RedisTTLDuration() time.Duration {
	return time.Duration(c.RedisTTL) * time.Second
}

// defaultStateDir returns the per-user state directory for the file backend.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shopfront"
	}
	return home + "/.shopfront"
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
