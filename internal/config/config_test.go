package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Success with defaults",
			envVars:     map[string]string{},
			expectError: false,
		},
		{
			name: "Success with all config specified",
			envVars: map[string]string{
				"API_BASE_URL":        "http://backend.example.com:4000",
				"API_TIMEOUT_SECONDS": "30",
				"STORAGE_BACKEND":     "redis",
				"REDIS_ADDR":          "redis.example.com:6379",
				"REDIS_DB":            "2",
				"REDIS_TTL_SECONDS":   "3600",
				"LOG_LEVEL":           "debug",
				"LOG_FORMAT":          "json",
			},
			expectError: false,
		},
		{
			name: "Error - invalid storage backend",
			envVars: map[string]string{
				"STORAGE_BACKEND": "s3",
			},
			expectError: true,
			errorMsg:    "invalid storage backend",
		},
		{
			name: "Error - invalid log level",
			envVars: map[string]string{
				"LOG_LEVEL": "invalid",
			},
			expectError: true,
			errorMsg:    "invalid log level",
		},
		{
			name: "Error - invalid log format",
			envVars: map[string]string{
				"LOG_FORMAT": "xml",
			},
			expectError: true,
			errorMsg:    "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			cfg, err := Load()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
			}

			// Clean up
			os.Clearenv()
		})
	}
}

func TestLoad_AppliesEnvironment(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	os.Setenv("API_BASE_URL", "http://backend:4000")
	os.Setenv("API_TIMEOUT_SECONDS", "5")
	os.Setenv("STORAGE_BACKEND", "file")
	os.Setenv("STORAGE_DIR", "/tmp/shopfront-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend:4000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, StorageBackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/shopfront-test", cfg.Storage.Dir)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		expectError bool
		errorMsg    string
	}{
		{
			name: "Valid file backend configuration",
			config: &Config{
				API: APIConfig{
					BaseURL: "http://localhost:4000",
					Timeout: 15 * time.Second,
				},
				Storage: StorageConfig{
					Backend: StorageBackendFile,
					Dir:     "/tmp/state",
				},
				Logger: LoggerConfig{
					Level:  "info",
					Format: "json",
				},
			},
			expectError: false,
		},
		{
			name: "Valid redis backend configuration",
			config: &Config{
				API: APIConfig{
					BaseURL: "http://localhost:4000",
					Timeout: 15 * time.Second,
				},
				Storage: StorageConfig{
					Backend:   StorageBackendRedis,
					RedisAddr: "localhost:6379",
				},
				Logger: LoggerConfig{
					Level:  "info",
					Format: "console",
				},
			},
			expectError: false,
		},
		{
			name: "Error - empty base URL",
			config: &Config{
				API: APIConfig{
					Timeout: 15 * time.Second,
				},
				Storage: StorageConfig{
					Backend: StorageBackendFile,
					Dir:     "/tmp/state",
				},
				Logger: LoggerConfig{
					Level:  "info",
					Format: "json",
				},
			},
			expectError: true,
			errorMsg:    "API base URL is required",
		},
		{
			name: "Error - non-positive timeout",
			config: &Config{
				API: APIConfig{
					BaseURL: "http://localhost:4000",
				},
				Storage: StorageConfig{
					Backend: StorageBackendFile,
					Dir:     "/tmp/state",
				},
				Logger: LoggerConfig{
					Level:  "info",
					Format: "json",
				},
			},
			expectError: true,
			errorMsg:    "API timeout must be positive",
		},
		{
			name: "Error - redis backend without address",
			config: &Config{
				API: APIConfig{
					BaseURL: "http://localhost:4000",
					Timeout: 15 * time.Second,
				},
				Storage: StorageConfig{
					Backend: StorageBackendRedis,
				},
				Logger: LoggerConfig{
					Level:  "info",
					Format: "json",
				},
			},
			expectError: true,
			errorMsg:    "redis address is required",
		},
		{
			name: "Error - negative redis TTL",
			config: &Config{
				API: APIConfig{
					BaseURL: "http://localhost:4000",
					Timeout: 15 * time.Second,
				},
				Storage: StorageConfig{
					Backend:   StorageBackendRedis,
					RedisAddr: "localhost:6379",
					RedisTTL:  -1,
				},
				Logger: LoggerConfig{
					Level:  "info",
					Format: "json",
				},
			},
			expectError: true,
			errorMsg:    "redis TTL cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
