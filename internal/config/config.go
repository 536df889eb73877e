package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
// We use a struct (not globals) so it's testable and explicit.
type Config struct {
	// Server
	ServerAddr string
	Env        string // "development" or "production"

	// URLs
	AppBaseURL    string
	AllowedOrigin string // CORS origin allowed in production

	// Static files (frontend build, optional)
	StaticDir string

	// Uploads
	UploadDir      string
	MaxUploadBytes int64
	UploadsPerMin  int

	// File storage backend: "local" or "r2"
	StorageType       string
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
	R2Endpoint        string

	// Redis (for PubSub)
	RedisURL   string // e.g., "redis://localhost:6379"
	PubSubType string // "memory" or "redis"
}

// Load reads configuration from environment variables.
// In production, these come from the host. In dev, from .env via docker-compose.
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddr: getEnvOrDefault("SERVER_ADDR", "0.0.0.0:8080"),
		Env:        getEnvOrDefault("APP_ENV", "development"),
		AppBaseURL: getEnvOrDefault("APP_BASE_URL", "http://localhost:5173"),
	}
	cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", cfg.AppBaseURL)

	cfg.StaticDir = os.Getenv("STATIC_DIR")

	// Uploads. The client-facing error text quotes 10MB, so keep the
	// default in sync with it.
	cfg.UploadDir = getEnvOrDefault("UPLOAD_DIR", "uploads")
	cfg.MaxUploadBytes = getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 10*1024*1024)
	cfg.UploadsPerMin = getEnvIntOrDefault("UPLOADS_PER_MINUTE", 30)

	// File storage configuration
	cfg.StorageType = getEnvOrDefault("STORAGE_TYPE", "local")
	cfg.R2AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2Bucket = os.Getenv("R2_BUCKET")
	cfg.R2Endpoint = getEnvOrDefault("R2_ENDPOINT", fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID))

	// Redis / PubSub configuration
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.PubSubType = getEnvOrDefault("PUBSUB_TYPE", "memory") // "memory" or "redis"

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.PubSubType {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when PUBSUB_TYPE=redis")
		}
	default:
		return fmt.Errorf("PUBSUB_TYPE must be memory or redis, got %q", c.PubSubType)
	}

	switch c.StorageType {
	case "local":
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required when STORAGE_TYPE=local")
		}
	case "r2":
		if c.R2AccessKeyID == "" || c.R2SecretAccessKey == "" || c.R2Bucket == "" {
			return fmt.Errorf("R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET are required when STORAGE_TYPE=r2")
		}
	default:
		return fmt.Errorf("STORAGE_TYPE must be local or r2, got %q", c.StorageType)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvInt64OrDefault(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}
