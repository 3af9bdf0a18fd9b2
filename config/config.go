package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment is the runtime environment the process was started in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the runtime environment. CI=true takes precedence
// over ENV; anything unrecognized falls back to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether the process runs in production.
func IsProduction() bool { return GetEnvironment() == Production }

// IsCI reports whether the process runs under CI.
func IsCI() bool { return GetEnvironment() == CI }

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration. Empty disables service-token auth.
	JWTSecret string

	// Engine configuration
	DataDir        string
	EmbedderURL    string
	SearchCacheTTL time.Duration

	// CORS configuration
	AllowedOrigins []string
}

// LoadConfig creates a new Config instance with values from environment
// variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// Development and test pick up a local .env when present
	if env == Development || env == Test {
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8000"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "mealmind"),
		DBName:    getEnv("DB_NAME", "mealmind"),
		DBSSLMode: getEnv("DB_SSL_MODE", "disable"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		RedisDB:   0,
		RedisURL:  os.Getenv("REDIS_URL"),

		DataDir:     getEnv("DATA_DIR", "data"),
		EmbedderURL: os.Getenv("EMBEDDER_URL"),
	}

	// Secrets come from Docker secrets in production, environment
	// variables everywhere else
	if env == Production {
		cfg.DBPassword = readSecret("db_password")
		cfg.RedisPassword = readSecret("redis_password")
		cfg.JWTSecret = readSecret("jwt_secret")
	} else {
		cfg.DBPassword = os.Getenv("DB_PASSWORD")
		cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}

	ttlSeconds, err := strconv.Atoi(getEnv("SEARCH_CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_CACHE_TTL_SECONDS: %w", err)
	}
	cfg.SearchCacheTTL = time.Duration(ttlSeconds) * time.Second

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
