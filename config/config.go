// Package config loads application configuration from the environment,
// with .env support for local development.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the key-value store.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Storage       StorageConfig
	Database      DatabaseConfig
	Providers     ProvidersConfig
	Retention     RetentionConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// StorageConfig selects the key-value store backend
type StorageConfig struct {
	// Backend is either "memory" or "postgres"
	Backend string
}

// DatabaseConfig holds PostgreSQL database configuration.
// When ConnectionString (from DATABASE_URL) is set, it takes precedence over individual fields.
type DatabaseConfig struct {
	ConnectionString string // From DATABASE_URL when set
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// ProvidersConfig holds AI provider configurations. API keys here are
// fallbacks; the key stored in user settings wins.
type ProvidersConfig struct {
	Claude   ProviderConfig
	DeepSeek ProviderConfig
	OpenAI   ProviderConfig
}

// ProviderConfig holds one AI provider's configuration
type ProviderConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// RetentionConfig bounds the stored feedback collections
type RetentionConfig struct {
	MaxApprovedCases  int
	MaxRejectedCases  int
	CleanupMaxAgeDays int
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or text
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "127.0.0.1"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:*"}),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", StorageMemory),
		},
		Database: loadDatabaseConfig(),
		Providers: ProvidersConfig{
			Claude: ProviderConfig{
				APIKey:     getEnv("CLAUDE_API_KEY", ""),
				BaseURL:    getEnv("CLAUDE_BASE_URL", ""),
				Model:      getEnv("CLAUDE_MODEL", ""),
				Timeout:    getEnvAsDuration("CLAUDE_TIMEOUT", 30*time.Second),
				MaxRetries: getEnvAsInt("CLAUDE_MAX_RETRIES", 2),
				RetryDelay: getEnvAsDuration("CLAUDE_RETRY_DELAY", time.Second),
			},
			DeepSeek: ProviderConfig{
				APIKey:     getEnv("DEEPSEEK_API_KEY", ""),
				BaseURL:    getEnv("DEEPSEEK_BASE_URL", ""),
				Model:      getEnv("DEEPSEEK_MODEL", ""),
				Timeout:    getEnvAsDuration("DEEPSEEK_TIMEOUT", 30*time.Second),
				MaxRetries: getEnvAsInt("DEEPSEEK_MAX_RETRIES", 2),
				RetryDelay: getEnvAsDuration("DEEPSEEK_RETRY_DELAY", time.Second),
			},
			OpenAI: ProviderConfig{
				APIKey:     getEnv("OPENAI_API_KEY", ""),
				BaseURL:    getEnv("OPENAI_BASE_URL", ""),
				Model:      getEnv("OPENAI_MODEL", ""),
				Timeout:    getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
				MaxRetries: getEnvAsInt("OPENAI_MAX_RETRIES", 2),
				RetryDelay: getEnvAsDuration("OPENAI_RETRY_DELAY", time.Second),
			},
		},
		Retention: RetentionConfig{
			MaxApprovedCases:  getEnvAsInt("MAX_APPROVED_CASES", 100),
			MaxRejectedCases:  getEnvAsInt("MAX_REJECTED_CASES", 50),
			CleanupMaxAgeDays: getEnvAsInt("CLEANUP_MAX_AGE_DAYS", 30),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unsupported storage backend: %q", c.Storage.Backend)
	}

	if c.Storage.Backend == StoragePostgres {
		if c.Database.ConnectionString == "" && c.Database.Host == "" {
			return fmt.Errorf("database configuration required: set DATABASE_URL or DB_HOST")
		}
		if c.Database.ConnectionString == "" {
			if c.Database.User == "" {
				return fmt.Errorf("database user is required")
			}
			if c.Database.Database == "" {
				return fmt.Errorf("database name is required")
			}
		}
	}

	if c.Retention.MaxApprovedCases <= 0 || c.Retention.MaxRejectedCases <= 0 {
		return fmt.Errorf("retention limits must be positive")
	}
	if c.Retention.CleanupMaxAgeDays <= 0 {
		return fmt.Errorf("cleanup max age must be positive")
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// DSN returns the PostgreSQL connection string.
// Uses ConnectionString (from DATABASE_URL) when set; otherwise builds from individual fields.
func (c *DatabaseConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// LogString returns a safe string for logging (no password). Parses ConnectionString when set.
func (c *DatabaseConfig) LogString() string {
	if c.ConnectionString != "" {
		u, err := url.Parse(c.ConnectionString)
		if err == nil {
			host := u.Hostname()
			port := u.Port()
			if port == "" {
				port = "5432"
			}
			db := strings.TrimPrefix(u.Path, "/")
			return fmt.Sprintf("host=%s port=%s database=%s", host, port, db)
		}
		return "host=<from DATABASE_URL>"
	}
	return fmt.Sprintf("host=%s port=%d database=%s", c.Host, c.Port, c.Database)
}

// loadDatabaseConfig loads database config from DATABASE_URL or DB_* env vars
func loadDatabaseConfig() DatabaseConfig {
	dbURL := getEnv("DATABASE_URL", "")
	if dbURL != "" {
		return DatabaseConfig{
			ConnectionString: dbURL,
			MaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:  getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		}
	}
	return DatabaseConfig{
		Host:            getEnv("DB_HOST", ""),
		Port:            getEnvAsInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", ""),
		Password:        getEnv("DB_PASSWORD", ""),
		Database:        getEnv("DB_NAME", ""),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8090)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8090
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
