package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development", "staging" or "production"
	ServiceName string          `toml:"service_name"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Auth        AuthConfig      `toml:"auth"`
	API         APIConfig       `toml:"api"`
	Ingest      IngestConfig    `toml:"ingest"`
	Retention   RetentionConfig `toml:"retention"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// AuthConfig holds the API key to client mapping.
// Keys maps an opaque API key to the client identifier it authenticates.
// The map is loaded once at startup and treated as read-only for the
// process lifetime.
type AuthConfig struct {
	HeaderName string            `toml:"header_name"` // Request header carrying the API key
	Keys       map[string]string `toml:"keys"`        // api_key -> client_id
}

// APIConfig holds query boundary limits
type APIConfig struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
	MaxBatchSize    int `toml:"max_batch_size"` // Max records per batch ingest request
	MaxMetricsDays  int `toml:"max_metrics_days"`
}

// IngestConfig holds per-client ingestion rate limiting settings
type IngestConfig struct {
	RateLimit float64 `toml:"rate_limit"` // Requests per second per client (0 = unlimited)
	RateBurst int     `toml:"rate_burst"` // Burst allowance per client
}

// RetentionConfig controls the scheduled retention sweep
type RetentionConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format (with seconds field)
	MaxAge   string `toml:"max_age"`  // Duration string, e.g. "2160h" for 90 days
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings should be exposed in chronicle.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		ServiceName: "chronicle",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Auth: AuthConfig{
			HeaderName: "X-API-Key",
			Keys:       map[string]string{},
		},
		API: APIConfig{
			DefaultPageSize: 50,
			MaxPageSize:     100,
			MaxBatchSize:    100,
			MaxMetricsDays:  90,
		},
		Ingest: IngestConfig{
			RateLimit: 0, // Unlimited unless configured
			RateBurst: 50,
		},
		Retention: RetentionConfig{
			Enabled:  false, // Operator must explicitly opt-in
			Schedule: "0 0 3 * * *",
			MaxAge:   "2160h", // 90 days
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env -> CLI. Later files override
// earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: CHRONICLE_ENV, fallback: GO_ENV)
	if env := os.Getenv("CHRONICLE_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("CHRONICLE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CHRONICLE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("CHRONICLE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("CHRONICLE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("CHRONICLE_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			trimmed := strings.TrimSpace(o)
			if trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Auth configuration
	if header := os.Getenv("CHRONICLE_AUTH_HEADER"); header != "" {
		config.Auth.HeaderName = header
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
