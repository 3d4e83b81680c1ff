package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"

	ExhaustedFail = "fail"
	ExhaustedSkip = "skip"
)

// Config holds all application-level configuration
type Config struct {
	// Sources
	FlightAwareURL   string `yaml:"flightaware_url"`
	AirlineCodesURL  string `yaml:"airline_codes_url"`
	AirlineCodesFile string `yaml:"airline_codes_file"`

	// Fetching
	FetchMode         string `yaml:"fetch_mode"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
	RateLimitDelay    int    `yaml:"rate_limit_delay_ms"` // milliseconds between page loads
	MaxRetries        int    `yaml:"max_retries"`

	// Output
	CSVFilePath string `yaml:"csv_file_path"`
	DatabaseURL string `yaml:"database_url"`
	LogLevel    string `yaml:"log_level"`

	// Matching
	ExhaustedPolicy    string `yaml:"exhausted_policy"`
	TightConnectionMin int    `yaml:"tight_connection_min"`

	// Watch mode cron spec, seconds field first
	Schedule string `yaml:"schedule"`
}

func defaults() Config {
	return Config{
		FlightAwareURL:     "https://flightaware.com",
		AirlineCodesURL:    "https://en.wikipedia.org/wiki/List_of_airline_codes",
		AirlineCodesFile:   "data/airline_codes.json",
		FetchMode:          FetchModeHTTP,
		RequestTimeoutSec:  30,
		RateLimitDelay:     1000,
		MaxRetries:         3,
		LogLevel:           "info",
		ExhaustedPolicy:    ExhaustedFail,
		TightConnectionMin: 45,
		Schedule:           "0 0 6 * * *", // daily at 06:00
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables (a .env file is honoured). Environment
// variables win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	cfg.FlightAwareURL = getEnv("FLIGHTAWARE_URL", cfg.FlightAwareURL)
	cfg.AirlineCodesURL = getEnv("AIRLINE_CODES_URL", cfg.AirlineCodesURL)
	cfg.AirlineCodesFile = getEnv("AIRLINE_CODES_FILE", cfg.AirlineCodesFile)
	cfg.FetchMode = strings.ToLower(getEnv("FETCH_MODE", cfg.FetchMode))
	cfg.RequestTimeoutSec = getEnvInt("REQUEST_TIMEOUT_SEC", cfg.RequestTimeoutSec)
	cfg.RateLimitDelay = getEnvInt("RATE_LIMIT_DELAY_MS", cfg.RateLimitDelay)
	cfg.MaxRetries = getEnvInt("MAX_RETRIES", cfg.MaxRetries)
	cfg.CSVFilePath = getEnv("CSV_FILE_PATH", cfg.CSVFilePath)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ExhaustedPolicy = strings.ToLower(getEnv("EXHAUSTED_POLICY", cfg.ExhaustedPolicy))
	cfg.TightConnectionMin = getEnvInt("TIGHT_CONNECTION_MIN", cfg.TightConnectionMin)
	cfg.Schedule = getEnv("SCHEDULE", cfg.Schedule)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.FlightAwareURL == "" {
		return fmt.Errorf("FlightAware URL is required (set FLIGHTAWARE_URL or flightaware_url)")
	}
	if c.FetchMode != FetchModeHTTP && c.FetchMode != FetchModeBrowser {
		return fmt.Errorf("fetch mode must be %q or %q, got %q", FetchModeHTTP, FetchModeBrowser, c.FetchMode)
	}
	if c.ExhaustedPolicy != ExhaustedFail && c.ExhaustedPolicy != ExhaustedSkip {
		return fmt.Errorf("exhausted policy must be %q or %q, got %q", ExhaustedFail, ExhaustedSkip, c.ExhaustedPolicy)
	}
	if c.RequestTimeoutSec <= 0 {
		return fmt.Errorf("request timeout must be positive, got %d", c.RequestTimeoutSec)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
