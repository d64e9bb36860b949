package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Cache backend
	Redis RedisConfig

	// External sources
	Wikipedia WikipediaConfig
	Yahoo     YahooConfig

	// Cache TTLs
	Cache CacheConfig

	// Pipeline parameter bounds and defaults
	Pipeline PipelineConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds the optional Redis cache backend configuration.
// When disabled, the in-memory backend is used instead.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// WikipediaConfig holds the constituent source configuration
type WikipediaConfig struct {
	BaseURL          string
	ConstituentsPage string
}

// YahooConfig holds the financial facts provider configuration
type YahooConfig struct {
	BaseURL           string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// CacheConfig holds the TTLs for the two cached fetches.
// Constituents change rarely; financial facts drift intraday.
type CacheConfig struct {
	ConstituentsTTL time.Duration
	FactsTTL        time.Duration
}

// PipelineConfig holds the user-tunable parameter bounds and their defaults.
// The bounds mirror the dashboard sliders: lookback 2-5 years, minimum
// required growth 5-50 percent.
type PipelineConfig struct {
	DefaultYears     int
	MinYears         int
	MaxYears         int
	DefaultMinGrowth float64 // percent
	MinGrowthFloor   float64 // percent
	MinGrowthCeil    float64 // percent
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// External sources
		Wikipedia: WikipediaConfig{
			BaseURL:          getEnv("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org"),
			ConstituentsPage: getEnv("WIKIPEDIA_CONSTITUENTS_PAGE", "/wiki/List_of_S%26P_500_companies"),
		},
		Yahoo: YahooConfig{
			BaseURL:           getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			RequestsPerSecond: getEnvAsFloat("YAHOO_REQUESTS_PER_SECOND", 4.0),
			Burst:             getEnvAsInt("YAHOO_BURST", 4),
			Timeout:           getEnvAsDuration("YAHOO_TIMEOUT", "15s"),
		},

		// Cache TTLs
		Cache: CacheConfig{
			ConstituentsTTL: getEnvAsDuration("CACHE_CONSTITUENTS_TTL", "24h"),
			FactsTTL:        getEnvAsDuration("CACHE_FACTS_TTL", "1h"),
		},

		// Pipeline
		Pipeline: PipelineConfig{
			DefaultYears:     getEnvAsInt("PIPELINE_DEFAULT_YEARS", 3),
			MinYears:         getEnvAsInt("PIPELINE_MIN_YEARS", 2),
			MaxYears:         getEnvAsInt("PIPELINE_MAX_YEARS", 5),
			DefaultMinGrowth: getEnvAsFloat("PIPELINE_DEFAULT_MIN_GROWTH", 20),
			MinGrowthFloor:   getEnvAsFloat("PIPELINE_MIN_GROWTH_FLOOR", 5),
			MinGrowthCeil:    getEnvAsFloat("PIPELINE_MIN_GROWTH_CEIL", 50),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are consistent
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Pipeline.MinYears < 1 {
		return fmt.Errorf("PIPELINE_MIN_YEARS must be at least 1")
	}
	if c.Pipeline.MaxYears < c.Pipeline.MinYears {
		return fmt.Errorf("PIPELINE_MAX_YEARS must be >= PIPELINE_MIN_YEARS")
	}
	if c.Pipeline.MinGrowthCeil < c.Pipeline.MinGrowthFloor {
		return fmt.Errorf("PIPELINE_MIN_GROWTH_CEIL must be >= PIPELINE_MIN_GROWTH_FLOOR")
	}

	if c.Yahoo.RequestsPerSecond <= 0 {
		return fmt.Errorf("YAHOO_REQUESTS_PER_SECOND must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
