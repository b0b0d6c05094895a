package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP server settings
	ListenAddr string

	// Guide settings
	DefaultLanguage   string // preferred content language ("pt", "en", ...)
	FallbackLanguage  string // second travel-wiki language tried on a miss
	DefaultImageLimit int    // images per guide
	SearchLimit       int    // default typeahead result count

	// Upstream fetch settings
	RequestTimeout time.Duration
	UserAgent      string
	APIRateLimit   float64 // requests per second across all wiki endpoints

	// Cache settings
	GuideCacheTTL    time.Duration // guide-shaped payloads
	HeadlineCacheTTL time.Duration

	// Headlines settings
	FeedsConfigPath string
	MaxHeadlines    int

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		ListenAddr:        ":8080",
		DefaultLanguage:   "pt",
		FallbackLanguage:  "en",
		DefaultImageLimit: 6,
		SearchLimit:       10,
		RequestTimeout:    10 * time.Second,
		UserAgent:         "cityguided/1.0 (destination guide service)",
		APIRateLimit:      4.0,
		GuideCacheTTL:     7 * 24 * time.Hour,
		HeadlineCacheTTL:  time.Hour,
		FeedsConfigPath:   "configs/feeds.yaml",
		MaxHeadlines:      5,
	}

	// Load from environment
	cfg.ListenAddr = getEnvOrDefault("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DefaultLanguage = getEnvOrDefault("DEFAULT_LANGUAGE", cfg.DefaultLanguage)
	cfg.FallbackLanguage = getEnvOrDefault("FALLBACK_LANGUAGE", cfg.FallbackLanguage)
	cfg.UserAgent = getEnvOrDefault("USER_AGENT", cfg.UserAgent)
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)

	cfg.DefaultImageLimit = getEnvIntOrDefault("DEFAULT_IMAGE_LIMIT", cfg.DefaultImageLimit)
	cfg.SearchLimit = getEnvIntOrDefault("SEARCH_LIMIT", cfg.SearchLimit)
	cfg.MaxHeadlines = getEnvIntOrDefault("MAX_HEADLINES", cfg.MaxHeadlines)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("GUIDE_CACHE_TTL_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.GuideCacheTTL = time.Duration(val) * time.Hour
		}
	}
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 {
			cfg.APIRateLimit = val
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.DefaultLanguage == "" {
		return fmt.Errorf("DEFAULT_LANGUAGE must not be empty")
	}
	if c.FallbackLanguage == "" {
		return fmt.Errorf("FALLBACK_LANGUAGE must not be empty")
	}
	if c.DefaultImageLimit <= 0 {
		return fmt.Errorf("DEFAULT_IMAGE_LIMIT must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	return nil
}
