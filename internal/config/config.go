package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"linkedin-extractor/internal/models"
)

// DefaultUserAgent is the desktop Chrome user agent presented to the site
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// DefaultConfig returns the default configuration for the extractor
func DefaultConfig() models.Config {
	return models.Config{
		Browser: models.BrowserConfig{
			Headless:          true,
			UserAgent:         DefaultUserAgent,
			SettleDelay:       5 * time.Second,
			NavigationTimeout: 30 * time.Second,
			LookupTimeout:     3 * time.Second,
		},
		Workers:        1,
		DBPath:         "extractor.db",
		URLsFilePath:   "urls.txt",
		OutputFilePath: "profiles.jsonl",
		LogLevel:       "info",
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current value.
func LoadFile(path string, cfg *models.Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return Validate(*cfg)
}

// ApplyEnv applies EXTRACTOR_* environment overrides onto cfg
func ApplyEnv(cfg *models.Config) {
	cfg.Browser.Headless = envBoolOr("EXTRACTOR_HEADLESS", cfg.Browser.Headless)
	cfg.Browser.UserAgent = envOr("EXTRACTOR_USER_AGENT", cfg.Browser.UserAgent)
	cfg.Browser.ExecPath = envOr("CHROME_PATH", cfg.Browser.ExecPath)
	cfg.Browser.SettleDelay = envDurationOr("EXTRACTOR_SETTLE_DELAY", cfg.Browser.SettleDelay)
	cfg.Browser.NavigationTimeout = envDurationOr("EXTRACTOR_NAV_TIMEOUT", cfg.Browser.NavigationTimeout)
	cfg.Browser.LookupTimeout = envDurationOr("EXTRACTOR_LOOKUP_TIMEOUT", cfg.Browser.LookupTimeout)
	cfg.Workers = envIntOr("EXTRACTOR_WORKERS", cfg.Workers)
	cfg.DBPath = envOr("EXTRACTOR_DB", cfg.DBPath)
	cfg.URLsFilePath = envOr("EXTRACTOR_URLS_FILE", cfg.URLsFilePath)
	cfg.OutputFilePath = envOr("EXTRACTOR_OUTPUT", cfg.OutputFilePath)
	cfg.LogLevel = envOr("EXTRACTOR_LOG_LEVEL", cfg.LogLevel)
}

// Validate rejects values the extractor cannot run with
func Validate(cfg models.Config) error {
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", cfg.Workers)
	}
	if cfg.Browser.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must not be negative")
	}
	if cfg.Browser.NavigationTimeout <= 0 || cfg.Browser.LookupTimeout <= 0 {
		return fmt.Errorf("navigation_timeout and lookup_timeout must be positive")
	}
	return nil
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
