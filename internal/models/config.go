package models

import "time"

// Config represents the application configuration
type Config struct {
	Browser BrowserConfig `yaml:"browser"`

	Workers        int    `yaml:"workers"`
	DBPath         string `yaml:"db_path"`
	URLsFilePath   string `yaml:"urls_file"`
	OutputFilePath string `yaml:"output_file"`
	LogLevel       string `yaml:"log_level"`
}

// BrowserConfig controls the Chrome session used for extraction
type BrowserConfig struct {
	Headless          bool          `yaml:"headless"`
	UserAgent         string        `yaml:"user_agent"`
	ExecPath          string        `yaml:"exec_path"`
	SettleDelay       time.Duration `yaml:"settle_delay"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	LookupTimeout     time.Duration `yaml:"lookup_timeout"`
}
