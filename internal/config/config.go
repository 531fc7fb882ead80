// Package config holds the runtime configuration for the outliner binaries,
// loaded from an optional YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the full outliner configuration.
type Config struct {
	// Listen is the HTTP server bind address.
	Listen string `yaml:"listen"`

	// MaxUploadMB bounds the size of uploaded PDFs.
	MaxUploadMB int `yaml:"max_upload_mb"`

	// MaxPages caps the number of pages analyzed per document.
	MaxPages int `yaml:"max_pages"`

	// TitlePages is the title search window from the front of the document.
	TitlePages int `yaml:"title_pages"`

	// Workers is the batch extraction concurrency.
	Workers int `yaml:"workers"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen:      ":8080",
		MaxUploadMB: 50,
		MaxPages:    50,
		TitlePages:  1,
		Workers:     4,
		LogLevel:    "info",
	}
}

// Load builds the configuration: defaults, then the YAML file at path when
// path is non-empty, then environment overrides. The environment always wins
// so containerized deployments can tune a baked-in config file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Listen = envOr("OUTLINER_LISTEN", cfg.Listen)
	cfg.MaxUploadMB = envInt("OUTLINER_MAX_UPLOAD_MB", cfg.MaxUploadMB)
	cfg.MaxPages = envInt("OUTLINER_MAX_PAGES", cfg.MaxPages)
	cfg.TitlePages = envInt("OUTLINER_TITLE_PAGES", cfg.TitlePages)
	cfg.Workers = envInt("OUTLINER_WORKERS", cfg.Workers)
	cfg.LogLevel = envOr("OUTLINER_LOG_LEVEL", cfg.LogLevel)

	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen is required")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be > 0")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max_pages must be >= 0")
	}
	if c.TitlePages <= 0 {
		return fmt.Errorf("title_pages must be > 0")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log_level %q (use debug, info, warn or error)", c.LogLevel)
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
