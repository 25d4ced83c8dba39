// Package config loads and validates the devwatch configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration structure.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Logging       LoggingConfig       `yaml:"logging"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	ListenAddr  string   `yaml:"listen_addr"`
	APIKey      string   `yaml:"api_key"`      // empty = no auth
	CORSOrigins []string `yaml:"cors_origins"` // browser dashboard origins
	Demo        bool     `yaml:"demo"`         // read-only mode for demos
}

// StorageConfig contains document store settings.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig contains logging settings. With File set, output is
// rotated; otherwise logs go to stdout.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text or json
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"` // default 127.0.0.1:9090
	Path       string `yaml:"path"`        // default /metrics
}

// NotificationsConfig contains alert notification settings. URLs use
// shoutrrr syntax (discord://, slack://, telegram://, ...).
type NotificationsConfig struct {
	Enabled bool     `yaml:"enabled"`
	URLs    []string `yaml:"urls"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		Storage: StorageConfig{
			Path: "data/devwatch.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Metrics: MetricsConfig{
			ListenAddr: "127.0.0.1:9090",
			Path:       "/metrics",
		},
	}
}

// Load reads the configuration file at path, applying defaults for
// anything not set. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging.format: %q", c.Logging.Format)
	}
	if c.Notifications.Enabled && len(c.Notifications.URLs) == 0 {
		return fmt.Errorf("notifications.enabled requires at least one url")
	}
	return nil
}
