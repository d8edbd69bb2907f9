// Package main provides the workfolio server CLI.
package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Verbose  bool           `yaml:"-" env:"-"` // set via CLI flag
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address" env:"WORKFOLIO_HTTP_ADDRESS"` // HTTP listen address (default: :8080)
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"WORKFOLIO_DB_PATH"` // database file path (default: data/projects.db)
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"WORKFOLIO_METRICS_ENABLED"`
	Address string `yaml:"address" env:"WORKFOLIO_METRICS_ADDRESS"` // metrics listen address (default: :9090)
}

// LoadConfig loads configuration from a YAML file, then applies
// environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a configuration with defaults and environment
// overrides applied.
func DefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/projects.db"
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9090"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return fmt.Errorf("metrics.address is required when metrics are enabled")
	}
	return nil
}
