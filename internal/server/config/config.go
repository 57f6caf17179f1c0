// Package config handles configuration for the account backend, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the account backend.
//
// Fields:
//   - DatabaseDSN: sqlite file path, or a postgres:// DSN for the Postgres backend.
//   - QueryTimeout: upper bound applied to every store access.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	DatabaseDSN  string
	QueryTimeout time.Duration
	LogLevel     string
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "accounts.db"
	c.QueryTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
