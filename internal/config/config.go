// Package config loads the daemon configuration from a TOML file with
// viper, layering defaults, the file, and BANKD_ environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config represents the complete bankd configuration.
type Config struct {
	// [server] section
	Server ServerConfig `toml:"server" mapstructure:"server"`

	// [bank] section
	Bank BankConfig `toml:"bank" mapstructure:"bank"`

	// [rate_limit] section
	RateLimit RateLimitConfig `toml:"rate_limit" mapstructure:"rate_limit"`

	// Diagnostics
	DebugLogfile string `toml:"debug_logfile" mapstructure:"debug_logfile"`

	// Internal fields for configuration management
	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig holds the listen address and request handling limits.
type ServerConfig struct {
	IP                    string `toml:"ip" mapstructure:"ip"`
	Port                  int    `toml:"port" mapstructure:"port"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`
}

// BankConfig holds the bank's capacity settings.
type BankConfig struct {
	// MaxInflight caps concurrently admitted operations per user.
	MaxInflight int64 `toml:"max_inflight" mapstructure:"max_inflight"`

	// HistoryUsers bounds how many users the journal remembers;
	// HistoryPerUser bounds entries kept per user.
	HistoryUsers   int `toml:"history_users" mapstructure:"history_users"`
	HistoryPerUser int `toml:"history_per_user" mapstructure:"history_per_user"`
}

// RateLimitConfig holds the per-client request throttle settings.
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" mapstructure:"enabled"`
	RPS     float64 `toml:"rps" mapstructure:"rps"`
	Burst   int     `toml:"burst" mapstructure:"burst"`
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return "bankd.toml"
}

// ConfigPathFromDir returns the configuration path for a specific directory.
func ConfigPathFromDir(configDir string) string {
	return filepath.Join(configDir, "bankd.toml")
}

// GetConfigPath returns the path the configuration was loaded from,
// empty when built-in defaults were used.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// GetBindAddress returns the server's listen address as host:port.
func (c *ServerConfig) GetBindAddress() string {
	return fmt.Sprintf("%s:%d", c.IP, c.Port)
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
