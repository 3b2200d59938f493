package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (bankd.toml)
// 3. Environment variables (BANKD_ prefix)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults first
	setDefaults(v)

	// 2. Load configuration file
	if err := loadConfigFile(v, configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// 3. Set up environment variable support
	v.SetEnvPrefix("BANKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Unmarshal into struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = configPath

	// 5. Validate the complete configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// LoadDefaultConfig returns the built-in defaults without reading any
// file, still honoring BANKD_ environment variables.
func LoadDefaultConfig() (*Config, error) {
	return LoadConfig("")
}

// loadConfigFile reads the configuration file into v. An empty path or
// a missing file is not an error; the defaults stand.
func loadConfigFile(v *viper.Viper, configPath string) error {
	if configPath == "" {
		return nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	return nil
}

// SaveExampleConfig saves an example configuration file.
func SaveExampleConfig(configPath string) error {
	exampleConfig := generateExampleConfig()

	v := viper.New()
	for key, value := range exampleConfig {
		v.Set(key, value)
	}

	v.SetConfigFile(configPath)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write example config: %w", err)
	}
	return nil
}

// generateExampleConfig generates example configuration values.
func generateExampleConfig() map[string]interface{} {
	return map[string]interface{}{
		"server.ip":                      "127.0.0.1",
		"server.port":                    8080,
		"server.request_timeout_seconds": 30,

		"bank.max_inflight":     10,
		"bank.history_users":    1024,
		"bank.history_per_user": 256,

		"rate_limit.enabled": false,
		"rate_limit.rps":     50,
		"rate_limit.burst":   100,

		"debug_logfile": "/var/log/bankd/debug.log",
	}
}
