package config

import "fmt"

// ValidateConfig performs validation on the complete configuration.
func ValidateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateBankConfig(&config.Bank); err != nil {
		return fmt.Errorf("bank config validation failed: %w", err)
	}
	if err := validateRateLimitConfig(&config.RateLimit); err != nil {
		return fmt.Errorf("rate_limit config validation failed: %w", err)
	}
	return nil
}

func validateServerConfig(server *ServerConfig) error {
	if server.Port < 1 || server.Port > 65535 {
		return fmt.Errorf("port number must be between 1 and 65535, got %d", server.Port)
	}
	if server.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds cannot be negative, got %d", server.RequestTimeoutSeconds)
	}
	return nil
}

func validateBankConfig(bank *BankConfig) error {
	if bank.MaxInflight < 1 {
		return fmt.Errorf("max_inflight must be at least 1, got %d", bank.MaxInflight)
	}
	if bank.HistoryUsers < 1 {
		return fmt.Errorf("history_users must be at least 1, got %d", bank.HistoryUsers)
	}
	if bank.HistoryPerUser < 1 {
		return fmt.Errorf("history_per_user must be at least 1, got %d", bank.HistoryPerUser)
	}
	return nil
}

func validateRateLimitConfig(rl *RateLimitConfig) error {
	if !rl.Enabled {
		return nil
	}
	if rl.RPS <= 0 {
		return fmt.Errorf("rps must be positive when rate limiting is enabled, got %g", rl.RPS)
	}
	if rl.Burst < 1 {
		return fmt.Errorf("burst must be at least 1 when rate limiting is enabled, got %d", rl.Burst)
	}
	return nil
}
