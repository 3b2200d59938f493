package config

import "github.com/spf13/viper"

// setDefaults sets all default values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.ip", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout_seconds", 30)

	// Bank defaults
	v.SetDefault("bank.max_inflight", 10)
	v.SetDefault("bank.history_users", 1024)
	v.SetDefault("bank.history_per_user", 256)

	// Rate limit defaults (disabled)
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 50)
	v.SetDefault("rate_limit.burst", 100)

	// Diagnostics
	v.SetDefault("debug_logfile", "")
}
