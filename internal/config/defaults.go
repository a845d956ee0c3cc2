package config

import "time"

// SetDefaults fills in any zero-valued field left unset by env vars or the
// config file.
func SetDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.spacetraders.io/v2"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.RateLimit.PerSecond == 0 {
		cfg.API.RateLimit.PerSecond = 2
	}
	if cfg.API.RateLimit.PerMinute == 0 {
		cfg.API.RateLimit.PerMinute = 30
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "fleetctl.db"
	}
	if cfg.Database.RetentionDays == 0 {
		cfg.Database.RetentionDays = 2
	}

	if cfg.Dispatch.MinSellPrice == 0 {
		cfg.Dispatch.MinSellPrice = 10
	}
	if cfg.Dispatch.LoopSleepMax == 0 {
		cfg.Dispatch.LoopSleepMax = 500 * time.Millisecond
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.TradeLogPath == "" {
		cfg.Logging.TradeLogPath = "logs/trades.log"
	}
	if cfg.Logging.CreditsLogPath == "" {
		cfg.Logging.CreditsLogPath = "logs/credits.log"
	}

	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
