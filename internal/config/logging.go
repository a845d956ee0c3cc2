package config

// LoggingConfig holds structured logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// FilePath is required when Output is "file".
	FilePath string `mapstructure:"file_path"`

	TradeLogPath   string `mapstructure:"trade_log_path"`
	CreditsLogPath string `mapstructure:"credits_log_path"`
}
