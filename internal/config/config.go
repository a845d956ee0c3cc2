// Package config loads fleetctl's layered configuration: environment
// variables override a YAML file, which overrides built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration struct.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Dispatch  DispatchConfig  `mapstructure:"dispatch"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// LoadConfig loads configuration with priority env > config file > defaults.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/fleetctl")
	}

	v.SetEnvPrefix("FLEETCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api.token", "FLEETCTL_API_TOKEN", "AGENT_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoadConfig loads configuration and panics on error, for use in main.go.
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
