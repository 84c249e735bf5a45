package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds overrides read from the environment. Empty fields are unset.
type EnvConfig struct {
	DBPath   string `env:"SCRIPTTYPER_DB"`
	Texts    string `env:"SCRIPTTYPER_TEXTS"`
	LogLevel string `env:"SCRIPTTYPER_LOG_LEVEL"`
	LogFile  string `env:"SCRIPTTYPER_LOG_FILE"`
}

// LoadEnv parses the SCRIPTTYPER_* variables.
func LoadEnv() (EnvConfig, error) {
	cfg, err := env.ParseAs[EnvConfig]()
	if err != nil {
		return EnvConfig{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// Or returns override when set, otherwise fallback.
func Or(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
