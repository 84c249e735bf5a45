// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Scoring ScoringConfig `toml:"scoring"`
	Texts   TextsConfig   `toml:"texts"`
	Timers  TimersConfig  `toml:"timers"`
	Log     LogConfig     `toml:"log"`
}

// ScoringConfig maps award tuning.
type ScoringConfig struct {
	BasePerChar  *float64 `toml:"base-per-char"`
	WrongPenalty *float64 `toml:"wrong-penalty"`
	TimeScale    *float64 `toml:"time-scale"`
}

// TextsConfig maps the corpus source.
type TextsConfig struct {
	Source *string `toml:"source"`
}

// TimersConfig maps scheduler cadences.
type TimersConfig struct {
	AlarmCheck   *Duration `toml:"alarm-check"`
	DeadlinePoll *Duration `toml:"deadline-poll"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// Duration is a time.Duration written as "5s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("duration must be positive: %s", text)
	}
	d.Duration = v
	return nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
