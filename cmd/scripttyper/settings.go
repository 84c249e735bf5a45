package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/scripttyper/internal/config"
	"github.com/verte-zerg/scripttyper/internal/game"
	"github.com/verte-zerg/scripttyper/internal/scoring"
)

const defaultLogLevel = "info"

var (
	flagDB           string
	flagTexts        string
	flagLogLevel     string
	flagBasePerChar  float64
	flagWrongPenalty float64
	flagTimeScale    float64
)

// settings is the resolved configuration: flags over environment over the
// config file over defaults.
type settings struct {
	DBPath      string
	TextsSource string
	LogLevel    string
	LogFile     string
	Scoring     scoring.Config
	Timers      game.SchedulerConfig
}

func addSettingsFlags(cmd *cobra.Command) {
	def := scoring.DefaultConfig()
	cmd.PersistentFlags().StringVar(&flagDB, "db", config.DefaultDBPath(), "SQLite database path")
	cmd.Flags().StringVar(&flagTexts, "texts", "", "texts source: .json/.yaml file or http(s) URL (default: built-in corpus)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().Float64Var(&flagBasePerChar, "base-per-char", def.BasePerChar, "chars earned per correct character")
	cmd.Flags().Float64Var(&flagWrongPenalty, "wrong-penalty", def.WrongPenalty, "chars lost per wrong character")
	cmd.Flags().Float64Var(&flagTimeScale, "time-scale", def.TimeScale, "time bonus per second under target")
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return settings{}, err
	}

	applyStringConfig(cmd, "texts", &flagTexts, fileCfg.Texts.Source)
	applyStringConfig(cmd, "log-level", &flagLogLevel, fileCfg.Log.Level)
	applyFloatConfig(cmd, "base-per-char", &flagBasePerChar, fileCfg.Scoring.BasePerChar)
	applyFloatConfig(cmd, "wrong-penalty", &flagWrongPenalty, fileCfg.Scoring.WrongPenalty)
	applyFloatConfig(cmd, "time-scale", &flagTimeScale, fileCfg.Scoring.TimeScale)

	applyEnvConfig(cmd, "db", &flagDB, envCfg.DBPath)
	applyEnvConfig(cmd, "texts", &flagTexts, envCfg.Texts)
	applyEnvConfig(cmd, "log-level", &flagLogLevel, envCfg.LogLevel)

	s := settings{
		DBPath:      flagDB,
		TextsSource: flagTexts,
		LogLevel:    flagLogLevel,
		LogFile:     config.Or(envCfg.LogFile, config.DefaultLogPath()),
		Scoring: scoring.Config{
			BasePerChar:  flagBasePerChar,
			WrongPenalty: flagWrongPenalty,
			TimeScale:    flagTimeScale,
		},
		Timers: game.DefaultSchedulerConfig(),
	}
	applyDurationConfig(&s.Timers.AlarmCheck, fileCfg.Timers.AlarmCheck)
	applyDurationConfig(&s.Timers.DeadlinePoll, fileCfg.Timers.DeadlinePoll)

	if err := validateSettings(s); err != nil {
		return settings{}, err
	}
	return s, nil
}

func validateSettings(s settings) error {
	if s.DBPath == "" {
		return fmt.Errorf("--db must not be empty")
	}
	if s.Scoring.BasePerChar < 0 {
		return fmt.Errorf("--base-per-char must be >= 0")
	}
	if s.Scoring.WrongPenalty < 0 {
		return fmt.Errorf("--wrong-penalty must be >= 0")
	}
	if s.Scoring.TimeScale < 0 {
		return fmt.Errorf("--time-scale must be >= 0")
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyEnvConfig(cmd *cobra.Command, name string, target *string, value string) {
	if value == "" {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = value
}

func applyDurationConfig(target *time.Duration, value *config.Duration) {
	if value == nil {
		return
	}
	*target = value.Duration
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
