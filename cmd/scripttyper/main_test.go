package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/scripttyper/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, name := range []string{"SCRIPTTYPER_DB", "SCRIPTTYPER_TEXTS", "SCRIPTTYPER_LOG_LEVEL", "SCRIPTTYPER_LOG_FILE"} {
		t.Setenv(name, "")
	}
	return dir
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	isolate(t)
	writeConfig(t, defaultConfigTemplate())
	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		t.Fatalf("expected template to decode, got %v", err)
	}
	if cfg.Scoring.BasePerChar != nil {
		t.Fatalf("expected commented template to leave values unset")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	isolate(t)
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.DBPath != config.DefaultDBPath() || s.TextsSource != "" || s.LogLevel != defaultLogLevel {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.Scoring.BasePerChar != 1 || s.Timers.AlarmCheck != 5*time.Second {
		t.Fatalf("unexpected default tuning: %+v", s)
	}
}

func TestLoadSettingsPrecedence(t *testing.T) {
	isolate(t)
	writeConfig(t, `
[scoring]
base-per-char = 2.0
wrong-penalty = 1.0

[texts]
source = "/from/file.json"

[timers]
alarm-check = "1s"

[log]
level = "warn"
`)
	t.Setenv("SCRIPTTYPER_TEXTS", "/from/env.yaml")
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--base-per-char", "3", "--log-level", "debug"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.Scoring.BasePerChar != 3 {
		t.Fatalf("expected flag to win, got %v", s.Scoring.BasePerChar)
	}
	if s.Scoring.WrongPenalty != 1 {
		t.Fatalf("expected file value, got %v", s.Scoring.WrongPenalty)
	}
	if s.TextsSource != "/from/env.yaml" {
		t.Fatalf("expected env to override file, got %s", s.TextsSource)
	}
	if s.LogLevel != "debug" {
		t.Fatalf("expected flag log level, got %s", s.LogLevel)
	}
	if s.Timers.AlarmCheck != time.Second {
		t.Fatalf("expected alarm-check 1s, got %v", s.Timers.AlarmCheck)
	}
}

func TestLoadSettingsRejectsBadLevel(t *testing.T) {
	isolate(t)
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--log-level", "loud"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadSettings(cmd); err == nil {
		t.Fatalf("expected invalid log level error")
	}
}

func TestOpenFileLoggerCreatesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "logs", "scripttyper.log")
	logger, closeLog, err := openFileLogger(path, "info")
	if err != nil {
		t.Fatalf("open logger: %v", err)
	}
	logger.Info("hello")
	closeLog()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected log output")
	}
}
