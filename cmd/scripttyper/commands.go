package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/scripttyper/internal/config"
	"github.com/verte-zerg/scripttyper/internal/scoring"
	"github.com/verte-zerg/scripttyper/internal/stats"
	"github.com/verte-zerg/scripttyper/internal/store"
	"github.com/verte-zerg/scripttyper/internal/texts"
)

const defaultCurveWindow = 5

var (
	statsLast        int
	statsCurveWindow int
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show run history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	st, err := store.Open(s.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, statsLast)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	if err := report.Render(cmd.OutOrStdout(), statsCurveWindow, 0); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newTextsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "texts",
		Short: "List the loaded passages",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), s.LogLevel)
	if err != nil {
		return err
	}
	list, err := texts.FromSource(s.TextsSource).Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load texts: %w", err)
	}
	logger.Debug("texts loaded", "source", s.TextsSource, "count", len(list))
	out := cmd.OutOrStdout()
	for _, t := range list {
		if _, err := fmt.Fprintf(out, "%-14s %-10s %4d  %s\n", t.ID, t.Genre, len(t.Runes()), t.Title); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func defaultConfigTemplate() string {
	def := scoring.DefaultConfig()
	return fmt.Sprintf(`# scripttyper configuration
# Uncomment a value to enable it. Environment variables and CLI flags
# override config values.

[scoring]
# base-per-char = %.2f    # Chars earned per correct character
# wrong-penalty = %.2f    # Chars lost per wrong character
# time-scale = %.2f       # Time bonus per second under target

[texts]
# source = ""              # .json/.yaml file or http(s) URL; empty uses the built-in corpus

[timers]
# alarm-check = "5s"       # How often alarm thresholds are checked
# deadline-poll = "200ms"  # How often an alarm run without a deadline is rechecked

[log]
# level = %q           # debug, info, warn, error
`,
		def.BasePerChar,
		def.WrongPenalty,
		def.TimeScale,
		defaultLogLevel,
	)
}
