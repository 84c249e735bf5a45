// Package main provides the CLI entrypoint for scripttyper.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/scripttyper/internal/game"
	"github.com/verte-zerg/scripttyper/internal/save"
	"github.com/verte-zerg/scripttyper/internal/store"
	"github.com/verte-zerg/scripttyper/internal/texts"
	"github.com/verte-zerg/scripttyper/internal/tui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scripttyper",
		Short:         "Typing idle game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	addSettingsFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newTextsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openFileLogger(s.LogFile, s.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Open(s.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	saver := save.NewSaver(st, logger)
	recorder := save.NewRecorder(st, logger)
	engine := game.New(game.Options{
		Scoring: &s.Scoring,
		Saver:   saver,
		Logger:  logger,
	}, save.Load(ctx, st))
	engine.OnRunFinished(recorder.Record)

	program := tea.NewProgram(tui.NewModel(engine, nil), tea.WithAltScreen(), tea.WithContext(ctx))
	// Listeners can fire from inside Update, so Send must not block the loop.
	engine.OnChange(func() {
		go program.Send(tui.StateChangedMsg{})
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Start stays refused until the corpus lands.
		if err := engine.LoadTexts(gctx, texts.FromSource(s.TextsSource)); err != nil {
			logger.Warn("texts unavailable", "source", s.TextsSource, "err", err)
		}
		return nil
	})
	g.Go(func() error {
		return saver.Run(gctx)
	})
	g.Go(func() error {
		return recorder.Run(gctx)
	})
	g.Go(func() error {
		return game.NewScheduler(engine, s.Timers).Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	})
	err = g.Wait()
	saver.Flush()
	if err != nil {
		return err
	}
	logger.Info("session ended", "lifetimeChars", engine.Snapshot().Player.LifetimeChars)
	return nil
}
