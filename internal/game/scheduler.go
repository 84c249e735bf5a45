package game

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// SchedulerConfig sets timer cadences.
type SchedulerConfig struct {
	AlarmTick    time.Duration
	AlarmCheck   time.Duration
	DeadlinePoll time.Duration
}

// DefaultSchedulerConfig returns the standard cadences.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		AlarmTick:    time.Second,
		AlarmCheck:   5 * time.Second,
		DeadlinePoll: 200 * time.Millisecond,
	}
}

// Scheduler drives the timer-based engine transitions.
type Scheduler struct {
	engine *Engine
	cfg    SchedulerConfig
}

// NewScheduler returns a Scheduler for engine.
func NewScheduler(engine *Engine, cfg SchedulerConfig) *Scheduler {
	def := DefaultSchedulerConfig()
	if cfg.AlarmTick <= 0 {
		cfg.AlarmTick = def.AlarmTick
	}
	if cfg.AlarmCheck <= 0 {
		cfg.AlarmCheck = def.AlarmCheck
	}
	if cfg.DeadlinePoll <= 0 {
		cfg.DeadlinePoll = def.DeadlinePoll
	}
	return &Scheduler{engine: engine, cfg: cfg}
}

// Run blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return every(gctx, s.cfg.AlarmTick, func() { s.engine.TickAlarm() })
	})
	g.Go(func() error {
		return every(gctx, s.cfg.AlarmCheck, func() { s.engine.CheckAlarms() })
	})
	g.Go(func() error {
		return s.watchDeadline(gctx)
	})
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func every(ctx context.Context, interval time.Duration, fn func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn()
		}
	}
}

// watchDeadline arms a timer at the alarm run deadline. Without a deadline it
// rechecks after DeadlinePoll, since a run gains one on its first keystroke.
func (s *Scheduler) watchDeadline(ctx context.Context) error {
	timer := time.NewTimer(s.cfg.DeadlinePoll)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		s.engine.EnforceTimeLimit()

		wait := s.cfg.DeadlinePoll
		if deadline, ok := s.engine.RunDeadline(); ok {
			if d := time.Until(deadline); d < wait {
				wait = max(d, 0)
			}
		}
		timer.Reset(wait)
	}
}
