package game

import (
	"fmt"
	"math"
	"time"

	"github.com/verte-zerg/scripttyper/internal/achievements"
	"github.com/verte-zerg/scripttyper/internal/model"
	"github.com/verte-zerg/scripttyper/internal/scoring"
	"github.com/verte-zerg/scripttyper/internal/stats"
)

// StartOptions marks a run as an alarm run.
type StartOptions struct {
	Alarm        bool
	TimeLimitSec int
}

// Start begins a run on a random passage. Ordinary runs need paper.
func (e *Engine) Start(opts StartOptions) bool {
	return e.do(func(time.Time) bool {
		return e.start(opts)
	})
}

func (e *Engine) canStart(opts StartOptions) bool {
	if len(e.st.Texts) == 0 {
		return false
	}
	return opts.Alarm || e.st.Player.Paper > 0
}

func (e *Engine) start(opts StartOptions) bool {
	if !e.canStart(opts) {
		return false
	}
	text := e.st.Texts[e.rnd.Intn(len(e.st.Texts))]
	e.st.Run = model.RunState{
		Text:         &text,
		Status:       model.RunActive,
		Alarm:        opts.Alarm,
		TimeLimitSec: opts.TimeLimitSec,
	}
	return true
}

// Type records one typed character. The clock starts on the first keystroke
// and the character that completes the passage finishes the run.
func (e *Engine) Type(r rune) bool {
	return e.do(func(now time.Time) bool {
		run := e.st.Run
		if run.Status != model.RunActive || run.Text == nil {
			return false
		}
		target := run.Text.Runes()
		pos := len(run.Typed)
		if pos >= len(target) {
			return false
		}

		typed := make([]rune, pos+1)
		copy(typed, run.Typed)
		typed[pos] = r
		run.Typed = typed
		if run.StartedAt == nil {
			at := now
			run.StartedAt = &at
		}
		if r == target[pos] {
			run.Correct++
		} else {
			run.Wrong++
		}
		e.st.Run = run

		if len(typed) == len(target) {
			e.complete(now)
		}
		return true
	})
}

// Complete scores the active run and settles the player.
func (e *Engine) Complete() bool {
	return e.do(e.complete)
}

func (e *Engine) complete(now time.Time) bool {
	run := e.st.Run
	if run.Status != model.RunActive || run.Text == nil || run.StartedAt == nil {
		return false
	}
	length := len(run.Text.Runes())
	elapsedMs := now.Sub(*run.StartedAt).Milliseconds()
	accuracy := 1.0
	if run.Correct+run.Wrong > 0 {
		accuracy = float64(run.Correct) / float64(run.Correct+run.Wrong)
	}
	wpm, _, _ := stats.SessionMetrics(run.Correct, run.Wrong, elapsedMs)
	metrics := model.RunMetrics{
		StartedAt: *run.StartedAt,
		EndedAt:   now,
		ElapsedMs: elapsedMs,
		Correct:   run.Correct,
		Wrong:     run.Wrong,
		Accuracy:  accuracy,
		WPM:       wpm,
		Alarm:     run.Alarm,
	}
	score := scoring.Compute(length, metrics, e.st.Items, e.scoring)

	allWrong := run.Correct == 0 && run.Wrong >= length
	e.st.Comments = append(e.st.Comments, e.classify(run, length, elapsedMs, now)...)

	p := e.st.Player
	p.Chars += score.CharsAwarded
	p.LifetimeChars += score.CharsAwarded
	p.Skips++
	p.Paper = max(0, p.Paper-1)
	if allWrong && claim(&p.DriedBonusRedeemed) {
		p.Chars *= 2
	}
	e.st.Player = p
	e.st.LifetimeRuns++

	ach := achievements.Evaluate(achievements.Input{
		Player:       p,
		LastRun:      &achievements.RunStats{Correct: run.Correct, Wrong: run.Wrong, ElapsedMs: elapsedMs},
		LifetimeRuns: e.st.LifetimeRuns,
	}, e.st.Achievements, e.st.Items, now)
	e.st.Achievements = append(e.st.Achievements, ach.Unlocked...)
	e.st.Items = ach.ItemsUpdated

	e.appendLog(model.GameEvent{
		ID:      eventID("run", now),
		TS:      now,
		Message: fmt.Sprintf("Completed: +%d chars (acc %.0f%%, wpm %.0f)", score.CharsAwarded, accuracy*100, wpm),
	})
	e.appendLog(ach.Events...)

	ended := now
	run.Status = model.RunFinished
	run.EndedAt = &ended
	e.st.Run = run
	e.st.LastAward = &model.Award{Amount: score.CharsAwarded, TS: now}
	e.finished = append(e.finished, model.RunResult{
		TextID:       run.Text.ID,
		Metrics:      metrics,
		CharsAwarded: score.CharsAwarded,
		Breakdown:    score.Breakdown,
	})
	e.logger.Debug("run finished", "text", run.Text.ID, "award", score.CharsAwarded, "correct", run.Correct, "wrong", run.Wrong)

	if e.st.Player.Paper > 0 {
		e.start(StartOptions{})
	}
	e.checkAlarms(now)
	return true
}

func (e *Engine) classify(run model.RunState, length int, elapsedMs int64, now time.Time) []model.Comment {
	var out []model.Comment
	ms := now.UnixMilli()
	if run.Correct == 0 && run.Wrong >= length {
		out = append(out, model.Comment{ID: fmt.Sprintf("c:dried:%d", ms), Text: "You dried!", Tone: model.ToneNegative})
	}
	cps := float64(run.Correct) / math.Max(1, float64(elapsedMs)/1000)
	if cps >= e.rules.FastCharsPerSec && run.Wrong <= e.rules.FastMaxWrong {
		out = append(out, model.Comment{ID: fmt.Sprintf("c:speed:%d", ms), Text: "My name is speed!", Tone: model.TonePositive})
	}
	if run.Wrong == 0 {
		out = append(out, model.Comment{ID: fmt.Sprintf("c:flawless:%d", ms), Text: "Living the moment", Tone: model.TonePositive})
	}
	return out
}

// Skip abandons the active run and starts the next passage. It is refused
// while an alarm is pending and consumes a skip unless skips are unlimited.
func (e *Engine) Skip() bool {
	return e.do(func(time.Time) bool {
		if e.st.Alarm.Pending || !e.canStart(StartOptions{}) {
			return false
		}
		if !model.HasEffect(e.st.Items, model.EffectSkipUnlimited) {
			if e.st.Player.Skips <= 0 {
				return false
			}
			e.st.Player.Skips--
			e.dirty = true
		}
		return e.start(StartOptions{})
	})
}
