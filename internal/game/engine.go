// Package game owns the authoritative game state and every transition on it.
//
// All actions run under a single mutex and either commit a complete new state
// or leave the state unchanged. Persistence and listener callbacks run after
// the mutex is released, so listeners may call back into the Engine.
package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/scripttyper/internal/clock"
	"github.com/verte-zerg/scripttyper/internal/model"
	"github.com/verte-zerg/scripttyper/internal/scoring"
)

// SaveVersion is the only snapshot version the engine produces.
const SaveVersion = 1

// Saver persists snapshots. Implementations must not block for long and
// must swallow their own failures.
type Saver interface {
	Save(model.SaveGame)
}

// TextSource loads the passage corpus.
type TextSource interface {
	Load(ctx context.Context) ([]model.Text, error)
}

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Clock   clock.Clock
	Rand    *rand.Rand
	Scoring *scoring.Config
	Rules   *Rules
	Saver   Saver
	Logger  *log.Logger
}

// State is the full game state. Snapshot returns deep copies of it.
type State struct {
	Texts        []model.Text
	Run          model.RunState
	Player       model.Player
	Items        []model.StoreItem
	Achievements []model.Achievement
	Logs         []model.GameEvent
	LifetimeRuns int
	GameStartAt  time.Time
	LastAward    *model.Award
	Alarm        model.AlarmState
	Comments     []model.Comment
}

// Engine is the single owner of game state.
type Engine struct {
	mu      sync.Mutex
	clk     clock.Clock
	rnd     *rand.Rand
	scoring scoring.Config
	rules   Rules
	saver   Saver
	logger  *log.Logger

	st State

	// dirty marks a change to persisted state within the current action.
	dirty    bool
	finished []model.RunResult

	// saveSeq orders snapshots taken under mu; persistMu drops stale ones.
	saveSeq      uint64
	persistMu    sync.Mutex
	persistedSeq uint64

	onFinish []func(model.RunResult)
	onChange []func()
}

// New builds an Engine from a saved snapshot, or from defaults when saved is nil.
func New(opts Options, saved *model.SaveGame) *Engine {
	e := &Engine{
		clk:     opts.Clock,
		rnd:     opts.Rand,
		scoring: scoring.DefaultConfig(),
		rules:   DefaultRules(),
		saver:   opts.Saver,
		logger:  opts.Logger,
	}
	if e.clk == nil {
		e.clk = clock.Real{}
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Scoring != nil {
		e.scoring = *opts.Scoring
	}
	if opts.Rules != nil {
		e.rules = *opts.Rules
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	e.st = State{
		Run:    model.RunState{Status: model.RunIdle},
		Player: DefaultPlayer(),
		Items:  DefaultItems(),
	}
	if saved != nil {
		e.restore(*saved)
	}
	if e.st.GameStartAt.IsZero() {
		e.st.GameStartAt = e.clk.Now()
		e.dirty = true
	}
	if e.dirty {
		e.dirty = false
		e.saveSeq++
		e.persist(e.saveSeq, e.saveGameLocked())
	}
	return e
}

func (e *Engine) restore(s model.SaveGame) {
	e.st.Player = s.Player
	e.st.Items = mergeCatalog(s.Items, DefaultItems())
	e.st.Achievements = slices.Clone(s.Achievements)
	e.st.Logs = slices.Clone(s.Logs)
	e.st.LifetimeRuns = s.LifetimeRuns
	if s.GameStartAt != nil {
		e.st.GameStartAt = *s.GameStartAt
	}
	if s.Alarm != nil {
		e.st.Alarm = *s.Alarm
	}
}

// mergeCatalog keeps saved items and appends catalog entries the save predates.
func mergeCatalog(saved, catalog []model.StoreItem) []model.StoreItem {
	if len(saved) == 0 {
		return catalog
	}
	out := slices.Clone(saved)
	for _, it := range catalog {
		if !slices.ContainsFunc(out, func(s model.StoreItem) bool { return s.ID == it.ID }) {
			out = append(out, it)
		}
	}
	return out
}

// OnRunFinished registers a callback for every finished run. Callbacks run
// outside the engine lock, before a later action can overwrite the run.
func (e *Engine) OnRunFinished(fn func(model.RunResult)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onFinish = append(e.onFinish, fn)
}

// OnChange registers a callback invoked after any action that changed state.
func (e *Engine) OnChange(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = append(e.onChange, fn)
}

// do runs one action under the lock, then persists and notifies.
func (e *Engine) do(action func(now time.Time) bool) bool {
	e.mu.Lock()
	changed := action(e.clk.Now())
	var snapshot *model.SaveGame
	var seq uint64
	if e.dirty {
		s := e.saveGameLocked()
		snapshot = &s
		e.dirty = false
		e.saveSeq++
		seq = e.saveSeq
	}
	finished := e.finished
	e.finished = nil
	onFinish := slices.Clone(e.onFinish)
	onChange := slices.Clone(e.onChange)
	e.mu.Unlock()

	if snapshot != nil {
		e.persist(seq, *snapshot)
	}
	for _, res := range finished {
		for _, fn := range onFinish {
			fn(res)
		}
	}
	if changed {
		for _, fn := range onChange {
			fn()
		}
	}
	return changed
}

// persist hands s to the saver unless a newer snapshot was already saved.
func (e *Engine) persist(seq uint64, s model.SaveGame) {
	if e.saver == nil {
		return
	}
	e.persistMu.Lock()
	defer e.persistMu.Unlock()
	if seq <= e.persistedSeq {
		return
	}
	e.persistedSeq = seq
	e.saver.Save(s)
}

func (e *Engine) saveGameLocked() model.SaveGame {
	start := e.st.GameStartAt
	alarm := e.st.Alarm
	return model.SaveGame{
		Version:      SaveVersion,
		Player:       e.st.Player,
		Items:        cloneItems(e.st.Items),
		Achievements: slices.Clone(e.st.Achievements),
		Logs:         slices.Clone(e.st.Logs),
		GameStartAt:  &start,
		Alarm:        &alarm,
		LifetimeRuns: e.st.LifetimeRuns,
	}
}

// Snapshot returns a deep copy of the committed state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.st
	s.Texts = slices.Clone(e.st.Texts)
	s.Run.Typed = slices.Clone(e.st.Run.Typed)
	if e.st.Run.Text != nil {
		text := *e.st.Run.Text
		s.Run.Text = &text
	}
	s.Items = cloneItems(e.st.Items)
	s.Achievements = slices.Clone(e.st.Achievements)
	s.Logs = slices.Clone(e.st.Logs)
	s.Comments = slices.Clone(e.st.Comments)
	if e.st.LastAward != nil {
		award := *e.st.LastAward
		s.LastAward = &award
	}
	return s
}

func cloneItems(items []model.StoreItem) []model.StoreItem {
	out := make([]model.StoreItem, len(items))
	for i, it := range items {
		it.Requires = slices.Clone(it.Requires)
		out[i] = it
	}
	return out
}

// LoadTexts loads the corpus once. A failure is recorded in the event log and
// leaves the corpus empty, so runs silently refuse to start.
func (e *Engine) LoadTexts(ctx context.Context, src TextSource) error {
	e.mu.Lock()
	loaded := len(e.st.Texts) > 0
	e.mu.Unlock()
	if loaded {
		return nil
	}

	texts, err := src.Load(ctx)
	e.do(func(now time.Time) bool {
		if len(e.st.Texts) > 0 {
			return false
		}
		if err != nil {
			e.appendLog(model.GameEvent{ID: "err:texts", TS: now, Message: "Failed to load texts"})
			return true
		}
		e.st.Texts = slices.Clone(texts)
		return len(texts) > 0
	})
	if err != nil {
		return fmt.Errorf("failed to load texts: %w", err)
	}
	e.logger.Debug("texts loaded", "count", len(texts))
	return nil
}

// CompleteWelcome latches the welcome gate.
func (e *Engine) CompleteWelcome() bool {
	return e.do(func(time.Time) bool {
		if !claim(&e.st.Player.WelcomeComplete) {
			return false
		}
		e.dirty = true
		return true
	})
}

// PopComment drops the oldest feedback comment.
func (e *Engine) PopComment() bool {
	return e.do(func(time.Time) bool {
		if len(e.st.Comments) == 0 {
			return false
		}
		e.st.Comments = slices.Clone(e.st.Comments[1:])
		return true
	})
}

// claim flips a one-shot latch. It reports whether this call set it.
func claim(latch *bool) bool {
	if *latch {
		return false
	}
	*latch = true
	return true
}

func (e *Engine) appendLog(events ...model.GameEvent) {
	if len(events) == 0 {
		return
	}
	e.st.Logs = append(slices.Clip(e.st.Logs), events...)
	e.dirty = true
}

func eventID(kind string, now time.Time) string {
	return fmt.Sprintf("%s:%d", kind, now.UnixMilli())
}
