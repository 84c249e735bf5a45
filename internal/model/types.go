// Package model defines shared data structures.
package model

import "time"

// Text is a passage the player types.
type Text struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Genre      string `json:"genre" yaml:"genre"`
	Body       string `json:"body" yaml:"body"`
	Difficulty *int   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// Runes returns the passage body as runes. Lengths and positions are rune based.
func (t Text) Runes() []rune {
	return []rune(t.Body)
}

// Inventory holds crafted goods.
type Inventory struct {
	Articles int `json:"articles"`
	Books    int `json:"books"`
}

// Prices holds base and current sale prices.
type Prices struct {
	ArticleBase int `json:"articleBase"`
	BookBase    int `json:"bookBase"`
	Article     int `json:"article"`
	Book        int `json:"book"`
}

// Player is the economic state of the save.
type Player struct {
	Chars              int       `json:"chars"`
	LifetimeChars      int       `json:"lifetimeChars"`
	Money              int       `json:"money"`
	Paper              int       `json:"paper"`
	Inventory          Inventory `json:"inventory"`
	Prices             Prices    `json:"prices"`
	Skips              int       `json:"skips"`
	WelcomeComplete    bool      `json:"welcomeComplete"`
	DriedBonusRedeemed bool      `json:"driedBonusRedeemed"`
}

// EffectType identifies what an owned item modifies.
type EffectType string

const (
	EffectCharsPct       EffectType = "chars_pct"
	EffectWrongPenalty   EffectType = "wrong_penalty_pct"
	EffectTimeBonusPct   EffectType = "time_bonus_pct"
	EffectArticleCostPct EffectType = "article_cost_pct"
	EffectPricePct       EffectType = "price_pct"
	EffectSkipUnlimited  EffectType = "skip_unlimited"
)

// Effect is the modifier granted by an item.
type Effect struct {
	Type  EffectType `json:"type"`
	Value float64    `json:"value,omitempty"`
}

// Cost is a price in either or both currencies.
type Cost struct {
	Chars int `json:"chars,omitempty"`
	Money int `json:"money,omitempty"`
}

// StoreItem is an upgrade in the store catalog.
type StoreItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Desc     string   `json:"desc"`
	Cost     Cost     `json:"cost"`
	Requires []string `json:"requires,omitempty"`
	Effect   Effect   `json:"effect"`
	Owned    bool     `json:"owned,omitempty"`
	Visible  bool     `json:"visible,omitempty"`
}

// EffectTotal sums effect values of owned items with the given type.
func EffectTotal(items []StoreItem, effect EffectType) float64 {
	total := 0.0
	for _, it := range items {
		if it.Owned && it.Effect.Type == effect {
			total += it.Effect.Value
		}
	}
	return total
}

// HasEffect reports whether any owned item carries the effect.
func HasEffect(items []StoreItem, effect EffectType) bool {
	for _, it := range items {
		if it.Owned && it.Effect.Type == effect {
			return true
		}
	}
	return false
}

// Achievement is locked while UnlockedAt is nil.
type Achievement struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Desc       string     `json:"desc,omitempty"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// Unlocked reports whether the achievement has an unlock time.
func (a Achievement) Unlocked() bool {
	return a.UnlockedAt != nil
}

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunIdle     RunStatus = "idle"
	RunActive   RunStatus = "active"
	RunFinished RunStatus = "finished"
)

// RunState is the in-progress or just-finished typing run.
type RunState struct {
	Text         *Text
	Typed        []rune
	Status       RunStatus
	StartedAt    *time.Time
	EndedAt      *time.Time
	Correct      int
	Wrong        int
	Alarm        bool
	TimeLimitSec int
}

// AlarmState tracks the two one-shot alarm runs.
type AlarmState struct {
	Pending         bool `json:"pending"`
	Countdown       int  `json:"countdown"`
	TriggeredFirst  bool `json:"triggeredFirst"`
	TriggeredSecond bool `json:"triggeredSecond"`
}

// GameEvent is a progression log entry.
type GameEvent struct {
	ID      string    `json:"id"`
	TS      time.Time `json:"ts"`
	Message string    `json:"message"`
}

// Tone colors a feedback comment.
type Tone string

const (
	ToneNegative Tone = "negative"
	TonePositive Tone = "positive"
	ToneInfo     Tone = "info"
)

// Comment is narrative feedback about a finished run.
type Comment struct {
	ID   string
	Text string
	Tone Tone
}

// Award is the amount granted by the last finished run.
type Award struct {
	Amount int
	TS     time.Time
}

// RunMetrics captures a completed run for scoring.
type RunMetrics struct {
	StartedAt time.Time
	EndedAt   time.Time
	ElapsedMs int64
	Correct   int
	Wrong     int
	Accuracy  float64
	WPM       float64
	Alarm     bool
}

// ScoreBreakdown explains an award.
type ScoreBreakdown struct {
	BaseGain  float64
	Penalty   float64
	TimeBonus int
	BonusPct  float64
}

// RunResult describes a finished run.
type RunResult struct {
	TextID       string
	Metrics      RunMetrics
	CharsAwarded int
	Breakdown    ScoreBreakdown
}

// RunRecord is a stored run for reporting.
type RunRecord struct {
	ID           int64
	TextID       string
	EndedAt      time.Time
	Correct      int
	Wrong        int
	DurationMs   int64
	CharsAwarded int
	Alarm        bool
}

// SaveGame is the persisted snapshot.
type SaveGame struct {
	Version      int           `json:"version"`
	Player       Player        `json:"player"`
	Items        []StoreItem   `json:"items"`
	Achievements []Achievement `json:"achievements"`
	Logs         []GameEvent   `json:"logs"`
	GameStartAt  *time.Time    `json:"gameStartAt,omitempty"`
	Alarm        *AlarmState   `json:"alarm,omitempty"`
	LifetimeRuns int           `json:"lifetimeRuns,omitempty"`
}
