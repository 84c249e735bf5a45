// Package scoring computes the chars awarded for a finished run.
package scoring

import (
	"math"

	"github.com/verte-zerg/scripttyper/internal/model"
)

// Config tunes the award formula.
type Config struct {
	BasePerChar  float64
	WrongPenalty float64
	TimeScale    float64
}

// DefaultConfig returns the standard award tuning.
func DefaultConfig() Config {
	return Config{
		BasePerChar:  1,
		WrongPenalty: 0.5,
		TimeScale:    0.25,
	}
}

// Result is an award with its breakdown.
type Result struct {
	CharsAwarded int
	Breakdown    model.ScoreBreakdown
}

// TargetTimeSec is the expected time for a passage at 240 chars per minute.
func TargetTimeSec(length int) float64 {
	return float64(length) / 4
}

// Compute scores a finished run. Only owned items contribute.
func Compute(length int, metrics model.RunMetrics, items []model.StoreItem, cfg Config) Result {
	correct := float64(metrics.Correct)
	baseGain := cfg.BasePerChar * correct

	penaltyPct := model.EffectTotal(items, model.EffectWrongPenalty)
	effectivePenalty := math.Max(0, cfg.WrongPenalty*(1-penaltyPct))
	penalty := effectivePenalty * float64(metrics.Wrong)

	elapsedSec := math.Max(1, float64(metrics.ElapsedMs)/1000)
	baseTimeBonus := cfg.TimeScale * (TargetTimeSec(length) / elapsedSec) * correct
	timeBonus := baseTimeBonus * (1 + model.EffectTotal(items, model.EffectTimeBonusPct))

	charsPct := model.EffectTotal(items, model.EffectCharsPct)

	raw := (baseGain-penalty)*(1+charsPct) + timeBonus
	awarded := int(math.Floor(raw))
	if awarded < 0 {
		awarded = 0
	}
	return Result{
		CharsAwarded: awarded,
		Breakdown: model.ScoreBreakdown{
			BaseGain:  baseGain,
			Penalty:   penalty,
			TimeBonus: int(math.Floor(timeBonus)),
			BonusPct:  charsPct,
		},
	}
}
