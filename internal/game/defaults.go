package game

import (
	"time"

	"github.com/verte-zerg/scripttyper/internal/model"
)

// Rules holds the fixed economy and event tuning.
type Rules struct {
	ArticleBaseCost int
	BookCost        int
	PaperCost       int
	PaperPack       int

	AlarmCountdown     int
	AlarmTimeLimitSec  int
	FirstAlarmLifetime int
	SecondAlarmAfter   time.Duration

	FastCharsPerSec float64
	FastMaxWrong    int
}

// DefaultRules returns the standard tuning.
func DefaultRules() Rules {
	return Rules{
		ArticleBaseCost:    400,
		BookCost:           2500,
		PaperCost:          10,
		PaperPack:          100,
		AlarmCountdown:     5,
		AlarmTimeLimitSec:  30,
		FirstAlarmLifetime: 1000,
		SecondAlarmAfter:   10 * time.Minute,
		FastCharsPerSec:    6,
		FastMaxWrong:       5,
	}
}

// DefaultPlayer returns a fresh player.
func DefaultPlayer() model.Player {
	return model.Player{
		Paper: 100,
		Prices: model.Prices{
			ArticleBase: 25,
			BookBase:    220,
			Article:     25,
			Book:        220,
		},
		Skips: 5,
	}
}

// DefaultItems returns the store catalog.
func DefaultItems() []model.StoreItem {
	return []model.StoreItem{
		{
			ID:      "kb",
			Name:    "Better Keyboard",
			Desc:    "+10% chars",
			Cost:    model.Cost{Chars: 800},
			Effect:  model.Effect{Type: model.EffectCharsPct, Value: 0.10},
			Visible: true,
		},
		{
			ID:       "caps",
			Name:     "Precision Caps",
			Desc:     "-20% wrong penalty",
			Cost:     model.Cost{Chars: 400, Money: 10},
			Effect:   model.Effect{Type: model.EffectWrongPenalty, Value: 0.20},
			Requires: []string{"flawless10"},
		},
		{
			ID:      "coach",
			Name:    "Time Coach",
			Desc:    "+15% time bonus",
			Cost:    model.Cost{Chars: 600},
			Effect:  model.Effect{Type: model.EffectTimeBonusPct, Value: 0.15},
			Visible: true,
		},
		{
			ID:       "press",
			Name:     "Article Press",
			Desc:     "-15% article cost",
			Cost:     model.Cost{Chars: 500, Money: 25},
			Effect:   model.Effect{Type: model.EffectArticleCostPct, Value: 0.15},
			Requires: []string{"firstChapter"},
		},
		{
			ID:     "pricing",
			Name:   "Pricing Advisor",
			Desc:   "+10% sell price",
			Cost:   model.Cost{Chars: 300, Money: 40},
			Effect: model.Effect{Type: model.EffectPricePct, Value: 0.10},
		},
		{
			ID:       "skips",
			Name:     "Endless Skips",
			Desc:     "Skips unlimited",
			Cost:     model.Cost{Chars: 1200, Money: 100},
			Effect:   model.Effect{Type: model.EffectSkipUnlimited},
			Requires: []string{"3kLifetime"},
		},
	}
}
