// Package achievements evaluates achievement unlocks and item visibility.
package achievements

import (
	"fmt"
	"time"

	"github.com/verte-zerg/scripttyper/internal/model"
)

// RunStats are the last run aggregates used by predicates.
type RunStats struct {
	Correct   int
	Wrong     int
	ElapsedMs int64
}

// Input is the player and run state an evaluation looks at.
type Input struct {
	Player       model.Player
	LastRun      *RunStats
	LifetimeRuns int
}

// Result lists what changed. ItemsUpdated is the full item list with reveals applied.
type Result struct {
	Unlocked     []model.Achievement
	ItemsUpdated []model.StoreItem
	Events       []model.GameEvent
}

type definition struct {
	id   string
	name string
	desc string
	cond func(Input) bool
}

var definitions = []definition{
	{
		id:   "100in60",
		name: "Type 100 in 60s",
		desc: "Finish a run with 100 correct chars within a minute",
		cond: func(in Input) bool {
			return in.LastRun != nil && in.LastRun.Correct >= 100 && in.LastRun.ElapsedMs <= 60_000
		},
	},
	{
		id:   "flawless10",
		name: "Flawless x10",
		desc: "Finish a flawless run after ten runs",
		cond: func(in Input) bool {
			return in.LifetimeRuns >= 10 && in.LastRun != nil && in.LastRun.Wrong == 0
		},
	},
	{
		id:   "3kLifetime",
		name: "3,000 Lifetime Chars",
		desc: "Earn 3,000 chars in total",
		cond: func(in Input) bool {
			return in.Player.LifetimeChars >= 3000
		},
	},
	{
		id:   "firstChapter",
		name: "First Chapter (5 texts)",
		desc: "Finish five texts",
		cond: func(in Input) bool {
			return in.LifetimeRuns >= 5
		},
	},
}

// Definitions returns every known achievement in locked form.
func Definitions() []model.Achievement {
	out := make([]model.Achievement, 0, len(definitions))
	for _, d := range definitions {
		out = append(out, model.Achievement{ID: d.id, Name: d.name, Desc: d.desc})
	}
	return out
}

// EventID formats the log id of an unlock event.
func EventID(id string, at time.Time) string {
	return fmt.Sprintf("a:%s:%d", id, at.UnixMilli())
}

// Evaluate unlocks achievements whose predicates hold and reveals items whose
// requirements are all met. Unlocked achievements are never reported twice.
func Evaluate(in Input, achievements []model.Achievement, items []model.StoreItem, now time.Time) Result {
	unlocked := make(map[string]bool, len(achievements))
	for _, a := range achievements {
		if a.Unlocked() {
			unlocked[a.ID] = true
		}
	}

	var res Result
	for _, d := range definitions {
		if unlocked[d.id] || !d.cond(in) {
			continue
		}
		at := now
		unlocked[d.id] = true
		res.Unlocked = append(res.Unlocked, model.Achievement{ID: d.id, Name: d.name, Desc: d.desc, UnlockedAt: &at})
		res.Events = append(res.Events, model.GameEvent{
			ID:      EventID(d.id, now),
			TS:      now,
			Message: "Achievement unlocked: " + d.name,
		})
	}

	res.ItemsUpdated = make([]model.StoreItem, len(items))
	for i, it := range items {
		if !it.Visible && len(it.Requires) > 0 && allUnlocked(it.Requires, unlocked) {
			it.Visible = true
		}
		res.ItemsUpdated[i] = it
	}
	return res
}

func allUnlocked(ids []string, unlocked map[string]bool) bool {
	for _, id := range ids {
		if !unlocked[id] {
			return false
		}
	}
	return true
}
