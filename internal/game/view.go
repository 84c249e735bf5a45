package game

import "github.com/verte-zerg/scripttyper/internal/model"

const storeShelfSize = 5

// VisibleItems lists purchasable items: visible, not owned, at most five.
func VisibleItems(s State) []model.StoreItem {
	out := make([]model.StoreItem, 0, storeShelfSize)
	for _, it := range s.Items {
		if !it.Visible || it.Owned {
			continue
		}
		out = append(out, it)
		if len(out) == storeShelfSize {
			break
		}
	}
	return out
}

// OwnedItems lists purchased items in catalog order.
func OwnedItems(s State) []model.StoreItem {
	var out []model.StoreItem
	for _, it := range s.Items {
		if it.Owned {
			out = append(out, it)
		}
	}
	return out
}

// Pages is lifetime chars in thousands.
func Pages(s State) int {
	return s.Player.LifetimeChars / 1000
}

// Books is lifetime chars in millions.
func Books(s State) int {
	return s.Player.LifetimeChars / 1_000_000
}

// Progress is the typed share of the active passage in percent.
func Progress(s State) int {
	if s.Run.Text == nil {
		return 0
	}
	total := len(s.Run.Text.Runes())
	if total == 0 {
		return 0
	}
	return len(s.Run.Typed) * 100 / total
}

// UnlockedAchievements lists unlocked achievements.
func UnlockedAchievements(s State) []model.Achievement {
	var out []model.Achievement
	for _, a := range s.Achievements {
		if a.Unlocked() {
			out = append(out, a)
		}
	}
	return out
}
