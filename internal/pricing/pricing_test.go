package pricing

import (
	"testing"

	"github.com/verte-zerg/scripttyper/internal/model"
)

func discount(value float64, owned bool) model.StoreItem {
	return model.StoreItem{
		ID:     "press",
		Effect: model.Effect{Type: model.EffectArticleCostPct, Value: value},
		Owned:  owned,
	}
}

func TestCraftCostWithoutItems(t *testing.T) {
	if got := CraftCost(400, nil); got != 400 {
		t.Fatalf("expected 400, got %d", got)
	}
}

func TestCraftCostAppliesOwnedDiscountOnly(t *testing.T) {
	items := []model.StoreItem{discount(0.15, true), discount(0.5, false)}
	if got := CraftCost(400, items); got != 340 {
		t.Fatalf("expected 340, got %d", got)
	}
}

func TestCraftCostNeverBelowOne(t *testing.T) {
	items := []model.StoreItem{discount(0.9, true), discount(0.9, true)}
	for _, base := range []int{0, 1, 3, 400, 2500} {
		if got := CraftCost(base, items); got < 1 {
			t.Fatalf("base %d: expected cost >= 1, got %d", base, got)
		}
	}
}

func TestClampPriceBounds(t *testing.T) {
	for _, base := range []int{1, 3, 25, 220, 999} {
		lo, hi := PriceBounds(base)
		for _, price := range []float64{-100, 0, 0.4, float64(base), float64(base) * 1.7, 1e9} {
			got := ClampPrice(base, price)
			if got < lo || got > hi {
				t.Fatalf("base %d price %.2f: %d outside [%d, %d]", base, price, got, lo, hi)
			}
		}
	}
}

func TestClampPriceRoundsFirst(t *testing.T) {
	if got := ClampPrice(25, 26.5); got != 27 {
		t.Fatalf("expected 27, got %d", got)
	}
	if got := ClampPrice(25, 12.2); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := ClampPrice(25, 51); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestAdjustPriceSteps(t *testing.T) {
	if got := AdjustPrice(220, 220, true); got != 231 {
		t.Fatalf("expected 231, got %d", got)
	}
	if got := AdjustPrice(220, 220, false); got != 209 {
		t.Fatalf("expected 209, got %d", got)
	}
	if got := AdjustPrice(25, 50, true); got != 50 {
		t.Fatalf("expected clamp at 50, got %d", got)
	}
	if got := AdjustPrice(25, 12, false); got != 12 {
		t.Fatalf("expected clamp at 12, got %d", got)
	}
}

func TestSellUnitPrice(t *testing.T) {
	items := []model.StoreItem{{ID: "pricing", Effect: model.Effect{Type: model.EffectPricePct, Value: 0.1}, Owned: true}}
	if got := SellUnitPrice(25, items); got != 28 {
		t.Fatalf("expected 28, got %d", got)
	}
	if got := SellUnitPrice(25, nil); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}
