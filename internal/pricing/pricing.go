// Package pricing computes craft costs and sale prices.
package pricing

import (
	"math"

	"github.com/verte-zerg/scripttyper/internal/model"
)

const (
	minPriceFactor = 0.5
	maxPriceFactor = 2.0
	priceStepUp    = 1.05
	priceStepDown  = 0.95
)

// CraftCost applies owned article discounts to base. The result is never below 1.
func CraftCost(base int, items []model.StoreItem) int {
	reduc := model.EffectTotal(items, model.EffectArticleCostPct)
	cost := int(math.Floor(float64(base) * (1 - reduc)))
	if cost < 1 {
		return 1
	}
	return cost
}

// PriceBounds returns the allowed price band for base.
func PriceBounds(base int) (lo, hi int) {
	lo = int(math.Floor(float64(base) * minPriceFactor))
	hi = int(math.Ceil(float64(base) * maxPriceFactor))
	return lo, hi
}

// ClampPrice rounds price to the nearest integer and clamps it into the band for base.
func ClampPrice(base int, price float64) int {
	lo, hi := PriceBounds(base)
	p := int(math.Round(price))
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// AdjustPrice moves current one 5% step up or down and clamps the result.
func AdjustPrice(base, current int, up bool) int {
	step := priceStepDown
	if up {
		step = priceStepUp
	}
	return ClampPrice(base, math.Round(float64(current)*step))
}

// SellUnitPrice applies owned price bonuses to a unit price.
func SellUnitPrice(price int, items []model.StoreItem) int {
	bonus := model.EffectTotal(items, model.EffectPricePct)
	return int(math.Round(float64(price) * (1 + bonus)))
}
