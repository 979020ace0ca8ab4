package cart

import (
	"math"

	"promenu/internal/domain/catalog"
)

// LineSubtotalCents prices one line under its snapshot's discount variant.
// No intermediate value goes negative; each line floors at zero before the
// cart total sums them.
func LineSubtotalCents(l Line) int64 {
	price := l.Item.PriceCents
	qty := l.Quantity

	switch l.Item.DiscountType.Normalize() {
	case catalog.DiscountPercentage:
		pct := l.Item.DiscountValue
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		return clampCents(float64(price) * qty * (1 - pct/100))

	case catalog.DiscountFixed:
		// The discount applies per unit, floored at zero per unit.
		perUnit := price - int64(math.Round(l.Item.DiscountValue))
		if perUnit < 0 {
			perUnit = 0
		}
		return clampCents(float64(perUnit) * qty)

	case catalog.DiscountBulkTier:
		n := int64(l.Item.DiscountValue)
		if n <= 1 || l.Item.QuantityType.Normalize() != catalog.QuantityUnit {
			return clampCents(float64(price) * qty)
		}
		// Every complete group of n units is billed as n-1; the remainder
		// is billed in full.
		q := int64(qty)
		fullPriceUnits := (q/n)*(n-1) + q%n
		return maxInt64(0, fullPriceUnits*price)

	default:
		return clampCents(float64(price) * qty)
	}
}

func clampCents(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int64(math.Round(v))
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
