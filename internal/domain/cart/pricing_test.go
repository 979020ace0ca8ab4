//go:build unit

package cart_test

import (
	"testing"

	"promenu/internal/domain/cart"
	"promenu/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
)

func line(priceCents int64, qty float64, dt catalog.DiscountType, dv float64, qt catalog.QuantityType) cart.Line {
	return cart.Line{
		Item: catalog.Item{
			PriceCents:    priceCents,
			DiscountType:  dt,
			DiscountValue: dv,
			QuantityType:  qt,
		},
		Quantity: qty,
	}
}

func TestLineSubtotalCents(t *testing.T) {
	tests := []struct {
		name string
		line cart.Line
		want int64
	}{
		{
			name: "no discount",
			line: line(250, 3, catalog.DiscountNone, 0, catalog.QuantityUnit),
			want: 750,
		},
		{
			name: "unknown discount treated as none",
			line: line(250, 2, catalog.DiscountType("bogo"), 50, catalog.QuantityUnit),
			want: 500,
		},
		{
			name: "percentage",
			line: line(1000, 2, catalog.DiscountPercentage, 25, catalog.QuantityUnit),
			want: 1500,
		},
		{
			name: "percentage rounds",
			line: line(999, 1, catalog.DiscountPercentage, 10, catalog.QuantityUnit),
			want: 899, // 999 * 0.9 = 899.1
		},
		{
			name: "percentage over 100 clamps to free",
			line: line(1000, 2, catalog.DiscountPercentage, 150, catalog.QuantityUnit),
			want: 0,
		},
		{
			name: "negative percentage clamps to none",
			line: line(1000, 2, catalog.DiscountPercentage, -10, catalog.QuantityUnit),
			want: 2000,
		},
		{
			name: "fixed per unit",
			line: line(5, 4, catalog.DiscountFixed, 2, catalog.QuantityUnit),
			want: 12, // (5-2) * 4
		},
		{
			name: "fixed bigger than price floors at zero",
			line: line(5, 4, catalog.DiscountFixed, 7, catalog.QuantityUnit),
			want: 0,
		},
		{
			name: "fixed on weight quantity",
			line: line(1000, 0.5, catalog.DiscountFixed, 200, catalog.QuantityWeight),
			want: 400, // (1000-200) * 0.5
		},
		{
			name: "bulk 3 for 2 with 7 units",
			line: line(10, 7, catalog.DiscountBulkTier, 3, catalog.QuantityUnit),
			want: 50, // 2 full groups billed as 2x2, remainder 1 -> 5 units * 10
		},
		{
			name: "bulk exact group",
			line: line(10, 3, catalog.DiscountBulkTier, 3, catalog.QuantityUnit),
			want: 20,
		},
		{
			name: "bulk below group size pays full",
			line: line(10, 2, catalog.DiscountBulkTier, 3, catalog.QuantityUnit),
			want: 20,
		},
		{
			name: "bulk n of 1 degenerates to none",
			line: line(10, 4, catalog.DiscountBulkTier, 1, catalog.QuantityUnit),
			want: 40,
		},
		{
			name: "bulk n of 0 degenerates to none",
			line: line(10, 4, catalog.DiscountBulkTier, 0, catalog.QuantityUnit),
			want: 40,
		},
		{
			name: "bulk on weight item degenerates to none",
			line: line(1000, 1.5, catalog.DiscountBulkTier, 3, catalog.QuantityWeight),
			want: 1500,
		},
		{
			name: "weight quantity no discount",
			line: line(1200, 0.35, catalog.DiscountNone, 0, catalog.QuantityWeight),
			want: 420,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cart.LineSubtotalCents(tt.line))
		})
	}
}
