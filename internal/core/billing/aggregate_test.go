package billing_test

import (
	"testing"

	"github.com/petrobook/petrobook/internal/core/billing"
	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestAggregate_Example(t *testing.T) {
	items := []domain.LineItem{
		{Description: "Drilling service", Quantity: 2, UnitAmount: 100, TaxRatePercent: 12},
		{Description: "Delivery", Quantity: 1, UnitAmount: 50, TaxRatePercent: 0},
	}

	sub1, tax1, total1 := billing.LineAmounts(items[0])
	assert.InDelta(t, 200.0, sub1, tolerance)
	assert.InDelta(t, 24.0, tax1, tolerance)
	assert.InDelta(t, 224.0, total1, tolerance)

	_, _, total2 := billing.LineAmounts(items[1])
	assert.InDelta(t, 50.0, total2, tolerance)

	totals := billing.Aggregate(items)
	assert.InDelta(t, 250.0, totals.Subtotal, tolerance)
	assert.InDelta(t, 24.0, totals.TaxTotal, tolerance)
	assert.InDelta(t, 274.0, totals.Total, tolerance)
}

func TestAggregate_Empty(t *testing.T) {
	totals := billing.Aggregate(nil)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.TaxTotal)
	assert.Zero(t, totals.Total)

	totals = billing.Aggregate([]domain.LineItem{})
	assert.Zero(t, totals.Total)
}

func TestAggregate_TotalEqualsSubtotalPlusTax(t *testing.T) {
	cases := [][]domain.LineItem{
		{{Quantity: 3, UnitAmount: 19.99, TaxRatePercent: 7.5}},
		{{Quantity: 0.5, UnitAmount: 1234.56, TaxRatePercent: 16}},
		{
			{Quantity: 1, UnitAmount: 0.1, TaxRatePercent: 18},
			{Quantity: 7, UnitAmount: 0.2, TaxRatePercent: 18},
			{Quantity: 13, UnitAmount: 99.95, TaxRatePercent: 5},
		},
	}
	for _, items := range cases {
		totals := billing.Aggregate(items)
		assert.InDelta(t, totals.Subtotal+totals.TaxTotal, totals.Total, tolerance)
	}
}

func TestAggregate_ZeroQuantityLineIsNeutral(t *testing.T) {
	base := []domain.LineItem{
		{Quantity: 2, UnitAmount: 100, TaxRatePercent: 12},
	}
	withZero := append(append([]domain.LineItem{}, base...), domain.LineItem{
		Description: "placeholder", Quantity: 0, UnitAmount: 999, TaxRatePercent: 50,
	})

	require.Equal(t, billing.Aggregate(base), billing.Aggregate(withZero))
}

// Out-of-range tax rates are intentionally not clamped; this pins the
// tolerant-input behavior until product intent says otherwise.
func TestAggregate_OutOfRangeTaxRateNotClamped(t *testing.T) {
	over := billing.Aggregate([]domain.LineItem{
		{Quantity: 1, UnitAmount: 100, TaxRatePercent: 150},
	})
	assert.InDelta(t, 150.0, over.TaxTotal, tolerance)
	assert.InDelta(t, 250.0, over.Total, tolerance)

	negative := billing.Aggregate([]domain.LineItem{
		{Quantity: 1, UnitAmount: 100, TaxRatePercent: -10},
	})
	assert.InDelta(t, -10.0, negative.TaxTotal, tolerance)
	assert.InDelta(t, 90.0, negative.Total, tolerance)
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, 12.5, billing.Coerce("12.5"))
	assert.Equal(t, 12.5, billing.Coerce("  12.5\t"))
	assert.Equal(t, -3.0, billing.Coerce("-3"))

	// Non-numeric input defaults to zero, matching the dashboard tiles.
	assert.Zero(t, billing.Coerce(""))
	assert.Zero(t, billing.Coerce("abc"))
	assert.Zero(t, billing.Coerce("12,5"))
	assert.Zero(t, billing.Coerce("NaN"))
	assert.Zero(t, billing.Coerce("Inf"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, billing.Round2(12.346))
	assert.Equal(t, 12.34, billing.Round2(12.344))
	assert.Equal(t, -2.5, billing.Round2(-2.499999))
	assert.Equal(t, 0.0, billing.Round2(0))
}
