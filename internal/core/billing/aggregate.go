// Package billing holds the computed core of PetroBook: line-item
// aggregation for invoices and bills, the paginated table layout used
// by the PDF renderer, and the dashboard summary roll-up. Everything
// here is a pure, synchronous function over already-fetched data; no
// I/O, no shared state.
//
// Monetary arithmetic inside this package is float64 at full
// precision. Amounts are rounded to two decimals only when displayed,
// so rounding error never compounds across lines.
package billing

import (
	"math"
	"strconv"
	"strings"

	"github.com/petrobook/petrobook/internal/core/domain"
)

// Totals is the computed aggregate of a document's line items.
// Total == Subtotal + TaxTotal always holds (it is derived, never stored
// independently).
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	TaxTotal float64 `json:"taxTotal"`
	Total    float64 `json:"total"`
}

// LineAmounts computes the derived amounts of a single line item:
// subtotal = quantity x unitAmount, tax = subtotal x rate/100,
// total = subtotal + tax.
//
// Out-of-range tax rates (negative or above 100) are deliberately not
// clamped: they produce correspondingly out-of-range tax, matching the
// dashboard's tolerant-input behavior. See the aggregate tests, which
// flag this explicitly.
func LineAmounts(item domain.LineItem) (subtotal, tax, total float64) {
	subtotal = item.Quantity * item.UnitAmount
	tax = subtotal * item.TaxRatePercent / 100
	total = subtotal + tax
	return subtotal, tax, total
}

// Aggregate computes document-level totals from an ordered list of
// line items. An empty (or nil) list yields all-zero totals.
func Aggregate(items []domain.LineItem) Totals {
	var t Totals
	for _, item := range items {
		sub, tax, _ := LineAmounts(item)
		t.Subtotal += sub
		t.TaxTotal += tax
	}
	t.Total = t.Subtotal + t.TaxTotal
	return t
}

// Coerce parses a free-text numeric field the way the dashboard tiles
// do: whitespace is trimmed, and anything that does not parse as a
// finite number becomes zero. Callers that accept user-typed amounts
// (journal debit/credit fields) must use this to stay in parity with
// document aggregation.
func Coerce(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds to two fraction digits. Display-time only; never feed
// the result back into accumulation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
