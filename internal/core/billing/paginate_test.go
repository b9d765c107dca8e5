package billing_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/petrobook/petrobook/internal/core/billing"
	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatLayout removes the fixed blocks so tests can reason about row
// heights alone.
var flatLayout = billing.Layout{
	TopMargin:          10,
	HeaderHeight:       0,
	ColumnHeaderHeight: 0,
	TotalsHeight:       0,
}

func fixedHeight(h float64) billing.RowHeightEstimator {
	return func(domain.LineItem) float64 { return h }
}

func docWithItems(n int) *domain.Document {
	doc := &domain.Document{DocumentNumber: "INV-0001"}
	for i := 0; i < n; i++ {
		doc.Items = append(doc.Items, domain.LineItem{
			Position:    i,
			Description: fmt.Sprintf("item %d", i+1),
			Quantity:    1,
			UnitAmount:  10,
		})
	}
	return doc
}

func TestRenderPages_BreaksAtHeightLimit(t *testing.T) {
	// Cursor starts at 10; rows are 40 high, so the cumulative height
	// first exceeds the 250 limit at row 7 (10 + 7*40 = 290).
	doc := docWithItems(10)
	pages := billing.RenderPagesLayout(doc, 250, fixedHeight(40), flatLayout)

	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Rows, 6)
	assert.Equal(t, "item 7", pages[1].Rows[0].Description)
	assert.True(t, pages[0].IsFirst)
	assert.False(t, pages[1].IsFirst)
}

func TestRenderPages_NoRowDuplicatedOrDropped(t *testing.T) {
	doc := docWithItems(37)
	pages := billing.RenderPagesLayout(doc, 250, fixedHeight(33), flatLayout)

	var seen []int
	for _, p := range pages {
		for _, row := range p.Rows {
			seen = append(seen, row.Position)
		}
	}
	require.Len(t, seen, len(doc.Items))
	for i, pos := range seen {
		assert.Equal(t, i, pos)
	}
}

func TestRenderPages_TotalsOnExactlyOnePage(t *testing.T) {
	doc := docWithItems(20)
	pages := billing.RenderPagesLayout(doc, 250, fixedHeight(30), flatLayout)

	lastCount := 0
	for i, p := range pages {
		if p.IsLast {
			lastCount++
			assert.Equal(t, len(pages)-1, i)
		}
	}
	assert.Equal(t, 1, lastCount)
}

func TestRenderPages_OversizedRowStillPlaced(t *testing.T) {
	// A single row taller than the page is placed anyway; rows never
	// split across pages.
	doc := docWithItems(2)
	pages := billing.RenderPagesLayout(doc, 100, fixedHeight(500), flatLayout)

	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Rows, 1)
	assert.Len(t, pages[1].Rows, 1)
}

func TestRenderPages_ZeroTotalsHeightAddsNoPage(t *testing.T) {
	// An oversized final row pushes the cursor past the limit, but a
	// zero-height totals block must not spill onto an empty extra page.
	doc := docWithItems(1)
	pages := billing.RenderPagesLayout(doc, 100, fixedHeight(500), flatLayout)

	require.Len(t, pages, 1)
	assert.True(t, pages[0].IsLast)
	assert.Len(t, pages[0].Rows, 1)
}

func TestRenderPages_TotalsOverflowToOwnPage(t *testing.T) {
	layout := flatLayout
	layout.TotalsHeight = 50

	// Rows end at cursor 10 + 4*55 = 230; totals need 50 more, past
	// the 250 limit, so they get a page of their own.
	doc := docWithItems(4)
	pages := billing.RenderPagesLayout(doc, 250, fixedHeight(55), layout)

	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Rows, 4)
	assert.Empty(t, pages[1].Rows)
	assert.False(t, pages[0].IsLast)
	assert.True(t, pages[1].IsLast)
}

func TestRenderPages_EmptyDocument(t *testing.T) {
	doc := &domain.Document{DocumentNumber: "INV-0002"}
	pages := billing.RenderPagesLayout(doc, 250, fixedHeight(10), flatLayout)

	require.Len(t, pages, 1)
	assert.True(t, pages[0].IsFirst)
	assert.True(t, pages[0].IsLast)
	assert.Empty(t, pages[0].Rows)
}

func TestRenderPages_FirstPageHeaderReducesCapacity(t *testing.T) {
	layout := flatLayout
	layout.HeaderHeight = 100

	// First page: cursor starts at 110, fits 2 rows of 40 before 200.
	// Later pages start at 10 and fit 4.
	doc := docWithItems(8)
	pages := billing.RenderPagesLayout(doc, 200, fixedHeight(40), layout)

	require.Len(t, pages, 3)
	assert.Len(t, pages[0].Rows, 2)
	assert.Len(t, pages[1].Rows, 4)
	assert.Len(t, pages[2].Rows, 2)
}

func TestEstimateRowHeight(t *testing.T) {
	short := domain.LineItem{Description: "Fuel delivery"}
	assert.Equal(t, 7.0, billing.EstimateRowHeight(short))

	// 120 characters wrap into 3 lines at a 48-character column.
	long := domain.LineItem{Description: strings.Repeat("x", 120)}
	assert.Equal(t, 7.0+2*5.0, billing.EstimateRowHeight(long))

	multiline := domain.LineItem{Description: "line one\nline two"}
	assert.Equal(t, 7.0+5.0, billing.EstimateRowHeight(multiline))
}
