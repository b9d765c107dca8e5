package billing

import (
	"strings"

	"github.com/petrobook/petrobook/internal/core/domain"
)

// Page is a bounded-height slice of a document's rendered output. It
// is a rendering-only artifact, generated per render and never
// persisted. The first page carries the header/logo block; the last
// page carries the totals block and notes.
type Page struct {
	Index   int               `json:"index"`
	Rows    []domain.LineItem `json:"rows"`
	IsFirst bool              `json:"isFirst"`
	IsLast  bool              `json:"isLast"`
}

// RowHeightEstimator returns the rendered height of one line-item row,
// in the same units as the page height limit.
type RowHeightEstimator func(item domain.LineItem) float64

// Layout describes the fixed vertical blocks surrounding the line-item
// table. All values share the units of the page height limit.
type Layout struct {
	TopMargin          float64 // Cursor start on every page
	HeaderHeight       float64 // Header/logo block, first page only
	ColumnHeaderHeight float64 // Column header, repeated on every page
	TotalsHeight       float64 // Totals block + notes, last page only
}

// A4Layout matches the geometry the PDF builder draws with, in
// millimetres on a 210x297 page.
var A4Layout = Layout{
	TopMargin:          15,
	HeaderHeight:       62,
	ColumnHeaderHeight: 8,
	TotalsHeight:       42,
}

// A4HeightLimit is the usable vertical extent of an A4 page in mm,
// leaving room for the repeated footer.
const A4HeightLimit = 270

// RenderPages splits a document's line items into pages using the
// default A4 geometry. See RenderPagesLayout for the algorithm.
func RenderPages(doc *domain.Document, pageHeightLimit float64, estimate RowHeightEstimator) []Page {
	return RenderPagesLayout(doc, pageHeightLimit, estimate, A4Layout)
}

// RenderPagesLayout walks the document's items with a running vertical
// cursor. A row that would cross the limit moves whole to the next
// page; rows are never split. A row taller than a fresh page is still
// placed there, so every item lands on exactly one page. The totals
// block goes on the page holding the last row, or on a fresh page of
// its own when it would not fit.
func RenderPagesLayout(doc *domain.Document, pageHeightLimit float64, estimate RowHeightEstimator, layout Layout) []Page {
	pages := []Page{{Index: 0, IsFirst: true}}
	cursor := layout.TopMargin + layout.HeaderHeight + layout.ColumnHeaderHeight

	cur := &pages[0]
	for _, item := range doc.Items {
		h := estimate(item)
		if len(cur.Rows) > 0 && cursor+h > pageHeightLimit {
			pages = append(pages, Page{Index: len(pages)})
			cur = &pages[len(pages)-1]
			cursor = layout.TopMargin + layout.ColumnHeaderHeight
		}
		cur.Rows = append(cur.Rows, item)
		cursor += h
	}

	// Totals block: last page, or alone on a new one when it overflows.
	// A zero-height totals block never forces a page.
	if layout.TotalsHeight > 0 && len(cur.Rows) > 0 && cursor+layout.TotalsHeight > pageHeightLimit {
		pages = append(pages, Page{Index: len(pages)})
	}
	pages[len(pages)-1].IsLast = true
	return pages
}

// descriptionColumnWidth is the character width at which a row's
// description wraps in the rendered table.
const descriptionColumnWidth = 48

// baseRowHeight and wrappedLineHeight are the A4 row metrics in mm.
const (
	baseRowHeight     = 7.0
	wrappedLineHeight = 5.0
)

// EstimateRowHeight is the default estimator for A4 output: a base row
// height, plus one extra line for each time the description wraps at
// the fixed column width. Explicit newlines in the description also
// wrap.
func EstimateRowHeight(item domain.LineItem) float64 {
	lines := 0
	for _, seg := range strings.Split(item.Description, "\n") {
		n := len([]rune(seg))
		if n == 0 {
			lines++
			continue
		}
		lines += (n + descriptionColumnWidth - 1) / descriptionColumnWidth
	}
	if lines < 1 {
		lines = 1
	}
	return baseRowHeight + float64(lines-1)*wrappedLineHeight
}
