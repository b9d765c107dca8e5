package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/petrobook/petrobook/internal/core/billing"
	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument(itemCount int) *domain.Document {
	doc := &domain.Document{
		DocumentID:          "doc-1",
		DocumentType:        domain.DocumentTypeInvoice,
		DocumentNumber:      "INV-2026-0042",
		CounterpartyName:    "Acme Trading Ltd",
		CounterpartyAddress: "1 Market Street\nSpringfield",
		IssueDate:           time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:             time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:              domain.DocumentStatusSent,
		CurrencyCode:        "USD",
		Notes:               "Thank you for your business.",
	}
	for i := 0; i < itemCount; i++ {
		doc.Items = append(doc.Items, domain.LineItem{
			LineItemID:     fmt.Sprintf("item-%d", i),
			DocumentID:     doc.DocumentID,
			Position:       i,
			Description:    fmt.Sprintf("Service line %d", i+1),
			Quantity:       2,
			UnitAmount:     100,
			TaxRatePercent: 12,
		})
	}
	totals := billing.Aggregate(doc.Items)
	doc.Subtotal = totals.Subtotal
	doc.TaxTotal = totals.TaxTotal
	doc.Total = totals.Total
	return doc
}

func TestBuildDocumentPDF_ProducesValidPDF(t *testing.T) {
	doc := sampleDocument(3)
	company := CompanyInfo{Name: "PetroBook Co", Address: "HQ Lane 5", Email: "billing@petrobook.test"}

	out, err := BuildDocumentPDF(doc, company, nil)

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should start with a PDF signature")
}

func TestBuildDocumentPDF_ManyItemsSpanPages(t *testing.T) {
	doc := sampleDocument(80)
	pages := billing.RenderPages(doc, billing.A4HeightLimit, billing.EstimateRowHeight)
	require.Greater(t, len(pages), 1, "80 rows should not fit one A4 page")

	out, err := BuildDocumentPDF(doc, CompanyInfo{Name: "PetroBook Co"}, nil)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestBuildDocumentPDF_EmptyDocument(t *testing.T) {
	doc := sampleDocument(0)

	out, err := BuildDocumentPDF(doc, CompanyInfo{Name: "PetroBook Co"}, nil)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestBuildDocumentPDF_WithLogo(t *testing.T) {
	var logo bytes.Buffer
	require.NoError(t, png.Encode(&logo, image.NewRGBA(image.Rect(0, 0, 16, 16))))

	out, err := BuildDocumentPDF(sampleDocument(2), CompanyInfo{Name: "PetroBook Co"}, logo.Bytes())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
