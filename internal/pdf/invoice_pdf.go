// Package pdf renders invoices and bills to A4 PDFs. Page breaks are
// decided by the billing paginator, not by the PDF library, so the
// printed layout and the pagination rules cannot drift apart.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/petrobook/petrobook/internal/core/billing"
	"github.com/petrobook/petrobook/internal/core/domain"
)

// CompanyInfo is the issuing company block printed on the first page.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

const (
	pageLeftMargin  = 15.0
	pageTopMargin   = 15.0
	contentWidth    = 180.0
	colDescWidth    = 80.0
	colQtyWidth     = 25.0
	colUnitWidth    = 25.0
	colTaxWidth     = 20.0
	colAmountWidth  = 30.0
	totalsLabelPosX = 125.0
)

// BuildDocumentPDF renders a document to PDF bytes using the shared A4
// pagination. Every page repeats the column header and footer; the
// first page carries the company and counterparty blocks (plus the
// optional PNG logo), the last the totals and notes.
func BuildDocumentPDF(doc *domain.Document, company CompanyInfo, logoPNG []byte) ([]byte, error) {
	pages := billing.RenderPages(doc, billing.A4HeightLimit, billing.EstimateRowHeight)

	f := gofpdf.New("P", "mm", "A4", "")
	f.SetMargins(pageLeftMargin, pageTopMargin, pageLeftMargin)
	f.SetAutoPageBreak(false, 0)
	f.AliasNbPages("")
	f.SetFooterFunc(func() {
		f.SetY(-12)
		f.SetFont("Arial", "I", 8)
		f.SetTextColor(128, 128, 128)
		f.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", f.PageNo()), "", 0, "C", false, 0, "")
		f.SetTextColor(0, 0, 0)
	})

	if len(logoPNG) > 0 {
		f.RegisterImageOptionsReader("logo", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(logoPNG))
	}

	for _, page := range pages {
		f.AddPage()
		if page.IsFirst {
			drawHeader(f, doc, company, len(logoPNG) > 0)
		}
		drawColumnHeader(f)
		for _, item := range page.Rows {
			drawRow(f, item)
		}
		if page.IsLast {
			drawTotals(f, doc)
		}
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(f *gofpdf.Fpdf, doc *domain.Document, company CompanyInfo, hasLogo bool) {
	title := "INVOICE"
	if doc.DocumentType == domain.DocumentTypeBill {
		title = "BILL"
	}

	if hasLogo {
		f.ImageOptions("logo", pageLeftMargin, pageTopMargin, 28, 0, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		f.SetY(pageTopMargin + 20)
	}

	f.SetFont("Arial", "B", 20)
	f.CellFormat(contentWidth/2, 10, company.Name, "", 0, "L", false, 0, "")
	f.CellFormat(contentWidth/2, 10, title, "", 1, "R", false, 0, "")

	f.SetFont("Arial", "", 9)
	f.MultiCell(contentWidth/2, 4.5, company.Address, "", "L", false)
	if company.Phone != "" {
		f.CellFormat(contentWidth/2, 4.5, company.Phone, "", 1, "L", false, 0, "")
	}
	if company.Email != "" {
		f.CellFormat(contentWidth/2, 4.5, company.Email, "", 1, "L", false, 0, "")
	}
	f.Ln(4)

	f.SetFont("Arial", "B", 10)
	f.CellFormat(contentWidth/2, 5, "Bill To:", "", 0, "L", false, 0, "")
	f.SetFont("Arial", "", 10)
	f.CellFormat(45, 5, "Number:", "", 0, "L", false, 0, "")
	f.CellFormat(45, 5, doc.DocumentNumber, "", 1, "R", false, 0, "")

	y := f.GetY()
	f.SetFont("Arial", "", 10)
	f.MultiCell(contentWidth/2, 5, doc.CounterpartyName+"\n"+doc.CounterpartyAddress, "", "L", false)
	leftEnd := f.GetY()

	f.SetY(y)
	f.SetX(pageLeftMargin + contentWidth/2)
	f.CellFormat(45, 5, "Issue date:", "", 0, "L", false, 0, "")
	f.CellFormat(45, 5, doc.IssueDate.Format("2006-01-02"), "", 1, "R", false, 0, "")
	f.SetX(pageLeftMargin + contentWidth/2)
	f.CellFormat(45, 5, "Due date:", "", 0, "L", false, 0, "")
	f.CellFormat(45, 5, doc.DueDate.Format("2006-01-02"), "", 1, "R", false, 0, "")
	f.SetX(pageLeftMargin + contentWidth/2)
	f.CellFormat(45, 5, "Currency:", "", 0, "L", false, 0, "")
	f.CellFormat(45, 5, doc.CurrencyCode, "", 1, "R", false, 0, "")
	if f.GetY() < leftEnd {
		f.SetY(leftEnd)
	}
	f.Ln(6)
}

func drawColumnHeader(f *gofpdf.Fpdf) {
	f.SetFont("Arial", "B", 9)
	f.SetFillColor(230, 230, 230)
	f.CellFormat(colDescWidth, 8, "Description", "1", 0, "L", true, 0, "")
	f.CellFormat(colQtyWidth, 8, "Qty", "1", 0, "R", true, 0, "")
	f.CellFormat(colUnitWidth, 8, "Unit", "1", 0, "R", true, 0, "")
	f.CellFormat(colTaxWidth, 8, "Tax %", "1", 0, "R", true, 0, "")
	f.CellFormat(colAmountWidth, 8, "Amount", "1", 1, "R", true, 0, "")
}

func drawRow(f *gofpdf.Fpdf, item domain.LineItem) {
	_, _, total := billing.LineAmounts(item)
	h := billing.EstimateRowHeight(item)

	x, y := f.GetX(), f.GetY()
	f.SetFont("Arial", "", 9)
	f.Rect(x, y, colDescWidth, h, "D")
	f.MultiCell(colDescWidth, h/lineCount(item), item.Description, "", "L", false)
	f.SetXY(x+colDescWidth, y)
	f.CellFormat(colQtyWidth, h, trimFloat(item.Quantity), "1", 0, "R", false, 0, "")
	f.CellFormat(colUnitWidth, h, money(item.UnitAmount), "1", 0, "R", false, 0, "")
	f.CellFormat(colTaxWidth, h, trimFloat(item.TaxRatePercent), "1", 0, "R", false, 0, "")
	f.CellFormat(colAmountWidth, h, money(total), "1", 1, "R", false, 0, "")
}

func drawTotals(f *gofpdf.Fpdf, doc *domain.Document) {
	f.Ln(4)
	f.SetFont("Arial", "", 10)
	f.SetX(totalsLabelPosX)
	f.CellFormat(40, 6, "Subtotal", "", 0, "L", false, 0, "")
	f.CellFormat(30, 6, money(doc.Subtotal), "", 1, "R", false, 0, "")
	f.SetX(totalsLabelPosX)
	f.CellFormat(40, 6, "Tax", "", 0, "L", false, 0, "")
	f.CellFormat(30, 6, money(doc.TaxTotal), "", 1, "R", false, 0, "")
	f.SetFont("Arial", "B", 11)
	f.SetX(totalsLabelPosX)
	f.CellFormat(40, 8, "Total", "T", 0, "L", false, 0, "")
	f.CellFormat(30, 8, money(doc.Total), "T", 1, "R", false, 0, "")

	if doc.Notes != "" || doc.PaymentTerms != "" {
		f.Ln(4)
		f.SetFont("Arial", "", 8)
		if doc.PaymentTerms != "" {
			f.MultiCell(contentWidth, 4, "Payment terms: "+doc.PaymentTerms, "", "L", false)
		}
		if doc.Notes != "" {
			f.MultiCell(contentWidth, 4, doc.Notes, "", "L", false)
		}
	}
}

// lineCount mirrors the estimator's wrap arithmetic so MultiCell line
// spacing fills the same box the paginator reserved.
func lineCount(item domain.LineItem) float64 {
	h := billing.EstimateRowHeight(item)
	return 1 + (h-7.0)/5.0
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", billing.Round2(v))
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}
