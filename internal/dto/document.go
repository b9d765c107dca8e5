package dto

import (
	"time"

	"github.com/petrobook/petrobook/internal/core/billing"
	"github.com/petrobook/petrobook/internal/core/domain"
)

// LineItemInput is one line item as submitted by a client. Numeric
// fields are accepted as-is; out-of-range values are not clamped and
// flow through aggregation unchanged.
type LineItemInput struct {
	Description    string  `json:"description" binding:"required"`
	Quantity       float64 `json:"quantity"`
	UnitAmount     float64 `json:"unitAmount"`
	TaxRatePercent float64 `json:"taxRatePercent"`
}

// CreateDocumentRequest defines the data needed to create an invoice or bill.
// Totals are never accepted from the client; they are recomputed from Items.
type CreateDocumentRequest struct {
	DocumentNumber string                `json:"documentNumber" binding:"required"`
	CounterpartyID string                `json:"counterpartyID" binding:"required"`
	IssueDate      time.Time             `json:"issueDate" binding:"required"`
	DueDate        time.Time             `json:"dueDate" binding:"required"`
	Status         domain.DocumentStatus `json:"status" binding:"omitempty,oneof=draft sent paid overdue void"`
	CurrencyCode   string                `json:"currencyCode" binding:"required"`
	Notes          string                `json:"notes"`
	PaymentTerms   string                `json:"paymentTerms"`
	Items          []LineItemInput       `json:"items" binding:"required,min=1,dive"`
}

// UpdateDocumentRequest defines the data allowed for updating a document.
// Use pointers to distinguish between zero-value updates and fields not provided.
// When Items is present, the full set of line items is replaced.
type UpdateDocumentRequest struct {
	DocumentNumber *string                `json:"documentNumber"`
	CounterpartyID *string                `json:"counterpartyID"`
	IssueDate      *time.Time             `json:"issueDate"`
	DueDate        *time.Time             `json:"dueDate"`
	Status         *domain.DocumentStatus `json:"status" binding:"omitempty,oneof=draft sent paid overdue void"`
	Notes          *string                `json:"notes"`
	PaymentTerms   *string                `json:"paymentTerms"`
	Items          *[]LineItemInput       `json:"items" binding:"omitempty,dive"`
}

// UpdateDocumentStatusRequest flips only the display status.
type UpdateDocumentStatusRequest struct {
	Status domain.DocumentStatus `json:"status" binding:"required,oneof=draft sent paid overdue void"`
}

// SendDocumentRequest defines the data needed to email a document PDF.
type SendDocumentRequest struct {
	Recipient string `json:"recipient" binding:"required,email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	LogoPNG   string `json:"logo"` // Optional, base64-encoded PNG
}

// LineItemResponse mirrors a line item plus its derived amounts,
// rounded to two decimals for display.
type LineItemResponse struct {
	LineItemID     string  `json:"lineItemID"`
	Position       int     `json:"position"`
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitAmount     float64 `json:"unitAmount"`
	TaxRatePercent float64 `json:"taxRatePercent"`
	Subtotal       float64 `json:"subtotal"`
	Tax            float64 `json:"tax"`
	Total          float64 `json:"total"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID          string                `json:"documentID"`
	DocumentType        domain.DocumentType   `json:"documentType"`
	DocumentNumber      string                `json:"documentNumber"`
	CounterpartyID      string                `json:"counterpartyID"`
	CounterpartyName    string                `json:"counterpartyName"`
	CounterpartyAddress string                `json:"counterpartyAddress"`
	IssueDate           time.Time             `json:"issueDate"`
	DueDate             time.Time             `json:"dueDate"`
	Status              domain.DocumentStatus `json:"status"`
	CurrencyCode        string                `json:"currencyCode"`
	Notes               string                `json:"notes"`
	PaymentTerms        string                `json:"paymentTerms"`
	Items               []LineItemResponse    `json:"items,omitempty"`
	Subtotal            float64               `json:"subtotal"`
	TaxTotal            float64               `json:"taxTotal"`
	Total               float64               `json:"total"`
	CreatedAt           time.Time             `json:"createdAt"`
	LastUpdatedAt       time.Time             `json:"lastUpdatedAt"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse,
// rounding monetary amounts at this display boundary only.
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:          doc.DocumentID,
		DocumentType:        doc.DocumentType,
		DocumentNumber:      doc.DocumentNumber,
		CounterpartyID:      doc.CounterpartyID,
		CounterpartyName:    doc.CounterpartyName,
		CounterpartyAddress: doc.CounterpartyAddress,
		IssueDate:           doc.IssueDate,
		DueDate:             doc.DueDate,
		Status:              doc.Status,
		CurrencyCode:        doc.CurrencyCode,
		Notes:               doc.Notes,
		PaymentTerms:        doc.PaymentTerms,
		Subtotal:            billing.Round2(doc.Subtotal),
		TaxTotal:            billing.Round2(doc.TaxTotal),
		Total:               billing.Round2(doc.Total),
		CreatedAt:           doc.CreatedAt,
		LastUpdatedAt:       doc.LastUpdatedAt,
	}
	for _, item := range doc.Items {
		sub, tax, total := billing.LineAmounts(item)
		resp.Items = append(resp.Items, LineItemResponse{
			LineItemID:     item.LineItemID,
			Position:       item.Position,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitAmount:     item.UnitAmount,
			TaxRatePercent: item.TaxRatePercent,
			Subtotal:       billing.Round2(sub),
			Tax:            billing.Round2(tax),
			Total:          billing.Round2(total),
		})
	}
	return resp
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListDocumentsResponse wraps the list of documents with the keyset
// token for the following page.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}
