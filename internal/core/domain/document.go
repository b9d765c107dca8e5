package domain

import "time"

// DocumentType distinguishes money coming in from money going out.
// Invoices bill a customer; bills record what a supplier charges us.
// Both share the same structure.
type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "INVOICE"
	DocumentTypeBill    DocumentType = "BILL"
)

// DocumentStatus is the display status of a document. It carries no
// workflow enforcement; it is whatever the user last set, defaulting
// to Draft.
type DocumentStatus string

const (
	DocumentStatusDraft   DocumentStatus = "draft"
	DocumentStatusSent    DocumentStatus = "sent"
	DocumentStatusPaid    DocumentStatus = "paid"
	DocumentStatusOverdue DocumentStatus = "overdue"
	DocumentStatusVoid    DocumentStatus = "void"
)

// LineItem is one billable/payable row of a document. Quantity, unit
// amount and tax rate are kept as float64: monetary arithmetic runs at
// full floating precision and is rounded to two decimals only at
// display time.
type LineItem struct {
	LineItemID     string  `json:"lineItemID"` // Primary Key (UUID)
	DocumentID     string  `json:"documentID"` // FK -> documents.document_id
	Position       int     `json:"position"`   // Order within the document, 0-based
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitAmount     float64 `json:"unitAmount"`
	TaxRatePercent float64 `json:"taxRatePercent"`
}

// Document is an invoice or bill header plus its ordered line items.
// Subtotal/TaxTotal/Total are derived aggregates: they are recomputed
// from Items on every write and render, never trusted from a client.
type Document struct {
	DocumentID          string         `json:"documentID"` // Primary Key (UUID)
	DocumentType        DocumentType   `json:"documentType"`
	DocumentNumber      string         `json:"documentNumber"`
	CounterpartyID      string         `json:"counterpartyID"`      // FK -> counterparties.counterparty_id
	CounterpartyName    string         `json:"counterpartyName"`    // Denormalized for rendering
	CounterpartyAddress string         `json:"counterpartyAddress"` // Multi-line
	IssueDate           time.Time      `json:"issueDate"`
	DueDate             time.Time      `json:"dueDate"`
	Status              DocumentStatus `json:"status"`
	CurrencyCode        string         `json:"currencyCode"`
	Notes               string         `json:"notes"`        // Optional
	PaymentTerms        string         `json:"paymentTerms"` // Optional
	Items               []LineItem     `json:"items"`
	Subtotal            float64        `json:"subtotal"`
	TaxTotal            float64        `json:"taxTotal"`
	Total               float64        `json:"total"`
	AuditFields
}
