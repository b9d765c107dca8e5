package domain

// CounterpartyKind distinguishes customers (billed on invoices) from
// suppliers (who bill us).
type CounterpartyKind string

const (
	CounterpartyKindCustomer CounterpartyKind = "CUSTOMER"
	CounterpartyKindSupplier CounterpartyKind = "SUPPLIER"
)

// Counterparty is the other party of a document: the customer on an
// invoice or the supplier on a bill.
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyID"` // Primary Key (UUID)
	Kind           CounterpartyKind `json:"kind"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`   // Nullable
	Phone          string           `json:"phone"`   // Nullable
	Address        string           `json:"address"` // Multi-line, nullable
	TaxNumber      string           `json:"taxNumber"`
	IsActive       bool             `json:"isActive"`
	AuditFields
}
