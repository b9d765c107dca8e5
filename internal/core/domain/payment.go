package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is a free-form label for how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// Payment records money received against an invoice (or paid against a
// bill). DocumentID is optional: unapplied payments still count toward
// the dashboard's paid total.
type Payment struct {
	PaymentID      string          `json:"paymentID"`      // Primary Key (UUID)
	DocumentID     string          `json:"documentID"`     // Nullable FK -> documents.document_id
	CounterpartyID string          `json:"counterpartyID"` // Nullable FK -> counterparties.counterparty_id
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Method         PaymentMethod   `json:"method"`
	Reference      string          `json:"reference"` // Nullable
	Notes          string          `json:"notes"`
	AuditFields
}
