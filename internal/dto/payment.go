package dto

import (
	"time"

	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to record a payment
// against a document.
type CreatePaymentRequest struct {
	DocumentID  string               `json:"documentID" binding:"required"`
	Amount      decimal.Decimal      `json:"amount" binding:"required"`
	PaymentDate time.Time            `json:"paymentDate" binding:"required"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CARD CHEQUE MOBILE_MONEY OTHER"`
	Reference   string               `json:"reference"`
	Notes       string               `json:"notes"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID      string               `json:"paymentID"`
	DocumentID     string               `json:"documentID"`
	CounterpartyID string               `json:"counterpartyID"`
	Amount         decimal.Decimal      `json:"amount"`
	PaymentDate    time.Time            `json:"paymentDate"`
	Method         domain.PaymentMethod `json:"method"`
	Reference      string               `json:"reference"`
	Notes          string               `json:"notes"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// ToPaymentResponse converts a domain payment to the response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		DocumentID:     p.DocumentID,
		CounterpartyID: p.CounterpartyID,
		Amount:         p.Amount,
		PaymentDate:    p.PaymentDate,
		Method:         p.Method,
		Reference:      p.Reference,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListPaymentsResponse wraps the list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}
