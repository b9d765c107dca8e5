package services

import (
	"context"

	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/petrobook/petrobook/internal/dto"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment by its unique identifier.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of payments.
	ListPayments(ctx context.Context, limit int, offset int) ([]domain.Payment, error)

	// ListPaymentsByDocument retrieves all payments recorded against a document.
	ListPaymentsByDocument(ctx context.Context, documentID string) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payments
type PaymentWriterSvc interface {
	// RecordPayment persists a payment against a document and marks the
	// document paid once recorded payments cover its total.
	RecordPayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)

	// DeletePayment removes a payment.
	DeletePayment(ctx context.Context, paymentID string, deleterUserID string) error
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
