package repositories

import (
	"context"

	"github.com/petrobook/petrobook/internal/core/domain"
)

// PaymentReader defines read operations for payment records.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of payments, newest first.
	ListPayments(ctx context.Context, limit int, offset int) ([]domain.Payment, error)

	// ListPaymentsByDocument retrieves payments applied to one document.
	ListPaymentsByDocument(ctx context.Context, documentID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment records.
type PaymentWriter interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// DeletePayment removes a payment record.
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
