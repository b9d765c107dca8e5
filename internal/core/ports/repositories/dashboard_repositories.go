package repositories

import (
	"context"
	"time"

	"github.com/petrobook/petrobook/internal/core/billing"
)

// DashboardRepository fetches the flat rows the dashboard roll-up
// consumes. Rows are mapped to billing records at the storage boundary
// so the pure Summarize never sees raw schema shapes.
type DashboardRepository interface {
	// FetchInvoiceRecords returns invoice rows (joined with counterparty
	// names where available) issued in [from, to).
	FetchInvoiceRecords(ctx context.Context, from, to time.Time) ([]billing.InvoiceRecord, error)

	// FetchPaymentRecords returns payment rows dated in [from, to).
	FetchPaymentRecords(ctx context.Context, from, to time.Time) ([]billing.PaymentRecord, error)
}
