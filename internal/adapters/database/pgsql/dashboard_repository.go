package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/billing"
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
)

type PgxDashboardRepository struct {
	BaseRepository
}

// newPgxDashboardRepository creates a new repository for the dashboard roll-up.
func newPgxDashboardRepository(pool *pgxpool.Pool) portsrepo.DashboardRepository {
	return &PgxDashboardRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDashboardRepository implements portsrepo.DashboardRepository
var _ portsrepo.DashboardRepository = (*PgxDashboardRepository)(nil)

// FetchInvoiceRecords returns the flat invoice rows issued in [from, to).
// The counterparty name is the snapshot stored on the document, so the
// ranking reflects what the invoice actually said.
func (r *PgxDashboardRepository) FetchInvoiceRecords(ctx context.Context, from, to time.Time) ([]billing.InvoiceRecord, error) {
	query := `
		SELECT issue_date, total, status, counterparty_name
		FROM documents
		WHERE document_type = 'INVOICE' AND issue_date >= $1 AND issue_date < $2
		ORDER BY issue_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice records", err)
	}
	defer rows.Close()

	records := []billing.InvoiceRecord{}
	for rows.Next() {
		var rec billing.InvoiceRecord
		if err := rows.Scan(&rec.Date, &rec.Total, &rec.Status, &rec.Counterparty); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice record row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice record rows", err)
	}
	return records, nil
}

// FetchPaymentRecords returns the flat payment rows dated in [from, to).
// Payments against bills are excluded; the dashboard tracks money in.
func (r *PgxDashboardRepository) FetchPaymentRecords(ctx context.Context, from, to time.Time) ([]billing.PaymentRecord, error) {
	query := `
		SELECT p.payment_date, p.amount
		FROM payments p
		LEFT JOIN documents d ON p.document_id = d.document_id
		WHERE p.payment_date >= $1 AND p.payment_date < $2
		  AND (d.document_id IS NULL OR d.document_type = 'INVOICE')
		ORDER BY p.payment_date, p.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment records", err)
	}
	defer rows.Close()

	records := []billing.PaymentRecord{}
	for rows.Next() {
		var rec billing.PaymentRecord
		if err := rows.Scan(&rec.Date, &rec.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment record row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment record rows", err)
	}
	return records, nil
}
