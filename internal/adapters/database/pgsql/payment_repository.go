package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/domain"
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `
	payment_id, document_id, counterparty_id, amount, payment_date, method,
	reference, notes, created_at, created_by, last_updated_at, last_updated_by
`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var documentID, counterpartyID sql.NullString
	err := row.Scan(
		&p.PaymentID,
		&documentID,
		&counterpartyID,
		&p.Amount,
		&p.PaymentDate,
		&p.Method,
		&p.Reference,
		&p.Notes,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if documentID.Valid {
		p.DocumentID = documentID.String
	}
	if counterpartyID.Valid {
		p.CounterpartyID = counterpartyID.String
	}
	return &p, nil
}

// SavePayment inserts a new payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	var documentID, counterpartyID *string
	if payment.DocumentID != "" {
		documentID = &payment.DocumentID
	}
	if payment.CounterpartyID != "" {
		counterpartyID = &payment.CounterpartyID
	}
	_, err := r.Pool.Exec(ctx, query,
		payment.PaymentID,
		documentID,
		counterpartyID,
		payment.Amount,
		payment.PaymentDate,
		payment.Method,
		payment.Reference,
		payment.Notes,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save payment "+payment.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	p, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}
	return p, nil
}

// ListPayments retrieves a paginated list of payments, newest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, limit int, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + paymentColumns + `
		FROM payments
		ORDER BY payment_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return payments, nil
}

// ListPaymentsByDocument retrieves all payments applied to one document.
func (r *PgxPaymentRepository) ListPaymentsByDocument(ctx context.Context, documentID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE document_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for document "+documentID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return payments, nil
}

// DeletePayment removes a payment record.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
