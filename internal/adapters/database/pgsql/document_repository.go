package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/domain"
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
	"github.com/petrobook/petrobook/internal/utils/pagination"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for invoices and bills.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryWithTx
var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, document_type, document_number, counterparty_id, counterparty_name,
	counterparty_address, issue_date, due_date, status, currency_code, notes,
	payment_terms, subtotal, tax_total, total,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.DocumentID,
		&d.DocumentType,
		&d.DocumentNumber,
		&d.CounterpartyID,
		&d.CounterpartyName,
		&d.CounterpartyAddress,
		&d.IssueDate,
		&d.DueDate,
		&d.Status,
		&d.CurrencyCode,
		&d.Notes,
		&d.PaymentTerms,
		&d.Subtotal,
		&d.TaxTotal,
		&d.Total,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveDocument inserts the document header and its line items in one
// database transaction.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, headerQuery,
		doc.DocumentID,
		doc.DocumentType,
		doc.DocumentNumber,
		doc.CounterpartyID,
		doc.CounterpartyName,
		doc.CounterpartyAddress,
		doc.IssueDate,
		doc.DueDate,
		doc.Status,
		doc.CurrencyCode,
		doc.Notes,
		doc.PaymentTerms,
		doc.Subtotal,
		doc.TaxTotal,
		doc.Total,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document "+doc.DocumentID, err)
	}

	if err := insertLineItems(ctx, tx, doc.DocumentID, doc.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateDocument rewrites the header and replaces the full set of line
// items in one database transaction.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		UPDATE documents SET
			document_number = $2, counterparty_id = $3, counterparty_name = $4,
			counterparty_address = $5, issue_date = $6, due_date = $7, status = $8,
			notes = $9, payment_terms = $10, subtotal = $11, tax_total = $12,
			total = $13, last_updated_at = $14, last_updated_by = $15
		WHERE document_id = $1;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		doc.DocumentID,
		doc.DocumentNumber,
		doc.CounterpartyID,
		doc.CounterpartyName,
		doc.CounterpartyAddress,
		doc.IssueDate,
		doc.DueDate,
		doc.Status,
		doc.Notes,
		doc.PaymentTerms,
		doc.Subtotal,
		doc.TaxTotal,
		doc.Total,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document "+doc.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1;`, doc.DocumentID); err != nil {
		return apperrors.NewAppError(500, "failed to clear line items for document "+doc.DocumentID, err)
	}
	if err := insertLineItems(ctx, tx, doc.DocumentID, doc.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertLineItems(ctx context.Context, tx pgx.Tx, documentID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO line_items (line_item_id, document_id, position, description, quantity, unit_amount, tax_rate_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range items {
		batch.Queue(itemQuery,
			item.LineItemID,
			documentID,
			item.Position,
			item.Description,
			item.Quantity,
			item.UnitAmount,
			item.TaxRatePercent,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items for document "+documentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a document header with its ordered line items.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document by ID "+documentID, err)
	}

	itemQuery := `
		SELECT line_item_id, document_id, position, description, quantity, unit_amount, tax_rate_percent
		FROM line_items
		WHERE document_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, itemQuery, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for document "+documentID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(
			&item.LineItemID,
			&item.DocumentID,
			&item.Position,
			&item.Description,
			&item.Quantity,
			&item.UnitAmount,
			&item.TaxRatePercent,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for document "+documentID, err)
		}
		doc.Items = append(doc.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for document "+documentID, err)
	}

	return doc, nil
}

// ListDocuments retrieves a keyset-paginated page of documents of one
// type, newest issue date first. Line items are not loaded.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + documentColumns + ` FROM documents WHERE document_type = $1`
	orderByClause := ` ORDER BY issue_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastIssueDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", decodeErr)
		}
		query := baseQuery + ` AND (issue_date, created_at) < ($2, $3)` + orderByClause + ` LIMIT $4;`
		rows, err = r.Pool.Query(ctx, query, docType, lastIssueDate, lastCreatedAt, fetchLimit)
	} else {
		query := baseQuery + orderByClause + ` LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, docType, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query documents", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}

	var next *string
	if len(docs) > limit {
		docs = docs[:limit]
		last := docs[len(docs)-1]
		token := pagination.EncodeToken(last.IssueDate, last.CreatedAt)
		next = &token
	}
	return docs, next, nil
}

// ListDocumentsByCounterparty retrieves documents for one counterparty,
// newest first.
func (r *PgxDocumentRepository) ListDocumentsByCounterparty(ctx context.Context, counterpartyID string, limit int, offset int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + documentColumns + `
		FROM documents
		WHERE counterparty_id = $1
		ORDER BY issue_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, counterpartyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents for counterparty "+counterpartyID, err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}
	return docs, nil
}

// UpdateDocumentStatus updates only the display status.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, userID string, now time.Time) error {
	query := `
		UPDATE documents
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, documentID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDocument removes a document and its line items.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1;`, documentID); err != nil {
		return apperrors.NewAppError(500, "failed to delete line items for document "+documentID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
