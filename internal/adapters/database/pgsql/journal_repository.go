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

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalColumns = `
	journal_id, journal_date, reference, description, status,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var j domain.Journal
	err := row.Scan(
		&j.JournalID,
		&j.JournalDate,
		&j.Reference,
		&j.Description,
		&j.Status,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// SaveJournal inserts the journal header and its lines in one database
// transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, headerQuery,
		journal.JournalID,
		journal.JournalDate,
		journal.Reference,
		journal.Description,
		journal.Status,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+journal.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (journal_line_id, journal_id, account_id, position, debit, credit, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.JournalLineID,
			journal.JournalID,
			line.AccountID,
			line.Position,
			line.Debit,
			line.Credit,
			line.Notes,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines for "+journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal header by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	j, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}
	return j, nil
}

// FindLinesByJournalID retrieves the ordered lines of a journal.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT journal_line_id, journal_id, account_id, position, debit, credit, notes
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines for "+journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(
			&l.JournalLineID,
			&l.JournalID,
			&l.AccountID,
			&l.Position,
			&l.Debit,
			&l.Credit,
			&l.Notes,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row for "+journalID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows for "+journalID, err)
	}
	return lines, nil
}

// ListJournals retrieves a keyset-paginated page of journals, newest first.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals`
	orderByClause := ` ORDER BY journal_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastJournalDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", decodeErr)
		}
		query := baseQuery + ` WHERE (journal_date, created_at) < ($1, $2)` + orderByClause + ` LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, lastJournalDate, lastCreatedAt, fetchLimit)
	} else {
		query := baseQuery + orderByClause + ` LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}

	var next *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[len(journals)-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		next = &token
	}
	return journals, next, nil
}

// UpdateJournalStatus flips a journal's status.
func (r *PgxJournalRepository) UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, userID string, now time.Time) error {
	query := `
		UPDATE journals
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, journalID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
