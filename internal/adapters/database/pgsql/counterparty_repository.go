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
)

type PgxCounterpartyRepository struct {
	BaseRepository
}

// newPgxCounterpartyRepository creates a new repository for customer and supplier data.
func newPgxCounterpartyRepository(pool *pgxpool.Pool) portsrepo.CounterpartyRepositoryFacade {
	return &PgxCounterpartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCounterpartyRepository implements portsrepo.CounterpartyRepositoryFacade
var _ portsrepo.CounterpartyRepositoryFacade = (*PgxCounterpartyRepository)(nil)

const counterpartyColumns = `
	counterparty_id, kind, name, email, phone, address, tax_number, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCounterparty(row pgx.Row) (*domain.Counterparty, error) {
	var cp domain.Counterparty
	err := row.Scan(
		&cp.CounterpartyID,
		&cp.Kind,
		&cp.Name,
		&cp.Email,
		&cp.Phone,
		&cp.Address,
		&cp.TaxNumber,
		&cp.IsActive,
		&cp.CreatedAt,
		&cp.CreatedBy,
		&cp.LastUpdatedAt,
		&cp.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// SaveCounterparty inserts a new counterparty.
func (r *PgxCounterpartyRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	query := `
		INSERT INTO counterparties (` + counterpartyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		cp.CounterpartyID,
		cp.Kind,
		cp.Name,
		cp.Email,
		cp.Phone,
		cp.Address,
		cp.TaxNumber,
		cp.IsActive,
		cp.CreatedAt,
		cp.CreatedBy,
		cp.LastUpdatedAt,
		cp.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save counterparty "+cp.CounterpartyID, err)
	}
	return nil
}

// FindCounterpartyByID retrieves a counterparty by its ID.
func (r *PgxCounterpartyRepository) FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE counterparty_id = $1;`
	cp, err := scanCounterparty(r.Pool.QueryRow(ctx, query, counterpartyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find counterparty by ID "+counterpartyID, err)
	}
	return cp, nil
}

// ListCounterparties retrieves a paginated list of active counterparties of one kind.
func (r *PgxCounterpartyRepository) ListCounterparties(ctx context.Context, kind domain.CounterpartyKind, limit int, offset int) ([]domain.Counterparty, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + counterpartyColumns + `
		FROM counterparties
		WHERE kind = $1 AND is_active = TRUE
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, kind, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query counterparties", err)
	}
	defer rows.Close()

	cps := []domain.Counterparty{}
	for rows.Next() {
		cp, err := scanCounterparty(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan counterparty row", err)
		}
		cps = append(cps, *cp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating counterparty rows", err)
	}
	return cps, nil
}

// UpdateCounterparty updates an existing counterparty's details.
func (r *PgxCounterpartyRepository) UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error {
	query := `
		UPDATE counterparties SET
			name = $2, email = $3, phone = $4, address = $5, tax_number = $6,
			is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE counterparty_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		cp.CounterpartyID,
		cp.Name,
		cp.Email,
		cp.Phone,
		cp.Address,
		cp.TaxNumber,
		cp.IsActive,
		cp.LastUpdatedAt,
		cp.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update counterparty "+cp.CounterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCounterparty marks a counterparty as inactive.
func (r *PgxCounterpartyRepository) DeactivateCounterparty(ctx context.Context, counterpartyID string, userID string, now time.Time) error {
	query := `
		UPDATE counterparties
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE counterparty_id = $1 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, counterpartyID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate counterparty "+counterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
