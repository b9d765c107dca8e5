package repositories

import (
	"context"
	"time"

	"github.com/petrobook/petrobook/internal/core/domain"
)

// CounterpartyReader defines read operations for counterparty data.
type CounterpartyReader interface {
	// FindCounterpartyByID retrieves a counterparty by its unique identifier.
	FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error)

	// ListCounterparties retrieves a paginated list of counterparties of one kind.
	ListCounterparties(ctx context.Context, kind domain.CounterpartyKind, limit int, offset int) ([]domain.Counterparty, error)
}

// CounterpartyWriter defines write operations for counterparty data.
type CounterpartyWriter interface {
	// SaveCounterparty persists a new counterparty.
	SaveCounterparty(ctx context.Context, cp domain.Counterparty) error

	// UpdateCounterparty updates an existing counterparty's details.
	UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error

	// DeactivateCounterparty marks a counterparty as inactive.
	DeactivateCounterparty(ctx context.Context, counterpartyID string, userID string, now time.Time) error
}

// CounterpartyRepositoryFacade combines all counterparty repository interfaces.
type CounterpartyRepositoryFacade interface {
	CounterpartyReader
	CounterpartyWriter
}
