package services

import (
	"context"

	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/petrobook/petrobook/internal/dto"
)

// CounterpartyReaderSvc defines read operations for customers and suppliers
type CounterpartyReaderSvc interface {
	// GetCounterpartyByID retrieves a specific counterparty by its unique identifier.
	GetCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error)

	// ListCounterparties retrieves a paginated list of counterparties of the given kind.
	ListCounterparties(ctx context.Context, kind domain.CounterpartyKind, limit int, offset int) ([]domain.Counterparty, error)
}

// CounterpartyWriterSvc defines write operations for customers and suppliers
type CounterpartyWriterSvc interface {
	// CreateCounterparty persists a new counterparty.
	CreateCounterparty(ctx context.Context, kind domain.CounterpartyKind, req dto.CreateCounterpartyRequest, creatorUserID string) (*domain.Counterparty, error)

	// UpdateCounterparty updates an existing counterparty's details.
	UpdateCounterparty(ctx context.Context, counterpartyID string, req dto.UpdateCounterpartyRequest, updaterUserID string) (*domain.Counterparty, error)

	// DeactivateCounterparty marks a counterparty as inactive.
	DeactivateCounterparty(ctx context.Context, counterpartyID string, deleterUserID string) error
}

// CounterpartySvcFacade combines all counterparty-related service interfaces
type CounterpartySvcFacade interface {
	CounterpartyReaderSvc
	CounterpartyWriterSvc
}
