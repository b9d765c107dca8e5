package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/petrobook/petrobook/internal/apperrors"
	"github.com/petrobook/petrobook/internal/core/domain"
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/dto"
)

// counterpartyService implements the CounterpartySvcFacade interface
type counterpartyService struct {
	BaseService
	counterpartyRepo portsrepo.CounterpartyRepositoryFacade
}

// NewCounterpartyService creates a new counterparty service
func NewCounterpartyService(repo portsrepo.CounterpartyRepositoryFacade) portssvc.CounterpartySvcFacade {
	return &counterpartyService{counterpartyRepo: repo}
}

// Ensure counterpartyService implements the CounterpartySvcFacade interface
var _ portssvc.CounterpartySvcFacade = (*counterpartyService)(nil)

func (s *counterpartyService) CreateCounterparty(ctx context.Context, kind domain.CounterpartyKind, req dto.CreateCounterpartyRequest, creatorUserID string) (*domain.Counterparty, error) {
	now := time.Now()
	cp := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		Kind:           kind,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		TaxNumber:      req.TaxNumber,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.counterpartyRepo.SaveCounterparty(ctx, cp); err != nil {
		s.LogError(ctx, err, "Failed to save counterparty in repository",
			slog.String("counterparty_id", cp.CounterpartyID))
		return nil, err
	}

	s.LogInfo(ctx, "Counterparty created successfully",
		slog.String("counterparty_id", cp.CounterpartyID),
		slog.String("kind", string(kind)))
	return &cp, nil
}

func (s *counterpartyService) GetCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, counterpartyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find counterparty by ID",
				slog.String("counterparty_id", counterpartyID))
		}
		return nil, err
	}
	return cp, nil
}

func (s *counterpartyService) ListCounterparties(ctx context.Context, kind domain.CounterpartyKind, limit int, offset int) ([]domain.Counterparty, error) {
	cps, err := s.counterpartyRepo.ListCounterparties(ctx, kind, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list counterparties",
			slog.String("kind", string(kind)), slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list counterparties: %w", err)
	}
	if cps == nil {
		cps = []domain.Counterparty{}
	}
	return cps, nil
}

func (s *counterpartyService) UpdateCounterparty(ctx context.Context, counterpartyID string, req dto.UpdateCounterpartyRequest, updaterUserID string) (*domain.Counterparty, error) {
	cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, counterpartyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find counterparty for update",
				slog.String("counterparty_id", counterpartyID))
		}
		return nil, err
	}

	if req.Name != nil {
		cp.Name = *req.Name
	}
	if req.Email != nil {
		cp.Email = *req.Email
	}
	if req.Phone != nil {
		cp.Phone = *req.Phone
	}
	if req.Address != nil {
		cp.Address = *req.Address
	}
	if req.TaxNumber != nil {
		cp.TaxNumber = *req.TaxNumber
	}
	if req.IsActive != nil {
		cp.IsActive = *req.IsActive
	}

	cp.LastUpdatedAt = time.Now()
	cp.LastUpdatedBy = updaterUserID

	if err := s.counterpartyRepo.UpdateCounterparty(ctx, *cp); err != nil {
		s.LogError(ctx, err, "Failed to update counterparty in repository",
			slog.String("counterparty_id", counterpartyID))
		return nil, err
	}

	s.LogInfo(ctx, "Counterparty updated successfully",
		slog.String("counterparty_id", counterpartyID))
	return cp, nil
}

func (s *counterpartyService) DeactivateCounterparty(ctx context.Context, counterpartyID string, deleterUserID string) error {
	now := time.Now()
	if err := s.counterpartyRepo.DeactivateCounterparty(ctx, counterpartyID, deleterUserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate counterparty",
				slog.String("counterparty_id", counterpartyID))
		}
		return err
	}
	s.LogInfo(ctx, "Counterparty deactivated successfully",
		slog.String("counterparty_id", counterpartyID))
	return nil
}
