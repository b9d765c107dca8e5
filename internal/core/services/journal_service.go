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

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, []domain.JournalLine, error) {
	now := time.Now()
	journalID := uuid.NewString()

	accountIDs := make([]string, 0, len(req.Lines))
	lines := make([]domain.JournalLine, 0, len(req.Lines))
	for i, in := range req.Lines {
		accountIDs = append(accountIDs, in.AccountID)
		lines = append(lines, domain.JournalLine{
			JournalLineID: uuid.NewString(),
			JournalID:     journalID,
			AccountID:     in.AccountID,
			Position:      i,
			Debit:         in.DebitAmount(),
			Credit:        in.CreditAmount(),
			Notes:         in.Notes,
		})
	}

	// Every referenced account must exist and be active.
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve accounts for journal")
		return nil, nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			s.LogError(ctx, apperrors.ErrNotFound, "Journal references unknown account",
				slog.String("account_id", id))
			return nil, nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
		if !account.IsActive {
			s.LogError(ctx, apperrors.ErrValidation, "Journal references inactive account",
				slog.String("account_id", id))
			return nil, nil, fmt.Errorf("account %s is inactive: %w", id, apperrors.ErrValidation)
		}
	}

	journal := domain.Journal{
		JournalID:   journalID,
		JournalDate: req.JournalDate,
		Reference:   req.Reference,
		Description: req.Description,
		Status:      domain.JournalStatusPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Unbalanced journals are stored and surfaced via the balanced flag;
	// they are never rejected.
	if !domain.Balanced(lines) {
		s.LogInfo(ctx, "Journal is unbalanced",
			slog.String("journal_id", journalID))
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal in repository",
			slog.String("journal_id", journalID))
		return nil, nil, err
	}

	s.applyBalanceDeltas(ctx, lines, creatorUserID, now)

	s.LogInfo(ctx, "Journal created successfully",
		slog.String("journal_id", journalID),
		slog.Int("line_count", len(lines)))
	return &journal, lines, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, []domain.JournalLine, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by ID",
				slog.String("journal_id", journalID))
		}
		return nil, nil, err
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines",
			slog.String("journal_id", journalID))
		return nil, nil, fmt.Errorf("failed to load journal lines: %w", err)
	}

	return journal, lines, nil
}

func (s *journalService) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	journals, next, err := s.journalRepo.ListJournals(ctx, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.Int("limit", limit))
		return nil, nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if journals == nil {
		journals = []domain.Journal{}
	}
	return journals, next, nil
}

func (s *journalService) ReverseJournal(ctx context.Context, journalID string, updaterUserID string) (*domain.Journal, []domain.JournalLine, error) {
	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal for reversal",
				slog.String("journal_id", journalID))
		}
		return nil, nil, err
	}
	if original.Status == domain.JournalStatusReversed {
		return nil, nil, fmt.Errorf("journal already reversed: %w", apperrors.ErrValidation)
	}

	originalLines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines for reversal",
			slog.String("journal_id", journalID))
		return nil, nil, fmt.Errorf("failed to load journal lines: %w", err)
	}

	now := time.Now()
	reversalID := uuid.NewString()
	reversal := domain.Journal{
		JournalID:   reversalID,
		JournalDate: now,
		Reference:   original.Reference,
		Description: fmt.Sprintf("Reversal of %s", original.JournalID),
		Status:      domain.JournalStatusPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}

	reversalLines := make([]domain.JournalLine, 0, len(originalLines))
	for i, line := range originalLines {
		reversalLines = append(reversalLines, domain.JournalLine{
			JournalLineID: uuid.NewString(),
			JournalID:     reversalID,
			AccountID:     line.AccountID,
			Position:      i,
			Debit:         line.Credit,
			Credit:        line.Debit,
			Notes:         line.Notes,
		})
	}

	if err := s.journalRepo.SaveJournal(ctx, reversal, reversalLines); err != nil {
		s.LogError(ctx, err, "Failed to save reversing journal",
			slog.String("journal_id", journalID))
		return nil, nil, err
	}

	if err := s.journalRepo.UpdateJournalStatus(ctx, journalID, domain.JournalStatusReversed, updaterUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark journal as reversed",
			slog.String("journal_id", journalID))
		return nil, nil, err
	}

	s.applyBalanceDeltas(ctx, reversalLines, updaterUserID, now)

	s.LogInfo(ctx, "Journal reversed successfully",
		slog.String("journal_id", journalID),
		slog.String("reversal_id", reversalID))
	return &reversal, reversalLines, nil
}

// applyBalanceDeltas adjusts each referenced account's display balance
// by debit minus credit. Failures are logged but do not fail the
// journal write; the balance is a derived convenience figure.
func (s *journalService) applyBalanceDeltas(ctx context.Context, lines []domain.JournalLine, userID string, now time.Time) {
	for _, line := range lines {
		delta := line.Debit.Sub(line.Credit)
		if delta.IsZero() {
			continue
		}
		if err := s.accountRepo.UpdateAccountBalance(ctx, line.AccountID, delta, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to update account balance",
				slog.String("account_id", line.AccountID))
		}
	}
}
