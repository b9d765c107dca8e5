package services

import (
	"context"

	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/petrobook/petrobook/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal entry and its lines.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, []domain.JournalLine, error)

	// ListJournals retrieves a paginated list of journal entries.
	// It returns the journals and a token for fetching the next page, if any.
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateJournal persists a new journal entry with its lines and applies
	// the line amounts to the affected account balances.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, []domain.JournalLine, error)

	// ReverseJournal creates a reversing entry for an existing journal and
	// marks the original as reversed.
	ReverseJournal(ctx context.Context, journalID string, updaterUserID string) (*domain.Journal, []domain.JournalLine, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
