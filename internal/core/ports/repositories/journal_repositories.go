package repositories

import (
	"context"
	"time"

	"github.com/petrobook/petrobook/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindJournalByID retrieves a journal header by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindLinesByJournalID retrieves the ordered lines of a journal.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournals retrieves a keyset-paginated list of journals, newest first.
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveJournal persists a journal header and its lines in one database
	// transaction.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error

	// UpdateJournalStatus flips a journal's status (e.g. to REVERSED).
	UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends the facade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
