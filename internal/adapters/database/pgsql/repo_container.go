package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository to the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo:     newPgxDocumentRepository(dbPool),
		CounterpartyRepo: newPgxCounterpartyRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		DashboardRepo:    newPgxDashboardRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
