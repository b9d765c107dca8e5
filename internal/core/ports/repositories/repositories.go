package repositories

// RepositoryProvider bundles all repository implementations for
// injection into the service layer.
type RepositoryProvider struct {
	DocumentRepo     DocumentRepositoryWithTx
	CounterpartyRepo CounterpartyRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepositoryWithTx
	PaymentRepo      PaymentRepositoryFacade
	DashboardRepo    DashboardRepository
	UserRepo         UserRepository
}
