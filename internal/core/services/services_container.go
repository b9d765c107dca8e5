package services

import (
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
	"github.com/petrobook/petrobook/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Exporter and email come first since document delivery depends on them.
	container.Exporter = NewExportService(repos.DocumentRepo, cfg)
	container.Email = NewEmailService(cfg)

	container.Document = NewDocumentService(
		repos.DocumentRepo,
		WithCounterpartyReader(repos.CounterpartyRepo),
		WithExporter(container.Exporter),
		WithEmailSender(container.Email),
	)

	container.Counterparty = NewCounterpartyService(repos.CounterpartyRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.DocumentRepo)
	container.Dashboard = NewDashboardService(repos.DashboardRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
