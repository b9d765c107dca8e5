package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/petrobook/petrobook/internal/core/billing"
	portsrepo "github.com/petrobook/petrobook/internal/core/ports/repositories"
	portssvc "github.com/petrobook/petrobook/internal/core/ports/services"
)

// dashboardService implements the DashboardSvc interface
type dashboardService struct {
	BaseService
	dashboardRepo portsrepo.DashboardRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo portsrepo.DashboardRepository) portssvc.DashboardSvc {
	return &dashboardService{dashboardRepo: repo}
}

// Ensure dashboardService implements the DashboardSvc interface
var _ portssvc.DashboardSvc = (*dashboardService)(nil)

// GetSummary fetches the raw invoice and payment rows for the range and
// hands them to the pure roll-up. The service does no arithmetic itself.
func (s *dashboardService) GetSummary(ctx context.Context, from time.Time, to time.Time) (billing.Summary, error) {
	invoices, err := s.dashboardRepo.FetchInvoiceRecords(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch invoice records for dashboard",
			slog.Time("from", from), slog.Time("to", to))
		return billing.Summary{}, fmt.Errorf("failed to fetch invoice records: %w", err)
	}

	payments, err := s.dashboardRepo.FetchPaymentRecords(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch payment records for dashboard",
			slog.Time("from", from), slog.Time("to", to))
		return billing.Summary{}, fmt.Errorf("failed to fetch payment records: %w", err)
	}

	summary := billing.Summarize(invoices, payments)
	s.LogDebug(ctx, "Dashboard summary computed",
		slog.Int("invoice_count", len(invoices)),
		slog.Int("payment_count", len(payments)))
	return summary, nil
}
