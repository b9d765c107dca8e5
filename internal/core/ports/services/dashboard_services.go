package services

import (
	"context"
	"time"

	"github.com/petrobook/petrobook/internal/core/billing"
)

// DashboardSvc defines aggregation operations for the dashboard view.
type DashboardSvc interface {
	// GetSummary computes invoiced/paid totals, monthly cashflow buckets and
	// the top counterparties for the given date range.
	GetSummary(ctx context.Context, from time.Time, to time.Time) (billing.Summary, error)
}
