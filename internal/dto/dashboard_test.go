package dto

import (
	"testing"

	"github.com/petrobook/petrobook/internal/core/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDashboardResponse_MapsSummaryFields(t *testing.T) {
	s := billing.Summary{
		TotalInvoiced: 300.006,
		TotalPaid:     200,
		UnpaidAmount:  100.006,
		MonthlySeries: []billing.MonthlyPoint{
			{Month: "Mar 26", Invoiced: 300.006, Paid: 200},
		},
		StatusBreakdown: map[string]float64{"paid": 200, "draft": 100.006},
		TopCounterparties: []billing.CounterpartyTotal{
			{Name: "Globex", Total: 200},
			{Name: "Acme", Total: 100.006},
		},
	}

	resp := ToDashboardResponse(s)

	assert.Equal(t, 300.01, resp.TotalInvoiced)
	assert.Equal(t, 200.0, resp.TotalPaid)
	assert.Equal(t, 100.01, resp.TotalUnpaid)
	require.Len(t, resp.Monthly, 1)
	assert.Equal(t, "Mar 26", resp.Monthly[0].Month)
	assert.Equal(t, 300.01, resp.Monthly[0].Invoiced)
	assert.Equal(t, map[string]float64{"paid": 200, "draft": 100.01}, resp.StatusBreakdown)
	require.Len(t, resp.TopCounterparties, 2)
	assert.Equal(t, "Globex", resp.TopCounterparties[0].Name)
	assert.Equal(t, 100.01, resp.TopCounterparties[1].Total)
}

func TestToDashboardResponse_EmptySummary(t *testing.T) {
	resp := ToDashboardResponse(billing.Summary{})

	assert.Zero(t, resp.TotalInvoiced)
	assert.Zero(t, resp.TotalUnpaid)
	assert.Empty(t, resp.Monthly)
	assert.Empty(t, resp.StatusBreakdown)
	assert.Empty(t, resp.TopCounterparties)
}
