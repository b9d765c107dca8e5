package billing_test

import (
	"testing"
	"time"

	"github.com/petrobook/petrobook/internal/core/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize_Totals(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		{Date: date(2024, time.March, 1), Total: 1000, Status: "sent", Counterparty: "Acme"},
		{Date: date(2024, time.April, 2), Total: 500, Status: "paid", Counterparty: "Bolt"},
	}
	payments := []billing.PaymentRecord{
		{Date: date(2024, time.April, 10), Amount: 400},
	}

	s := billing.Summarize(invoices, payments)
	assert.Equal(t, 1500.0, s.TotalInvoiced)
	assert.Equal(t, 400.0, s.TotalPaid)
	assert.Equal(t, 1100.0, s.UnpaidAmount)
}

func TestSummarize_UnpaidMayGoNegative(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		{Date: date(2024, time.March, 1), Total: 100, Status: "paid", Counterparty: "Acme"},
	}
	payments := []billing.PaymentRecord{
		{Date: date(2024, time.March, 5), Amount: 150},
	}

	s := billing.Summarize(invoices, payments)
	assert.Equal(t, -50.0, s.UnpaidAmount) // Overpayment is not clamped
}

func TestSummarize_MonthlyBucketsDistinguishYears(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		{Date: date(2024, time.March, 1), Total: 100, Counterparty: "Acme"},
		{Date: date(2025, time.March, 1), Total: 200, Counterparty: "Acme"},
	}

	s := billing.Summarize(invoices, nil)
	require.Len(t, s.MonthlySeries, 2)
	assert.Equal(t, "Mar 24", s.MonthlySeries[0].Month)
	assert.Equal(t, "Mar 25", s.MonthlySeries[1].Month)
	assert.Equal(t, 100.0, s.MonthlySeries[0].Invoiced)
	assert.Equal(t, 200.0, s.MonthlySeries[1].Invoiced)
}

func TestSummarize_PaymentsShareInvoiceBuckets(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		{Date: date(2024, time.March, 1), Total: 100, Counterparty: "Acme"},
	}
	payments := []billing.PaymentRecord{
		{Date: date(2024, time.March, 20), Amount: 60},
		{Date: date(2024, time.May, 2), Amount: 40},
	}

	s := billing.Summarize(invoices, payments)
	require.Len(t, s.MonthlySeries, 2)
	assert.Equal(t, "Mar 24", s.MonthlySeries[0].Month)
	assert.Equal(t, 60.0, s.MonthlySeries[0].Paid)
	assert.Equal(t, "May 24", s.MonthlySeries[1].Month)
	assert.Equal(t, 40.0, s.MonthlySeries[1].Paid)
	assert.Zero(t, s.MonthlySeries[1].Invoiced)
}

func TestSummarize_StatusBreakdownDefaultsToDraft(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		{Date: date(2024, time.March, 1), Total: 100, Status: "", Counterparty: "Acme"},
		{Date: date(2024, time.March, 2), Total: 50, Status: "sent", Counterparty: "Acme"},
		{Date: date(2024, time.March, 3), Total: 25, Status: "", Counterparty: "Bolt"},
	}

	s := billing.Summarize(invoices, nil)
	assert.Equal(t, 125.0, s.StatusBreakdown["draft"])
	assert.Equal(t, 50.0, s.StatusBreakdown["sent"])
}

func TestSummarize_TopCounterparties(t *testing.T) {
	var invoices []billing.InvoiceRecord
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, name := range names {
		invoices = append(invoices, billing.InvoiceRecord{
			Date:         date(2024, time.March, 1+i),
			Total:        float64((i + 1) * 10),
			Counterparty: name,
		})
	}

	s := billing.Summarize(invoices, nil)
	require.Len(t, s.TopCounterparties, 5) // Never more than 5
	assert.Equal(t, "G", s.TopCounterparties[0].Name)
	assert.Equal(t, 70.0, s.TopCounterparties[0].Total)
	assert.Equal(t, "C", s.TopCounterparties[4].Name)

	// Sorted descending throughout.
	for i := 1; i < len(s.TopCounterparties); i++ {
		assert.GreaterOrEqual(t, s.TopCounterparties[i-1].Total, s.TopCounterparties[i].Total)
	}
}

func TestSummarize_TiesKeepEncounterOrder(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		{Date: date(2024, time.March, 1), Total: 100, Counterparty: "Zeta"},
		{Date: date(2024, time.March, 2), Total: 100, Counterparty: "Alpha"},
	}

	s := billing.Summarize(invoices, nil)
	require.Len(t, s.TopCounterparties, 2)
	assert.Equal(t, "Zeta", s.TopCounterparties[0].Name)
	assert.Equal(t, "Alpha", s.TopCounterparties[1].Name)
}

func TestSummarize_UnknownCounterparty(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		{Date: date(2024, time.March, 1), Total: 100, Counterparty: ""},
	}

	s := billing.Summarize(invoices, nil)
	require.Len(t, s.TopCounterparties, 1)
	assert.Equal(t, "Unknown", s.TopCounterparties[0].Name)
}

func TestSummarize_Empty(t *testing.T) {
	s := billing.Summarize(nil, nil)
	assert.Zero(t, s.TotalInvoiced)
	assert.Zero(t, s.TotalPaid)
	assert.Zero(t, s.UnpaidAmount)
	assert.Empty(t, s.MonthlySeries)
	assert.Empty(t, s.TopCounterparties)
	assert.Empty(t, s.StatusBreakdown)
}
