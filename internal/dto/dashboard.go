package dto

import (
	"github.com/petrobook/petrobook/internal/core/billing"
)

// DashboardParams defines query parameters for the dashboard summary.
// Dates are accepted as YYYY-MM-DD; both default to a trailing
// 12-month window when omitted.
type DashboardParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// MonthlyPointResponse is one month bucket in the cashflow series.
type MonthlyPointResponse struct {
	Month    string  `json:"month"`
	Invoiced float64 `json:"invoiced"`
	Paid     float64 `json:"paid"`
}

// CounterpartyTotalResponse is one row of the top-counterparty ranking.
type CounterpartyTotalResponse struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// DashboardResponse is the aggregated summary returned for the
// dashboard view. Monetary values are rounded to two decimals at this
// boundary only.
type DashboardResponse struct {
	TotalInvoiced     float64                     `json:"totalInvoiced"`
	TotalPaid         float64                     `json:"totalPaid"`
	TotalUnpaid       float64                     `json:"totalUnpaid"`
	Monthly           []MonthlyPointResponse      `json:"monthly"`
	StatusBreakdown   map[string]float64          `json:"statusBreakdown"`
	TopCounterparties []CounterpartyTotalResponse `json:"topCounterparties"`
}

// ToDashboardResponse converts a computed summary to the response DTO.
func ToDashboardResponse(s billing.Summary) DashboardResponse {
	resp := DashboardResponse{
		TotalInvoiced:     billing.Round2(s.TotalInvoiced),
		TotalPaid:         billing.Round2(s.TotalPaid),
		TotalUnpaid:       billing.Round2(s.UnpaidAmount),
		Monthly:           make([]MonthlyPointResponse, 0, len(s.MonthlySeries)),
		StatusBreakdown:   make(map[string]float64, len(s.StatusBreakdown)),
		TopCounterparties: make([]CounterpartyTotalResponse, 0, len(s.TopCounterparties)),
	}
	for status, total := range s.StatusBreakdown {
		resp.StatusBreakdown[status] = billing.Round2(total)
	}
	for _, m := range s.MonthlySeries {
		resp.Monthly = append(resp.Monthly, MonthlyPointResponse{
			Month:    m.Month,
			Invoiced: billing.Round2(m.Invoiced),
			Paid:     billing.Round2(m.Paid),
		})
	}
	for _, c := range s.TopCounterparties {
		resp.TopCounterparties = append(resp.TopCounterparties, CounterpartyTotalResponse{
			Name:  c.Name,
			Total: billing.Round2(c.Total),
		})
	}
	return resp
}
