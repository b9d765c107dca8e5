package billing

import (
	"sort"
	"time"
)

// monthKeyFormat renders "short month + 2-digit year", e.g. "Mar 24".
// The year suffix keeps the same calendar month of different years in
// distinct buckets.
const monthKeyFormat = "Jan 06"

// InvoiceRecord is the boundary-mapped view of an invoice row as the
// dashboard needs it. Services map storage rows into this shape before
// calling Summarize, isolating the roll-up from schema drift.
type InvoiceRecord struct {
	Date         time.Time
	Total        float64
	Status       string // Empty means not set; bucketed as "draft"
	Counterparty string // Empty/unjoined names bucket as "Unknown"
}

// PaymentRecord is the boundary-mapped view of a payment row.
type PaymentRecord struct {
	Date   time.Time
	Amount float64
}

// MonthlyPoint is one bucket of the dashboard's monthly series.
type MonthlyPoint struct {
	Month    string  `json:"month"` // e.g. "Mar 24"
	Invoiced float64 `json:"invoiced"`
	Paid     float64 `json:"paid"`
}

// CounterpartyTotal is one row of the top-counterparties list.
type CounterpartyTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Summary is the dashboard roll-up over invoices and payments.
type Summary struct {
	TotalInvoiced     float64            `json:"totalInvoiced"`
	TotalPaid         float64            `json:"totalPaid"`
	UnpaidAmount      float64            `json:"unpaidAmount"` // May be negative on overpayment
	MonthlySeries     []MonthlyPoint     `json:"monthlySeries"`
	StatusBreakdown   map[string]float64 `json:"statusBreakdown"`
	TopCounterparties []CounterpartyTotal `json:"topCounterparties"`
}

// topCounterpartyLimit caps the top-counterparties list.
const topCounterpartyLimit = 5

// Summarize rolls invoices and payments up into the dashboard summary.
// Monthly buckets appear in first-encounter order (invoices first,
// then payments). Counterparty ties keep encounter order: the sort is
// stable and strictly by summed total.
func Summarize(invoices []InvoiceRecord, payments []PaymentRecord) Summary {
	s := Summary{
		StatusBreakdown: make(map[string]float64),
	}

	monthIndex := make(map[string]int)
	bucket := func(date time.Time) *MonthlyPoint {
		key := date.Format(monthKeyFormat)
		i, ok := monthIndex[key]
		if !ok {
			i = len(s.MonthlySeries)
			monthIndex[key] = i
			s.MonthlySeries = append(s.MonthlySeries, MonthlyPoint{Month: key})
		}
		return &s.MonthlySeries[i]
	}

	partyIndex := make(map[string]int)
	var parties []CounterpartyTotal

	for _, inv := range invoices {
		s.TotalInvoiced += inv.Total
		bucket(inv.Date).Invoiced += inv.Total

		status := inv.Status
		if status == "" {
			status = "draft"
		}
		s.StatusBreakdown[status] += inv.Total

		name := inv.Counterparty
		if name == "" {
			name = "Unknown"
		}
		i, ok := partyIndex[name]
		if !ok {
			i = len(parties)
			partyIndex[name] = i
			parties = append(parties, CounterpartyTotal{Name: name})
		}
		parties[i].Total += inv.Total
	}

	for _, p := range payments {
		s.TotalPaid += p.Amount
		bucket(p.Date).Paid += p.Amount
	}

	s.UnpaidAmount = s.TotalInvoiced - s.TotalPaid

	sort.SliceStable(parties, func(i, j int) bool {
		return parties[i].Total > parties[j].Total
	})
	if len(parties) > topCounterpartyLimit {
		parties = parties[:topCounterpartyLimit]
	}
	s.TopCounterparties = parties

	return s
}
