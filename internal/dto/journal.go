package dto

import (
	"time"

	"github.com/petrobook/petrobook/internal/core/billing"
	"github.com/petrobook/petrobook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineInput is one debit/credit row as submitted. Debit and
// Credit arrive as free text from the entry form; non-numeric values
// coerce to zero, the same policy the document aggregator applies.
type JournalLineInput struct {
	AccountID string `json:"accountID" binding:"required"`
	Debit     string `json:"debit"`
	Credit    string `json:"credit"`
	Notes     string `json:"notes"`
}

// DebitAmount returns the coerced debit value as a decimal.
func (l JournalLineInput) DebitAmount() decimal.Decimal {
	return decimal.NewFromFloat(billing.Coerce(l.Debit))
}

// CreditAmount returns the coerced credit value as a decimal.
func (l JournalLineInput) CreditAmount() decimal.Decimal {
	return decimal.NewFromFloat(billing.Coerce(l.Credit))
}

// CreateJournalRequest defines the data needed to record a journal entry.
type CreateJournalRequest struct {
	JournalDate time.Time          `json:"journalDate" binding:"required"`
	Reference   string             `json:"reference"`
	Description string             `json:"description"`
	Lines       []JournalLineInput `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse mirrors a stored journal line.
type JournalLineResponse struct {
	JournalLineID string          `json:"journalLineID"`
	AccountID     string          `json:"accountID"`
	Position      int             `json:"position"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Notes         string          `json:"notes"`
}

// JournalResponse defines the data returned for a journal entry.
// Balanced is display information only; unbalanced journals are stored
// and flagged, never rejected.
type JournalResponse struct {
	JournalID   string                `json:"journalID"`
	JournalDate time.Time             `json:"journalDate"`
	Reference   string                `json:"reference"`
	Description string                `json:"description"`
	Status      domain.JournalStatus  `json:"status"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	Balanced    bool                  `json:"balanced"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// ToJournalResponse converts a journal header and its lines to the response DTO.
func ToJournalResponse(j *domain.Journal, lines []domain.JournalLine) JournalResponse {
	resp := JournalResponse{
		JournalID:   j.JournalID,
		JournalDate: j.JournalDate,
		Reference:   j.Reference,
		Description: j.Description,
		Status:      j.Status,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Balanced:    domain.Balanced(lines),
		CreatedAt:   j.CreatedAt,
	}
	for _, l := range lines {
		resp.TotalDebit = resp.TotalDebit.Add(l.Debit)
		resp.TotalCredit = resp.TotalCredit.Add(l.Credit)
		resp.Lines = append(resp.Lines, JournalLineResponse{
			JournalLineID: l.JournalLineID,
			AccountID:     l.AccountID,
			Position:      l.Position,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Notes:         l.Notes,
		})
	}
	return resp
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse wraps the list of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
