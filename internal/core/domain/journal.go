package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalStatusPosted   JournalStatus = "POSTED"
	JournalStatusReversed JournalStatus = "REVERSED"
)

// Journal is a manual journal entry: a dated header plus debit/credit
// lines against accounts. Balance is checked for display only; an
// unbalanced journal is flagged, not rejected.
type Journal struct {
	JournalID   string        `json:"journalID"` // Primary Key (UUID)
	JournalDate time.Time     `json:"journalDate"`
	Reference   string        `json:"reference"` // Nullable
	Description string        `json:"description"`
	Status      JournalStatus `json:"status"`
	AuditFields
}

// JournalLine is a single debit or credit row within a journal entry.
// Exactly one of Debit/Credit should be non-zero per line; the input
// forms are free-text, so either side may arrive as zero after
// coercion and is persisted as-is.
type JournalLine struct {
	JournalLineID string          `json:"journalLineID"` // Primary Key (UUID)
	JournalID     string          `json:"journalID"`     // FK -> journals.journal_id
	AccountID     string          `json:"accountID"`     // FK -> accounts.account_id
	Position      int             `json:"position"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Notes         string          `json:"notes"`
}

// Balanced reports whether the lines' debits equal their credits.
func Balanced(lines []JournalLine) bool {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits.Equal(credits)
}
