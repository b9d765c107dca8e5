package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is one entry of the chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"` // Primary Key (UUID)
	Code            string          `json:"code"`      // User-facing account code, e.g. "1200"
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	CurrencyCode    string          `json:"currencyCode"`
	ParentAccountID string          `json:"parentAccountID"` // Nullable, self-referencing
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"` // Persisted display balance
	AuditFields
}
