package model

import "github.com/shopspring/decimal"

// Expense is an independent cost ledger entry. No stock or debt interaction.
type Expense struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"` // YYYY-MM-DD
}
