// internal/domain/summary.go
package domain

import "github.com/shopspring/decimal"

// CategoryTotal aggregates one category's entries in major currency units.
type CategoryTotal struct {
	Category string          `json:"category"`
	Type     TransactionType `json:"type"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// Summary aggregates a user's transactions. Amounts are stored in minor
// units; the summary converts them to major units for presentation.
type Summary struct {
	Income     decimal.Decimal `json:"income"`
	Expenses   decimal.Decimal `json:"expenses"`
	Net        decimal.Decimal `json:"net"`
	Categories []CategoryTotal `json:"categories"`
}
