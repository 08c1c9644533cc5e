// internal/domain/transaction.go
package domain

import "time"

// TransactionType tags an entry as money coming in or going out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the known tags.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single bookkeeping entry owned by one user.
// The owner is stamped at creation and never reassigned.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`                   // Primary key, BIGSERIAL in DB
	Amount      int64           `db:"amount" json:"amount"`           // Positive amount in currency minor units
	Category    string          `db:"category" json:"category"`       // Category label, non-empty
	Description *string         `db:"description" json:"description"` // Optional free-text description
	Date        Date            `db:"date" json:"date"`               // Calendar date of the entry
	Type        TransactionType `db:"type" json:"type"`               // income or expense, immutable
	OwnerID     int64           `db:"owner_id" json:"owner_id"`       // Foreign key to User, immutable
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`   // Timestamp of record creation
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(ownerID, amount int64, category string, description *string, date Date, txType TransactionType) *Transaction {
	return &Transaction{
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
		Type:        txType,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}
}

// TransactionFilter narrows a listing to exact type and/or category matches.
// Empty fields mean no constraint; set fields combine with AND semantics.
type TransactionFilter struct {
	Type     string
	Category string
}
