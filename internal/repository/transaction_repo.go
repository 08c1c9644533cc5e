// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"finledger/internal/domain"
)

// TransactionRepository defines the interface for transaction data
// operations. Every read and mutation is constrained by owner, so a caller
// can never see or touch another user's records.
type TransactionRepository interface {
	// CreateTransaction inserts a new record and fills in its assigned ID.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionByIDAndOwner retrieves one record by ID, constrained to
	// the owner. Returns util.ErrNotFound when absent or owned by someone
	// else; the two cases are indistinguishable.
	GetTransactionByIDAndOwner(ctx context.Context, q DBExecutor, id, ownerID int64) (*domain.Transaction, error)
	// ListTransactionsByOwner retrieves all of an owner's records, narrowed
	// by the optional exact-match filters.
	ListTransactionsByOwner(ctx context.Context, q DBExecutor, ownerID int64, filter domain.TransactionFilter) ([]domain.Transaction, error)
	// UpdateTransaction overwrites amount, category, description and date of
	// a record matched by ID and owner. Returns util.ErrNotFound when no row
	// matches.
	UpdateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// DeleteTransaction removes a record matched by ID and owner. Returns
	// util.ErrNotFound when no row matches.
	DeleteTransaction(ctx context.Context, q DBExecutor, id, ownerID int64) error
}
