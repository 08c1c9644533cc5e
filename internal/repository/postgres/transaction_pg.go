// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"

	"github.com/jmoiron/sqlx"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	// Methods receive a DBExecutor directly instead of holding *sqlx.DB.
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new transaction record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (amount, category, description, date, type, owner_id, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		transaction.Amount,
		transaction.Category,
		transaction.Description,
		transaction.Date,
		transaction.Type,
		transaction.OwnerID,
		transaction.CreatedAt,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionByIDAndOwner retrieves a single transaction constrained by
// owner. A record owned by someone else is reported exactly like a missing
// one.
func (r *TransactionRepository) GetTransactionByIDAndOwner(ctx context.Context, q repository.DBExecutor, id, ownerID int64) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT id, amount, category, description, date, type, owner_id, created_at
              FROM transactions WHERE id = $1 AND owner_id = $2`
	err := q.GetContext(ctx, &transaction, query, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}
	return &transaction, nil
}

// ListTransactionsByOwner retrieves all transactions of an owner, optionally
// narrowed by exact-match type and category filters (AND semantics).
func (r *TransactionRepository) ListTransactionsByOwner(ctx context.Context, q repository.DBExecutor, ownerID int64, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}

	query := `SELECT id, amount, category, description, date, type, owner_id, created_at
              FROM transactions WHERE owner_id = $1`
	args := []interface{}{ownerID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY date DESC, id DESC"

	if err := q.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list transactions for owner %d: %w", ownerID, err)
	}
	return transactions, nil
}

// UpdateTransaction overwrites the mutable fields of a transaction matched
// by ID and owner. ID, type and owner are immutable.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `UPDATE transactions SET amount = $1, category = $2, description = $3, date = $4
              WHERE id = $5 AND owner_id = $6`
	result, err := q.ExecContext(ctx, query,
		transaction.Amount,
		transaction.Category,
		transaction.Description,
		transaction.Date,
		transaction.ID,
		transaction.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", transaction.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for transaction %d: %w", transaction.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction matched by ID and owner.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, id, ownerID int64) error {
	query := `DELETE FROM transactions WHERE id = $1 AND owner_id = $2`
	result, err := q.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for transaction %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
