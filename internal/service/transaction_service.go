// internal/service/transaction_service.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"
)

// TransactionService defines the business logic for bookkeeping entries.
// Every operation is scoped to the authenticated owner; there is no way to
// reach another user's records through this interface.
type TransactionService interface {
	// Create persists a new entry stamped with ownerID as its owner,
	// regardless of any owner the caller may have supplied.
	Create(ctx context.Context, ownerID int64, draft *domain.Transaction) (*domain.Transaction, error)
	// List returns the owner's entries, optionally narrowed by filter.
	List(ctx context.Context, ownerID int64, filter domain.TransactionFilter) ([]domain.Transaction, error)
	// Update overwrites amount, category, description and date of the
	// owner's entry with the given ID. ID, type and owner are immutable.
	Update(ctx context.Context, ownerID, id int64, draft *domain.Transaction) (*domain.Transaction, error)
	// Delete removes the owner's entry with the given ID.
	Delete(ctx context.Context, ownerID, id int64) error
	// Summarize aggregates the owner's entries into income/expense totals
	// and per-category totals, in major currency units.
	Summarize(ctx context.Context, ownerID int64, filter domain.TransactionFilter) (*domain.Summary, error)
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	dbExecutor      repository.DBExecutor
	transactionRepo repository.TransactionRepository
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	dbExecutor repository.DBExecutor,
	transactionRepo repository.TransactionRepository,
) TransactionService {
	return &transactionService{
		dbExecutor:      dbExecutor,
		transactionRepo: transactionRepo,
	}
}

// validateDraft checks the fields a client controls on create and update.
func validateDraft(draft *domain.Transaction, checkType bool) error {
	if draft == nil {
		return util.ErrInvalidInput
	}
	if draft.Amount <= 0 {
		return util.ErrInvalidInput
	}
	if draft.Category == "" {
		return util.ErrInvalidInput
	}
	if draft.Date.IsZero() {
		return util.ErrInvalidInput
	}
	if checkType && !draft.Type.Valid() {
		return util.ErrInvalidInput
	}
	return nil
}

// Create persists a new transaction owned by ownerID.
func (s *transactionService) Create(ctx context.Context, ownerID int64, draft *domain.Transaction) (*domain.Transaction, error) {
	if err := validateDraft(draft, true); err != nil {
		return nil, err
	}

	transaction := domain.NewTransaction(ownerID, draft.Amount, draft.Category, draft.Description, draft.Date, draft.Type)
	if err := s.transactionRepo.CreateTransaction(ctx, s.dbExecutor, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return transaction, nil
}

// List returns all of the owner's transactions matching the filter.
func (s *transactionService) List(ctx context.Context, ownerID int64, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.ListTransactionsByOwner(ctx, s.dbExecutor, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// Update overwrites the mutable fields of the owner's transaction.
func (s *transactionService) Update(ctx context.Context, ownerID, id int64, draft *domain.Transaction) (*domain.Transaction, error) {
	// Type is immutable on update, so the draft's type tag is ignored.
	if err := validateDraft(draft, false); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.GetTransactionByIDAndOwner(ctx, s.dbExecutor, id, ownerID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("update transaction: failed to get transaction %d: %w", id, err)
	}

	transaction.Amount = draft.Amount
	transaction.Category = draft.Category
	transaction.Description = draft.Description
	transaction.Date = draft.Date

	if err := s.transactionRepo.UpdateTransaction(ctx, s.dbExecutor, transaction); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("update transaction %d: %w", id, err)
	}
	return transaction, nil
}

// Delete removes the owner's transaction with the given ID.
func (s *transactionService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, s.dbExecutor, id, ownerID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrNotFound
		}
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// Stored amounts are minor units (cents); summaries report major units.
const minorUnitExponent = -2

// Summarize aggregates the owner's transactions matching the filter.
func (s *transactionService) Summarize(ctx context.Context, ownerID int64, filter domain.TransactionFilter) (*domain.Summary, error) {
	transactions, err := s.transactionRepo.ListTransactionsByOwner(ctx, s.dbExecutor, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("summarize transactions: %w", err)
	}

	var incomeMinor, expenseMinor int64
	type key struct {
		category string
		txType   domain.TransactionType
	}
	totals := map[key]*domain.CategoryTotal{}
	order := []key{}

	for _, t := range transactions {
		switch t.Type {
		case domain.TransactionTypeIncome:
			incomeMinor += t.Amount
		case domain.TransactionTypeExpense:
			expenseMinor += t.Amount
		}

		k := key{category: t.Category, txType: t.Type}
		ct, ok := totals[k]
		if !ok {
			ct = &domain.CategoryTotal{Category: t.Category, Type: t.Type, Total: decimal.Zero}
			totals[k] = ct
			order = append(order, k)
		}
		ct.Total = ct.Total.Add(decimal.New(t.Amount, minorUnitExponent))
		ct.Count++
	}

	summary := &domain.Summary{
		Income:     decimal.New(incomeMinor, minorUnitExponent),
		Expenses:   decimal.New(expenseMinor, minorUnitExponent),
		Net:        decimal.New(incomeMinor-expenseMinor, minorUnitExponent),
		Categories: make([]domain.CategoryTotal, 0, len(order)),
	}
	for _, k := range order {
		summary.Categories = append(summary.Categories, *totals[k])
	}
	return summary, nil
}
