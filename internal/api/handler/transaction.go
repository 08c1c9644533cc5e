// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"finledger/internal/api/middleware"
	"finledger/internal/api/types"
	"finledger/internal/domain"
	"finledger/internal/service"
	"finledger/internal/util"
)

// TransactionHandler handles HTTP requests for bookkeeping entries. All of
// its routes sit behind the auth middleware, so every request carries an
// authenticated user in its context.
type TransactionHandler struct {
	transactions service.TransactionService
	logger       *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		logger:       logger,
	}
}

// TransactionRequest represents the request body for create and update.
// There is deliberately no owner field: ownership always comes from the
// authenticated caller.
type TransactionRequest struct {
	Amount      int64   `json:"amount"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
}

// draft converts the request body into a domain draft, validating the date.
func (req TransactionRequest) draft() (*domain.Transaction, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, util.ErrInvalidInput
	}
	return &domain.Transaction{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		Type:        domain.TransactionType(req.Type),
	}, nil
}

// Create handles the create transaction request.
// POST /transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	draft, err := req.draft()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	transaction, err := h.transactions.Create(r.Context(), user.ID, draft)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, transaction)
}

// List handles the list transactions request. Optional ?type= and
// ?category= query parameters narrow the result with AND semantics.
// GET /transactions
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	filter := domain.TransactionFilter{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
	}

	transactions, err := h.transactions.List(r.Context(), user.ID, filter)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, transactions)
}

// Summary handles the transaction summary request.
// GET /transactions/summary
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	filter := domain.TransactionFilter{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
	}

	summary, err := h.transactions.Summarize(r.Context(), user.ID, filter)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, summary)
}

// Update handles the update transaction request.
// PUT /transactions/{transactionID}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	id, err := transactionID(r)
	if err != nil {
		respondWithError(w, h.logger, util.ErrNotFound)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	draft, err := req.draft()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	transaction, err := h.transactions.Update(r.Context(), user.ID, id, draft)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, transaction)
}

// Delete handles the delete transaction request.
// DELETE /transactions/{transactionID}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	id, err := transactionID(r)
	if err != nil {
		respondWithError(w, h.logger, util.ErrNotFound)
		return
	}

	if err := h.transactions.Delete(r.Context(), user.ID, id); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.MessageResponse{
		Message: "Transaction deleted successfully",
	})
}

func transactionID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "transactionID"), 10, 64)
}
