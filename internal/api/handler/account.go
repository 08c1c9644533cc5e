// internal/api/handler/account.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"

	"finledger/internal/api/types"
	"finledger/internal/service"
	"finledger/internal/util"
)

// AccountHandler handles HTTP requests for registration and login.
type AccountHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new account creation.
// POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if len(req.Username) < 3 || len(req.Username) > 50 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if len(req.Password) < 6 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	// The User type never serializes its password hash.
	respondWithJSON(w, h.logger, http.StatusOK, user)
}

// Login handles credential verification and token issuance. The request is
// form-encoded for compatibility with standard OAuth2 password clients.
// POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	token, err := h.accounts.Login(r.Context(), username, password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
