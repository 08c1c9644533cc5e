// internal/api/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"finledger/internal/api/types"
	"finledger/internal/domain"
	"finledger/internal/service"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// UserFromContext returns the authenticated user placed in the request
// context by AuthRequired.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// AuthRequired is the single authorization boundary for protected routes.
// It extracts the bearer token, verifies it and resolves it to a stored
// user. A missing header, an invalid or expired token, and a token whose
// user no longer exists all produce the same 401 response.
func AuthRequired(accounts service.AccountService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respondUnauthenticated(w, logger)
				return
			}

			user, err := accounts.Authenticate(r.Context(), token)
			if err != nil {
				respondUnauthenticated(w, logger)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from a standard Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func respondUnauthenticated(w http.ResponseWriter, logger *slog.Logger) {
	payload, err := json.Marshal(types.ErrorResponse{Error: "Not authenticated"})
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write(payload)
}
