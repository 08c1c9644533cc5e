// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"finledger/internal/api/handler"
	"finledger/internal/api/middleware"
	"finledger/internal/service"
)

// NewRouter sets up and returns a new HTTP router. Registration and login
// are public; everything under /transactions sits behind the auth gate.
func NewRouter(
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	accounts service.AccountService,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public account routes
	r.Post("/register", accountHandler.Register)
	r.Post("/login", accountHandler.Login)

	// Protected bookkeeping routes
	r.Route("/transactions", func(r chi.Router) {
		r.Use(middleware.AuthRequired(accounts, logger))
		r.Post("/", transactionHandler.Create)
		r.Get("/", transactionHandler.List)
		r.Get("/summary", transactionHandler.Summary)
		r.Put("/{transactionID}", transactionHandler.Update)
		r.Delete("/{transactionID}", transactionHandler.Delete)
	})

	return r
}
