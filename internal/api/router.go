// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"susu-ledger/internal/api/handler"
	"susu-ledger/internal/identity"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(ledgerHandler *handler.LedgerHandler, authHandler *handler.AuthHandler, provider identity.Provider, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Identity provider surface
	r.Post("/auth/login", authHandler.Login)

	// Everything else requires an authenticated caller.
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(provider))

		r.Post("/customers", ledgerHandler.CreateCustomer)
		r.Post("/savings/daily", ledgerHandler.RecordDailySaving)
		r.Post("/deposits", ledgerHandler.RecordDeposit)

		r.Route("/withdrawals", func(r chi.Router) {
			r.Post("/", ledgerHandler.RequestWithdraw)
			r.Get("/", ledgerHandler.ListWithdrawRequests)
			r.Post("/{requestID}/approve", ledgerHandler.ApproveWithdraw)
			r.Post("/{requestID}/reject", ledgerHandler.RejectWithdraw)
		})

		r.Route("/wallets", func(r chi.Router) {
			r.Get("/{customerID}", ledgerHandler.GetWallet)
			r.Get("/{customerID}/ledger", ledgerHandler.ListLedger)
		})
	})

	return r
}
