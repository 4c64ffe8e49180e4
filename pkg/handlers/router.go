package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dlaird/pocketbank/pkg/handlers/accounts"
	"github.com/dlaird/pocketbank/pkg/handlers/insights"
	"github.com/dlaird/pocketbank/pkg/handlers/respond"
	"github.com/dlaird/pocketbank/pkg/handlers/transactions"
	"github.com/dlaird/pocketbank/pkg/ledger"
	"github.com/dlaird/pocketbank/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the fixed HTTP surface onto a chi router.
func NewRouter(logger *slog.Logger, service ledger.Service) *chi.Mux {
	accountsHandler := accounts.NewAccountsHandler(service)
	transactionsHandler := transactions.NewTransactionsHandler(service)
	insightsHandler := insights.NewInsightsHandler(service)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(logger))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/create-user", accountsHandler.CreateUser)
		r.Post("/authenticate", accountsHandler.Authenticate)
		r.Get("/balance/{username}", accountsHandler.GetBalance)
		r.Get("/users", accountsHandler.ListUsers)
		r.Post("/deposit", transactionsHandler.Deposit)
		r.Post("/withdraw", transactionsHandler.Withdraw)
		r.Post("/transfer", transactionsHandler.Transfer)
		r.Get("/transactions/{username}", transactionsHandler.ListTransactions)
		r.Get("/spending-summary/{username}", insightsHandler.SpendingSummary)
	})

	return router
}
