// Package api exposes the ledger core over a JSON HTTP API: postings,
// reversals, reports, accounts and budget recalculation, all scoped by the
// tenant in the URL. Authorization of the tenant context is the caller's
// concern and happens upstream of this service.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/growfinance/growledger/pkg/budget"
	"github.com/growfinance/growledger/pkg/db"
	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/growfinance/growledger/pkg/posting"
	"github.com/growfinance/growledger/pkg/reports"
)

// Server bundles the ledger components behind HTTP handlers.
type Server struct {
	engine   *posting.Engine
	reports  *reports.Engine
	rollup   *budget.Rollup
	accounts *db.AccountStore
	journal  *db.JournalStore
	budgets  *db.BudgetStore
}

// NewServer creates a Server over the shared connection. The posting engine
// is injected so the caller decides about event publishing.
func NewServer(conn *db.Connection, engine *posting.Engine) *Server {
	return &Server{
		engine:   engine,
		reports:  reports.NewEngine(conn),
		rollup:   budget.NewRollup(conn),
		accounts: db.NewAccountStore(conn),
		journal:  db.NewJournalStore(conn),
		budgets:  db.NewBudgetStore(conn),
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1/tenants/{tenantID}", func(r chi.Router) {
		r.Post("/postings/deposit", s.Deposit)
		r.Post("/postings/withdrawal", s.Withdrawal)
		r.Post("/postings/transfer", s.Transfer)

		r.Get("/entries", s.ListEntries)
		r.Get("/entries/{entryID}", s.GetEntry)
		r.Post("/entries/{entryID}/reverse", s.ReverseEntry)

		r.Get("/accounts", s.ListAccounts)
		r.Get("/accounts/{accountID}", s.GetAccount)
		r.Delete("/accounts/{accountID}", s.DeactivateAccount)

		r.Get("/reports/trial-balance", s.TrialBalance)
		r.Get("/reports/profit-loss", s.ProfitAndLoss)
		r.Get("/reports/balance-sheet", s.BalanceSheet)
		r.Get("/reports/cash-flow", s.CashFlow)
		r.Get("/reports/general-ledger", s.GeneralLedger)

		r.Get("/budgets", s.ListBudgets)
		r.Post("/budgets/{budgetID}/recalculate", s.RecalculateBudget)
	})

	return r
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("api request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}

// writeLedgerError maps a ledger error to an HTTP status.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrEmptyEntry),
		errors.Is(err, ledger.ErrInvalidLine),
		errors.Is(err, ledger.ErrUnbalancedEntry):
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ledger.ErrRoleNotConfigured):
		writeJSONError(w, http.StatusUnprocessableEntity, "role_not_configured", err.Error())
	case errors.Is(err, ledger.ErrConflict):
		writeJSONError(w, http.StatusConflict, "conflict", err.Error())
	default:
		slog.Error("api request failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Internal server error")
	}
}
