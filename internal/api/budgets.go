package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/growfinance/growledger/pkg/ledger"
)

// budgetView decorates a budget with its derived threshold flags.
type budgetView struct {
	ledger.Budget
	OverBudget bool `json:"over_budget"`
	NearLimit  bool `json:"near_limit"`
}

func viewOf(b ledger.Budget) budgetView {
	return budgetView{Budget: b, OverBudget: b.IsOverBudget(), NearLimit: b.IsNearLimit()}
}

// ListBudgets handles GET /api/v1/tenants/{tenantID}/budgets.
// Spend figures are the cached values; POST /budgets/{id}/recalculate
// refreshes them.
func (s *Server) ListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.ListByTenant(chi.URLParam(r, "tenantID"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	views := make([]budgetView, 0, len(budgets))
	for _, b := range budgets {
		views = append(views, viewOf(b))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"budgets": views})
}

// RecalculateBudget handles POST /api/v1/tenants/{tenantID}/budgets/{budgetID}/recalculate.
// It re-sums the budget's expense postings and overwrites the cached spend.
func (s *Server) RecalculateBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := s.budgets.Get(chi.URLParam(r, "tenantID"), chi.URLParam(r, "budgetID"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if _, err := s.rollup.RecalculateSpent(budget); err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"budget": viewOf(*budget)})
}
