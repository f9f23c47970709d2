package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/growfinance/growledger/pkg/ledger"
)

// dateParam reads a required YYYY-MM-DD query parameter, writing a 400 when
// missing or malformed.
func dateParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if !ledger.ValidDate(value) {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", name+" must be YYYY-MM-DD")
		return "", false
	}
	return value, true
}

// TrialBalance handles GET /api/v1/tenants/{tenantID}/reports/trial-balance?as_of=.
func (s *Server) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, ok := dateParam(w, r, "as_of")
	if !ok {
		return
	}

	report, err := s.reports.TrialBalance(chi.URLParam(r, "tenantID"), asOf)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ProfitAndLoss handles GET /api/v1/tenants/{tenantID}/reports/profit-loss?from=&to=.
func (s *Server) ProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	from, ok := dateParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := dateParam(w, r, "to")
	if !ok {
		return
	}

	report, err := s.reports.ProfitAndLoss(chi.URLParam(r, "tenantID"), from, to)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// BalanceSheet handles GET /api/v1/tenants/{tenantID}/reports/balance-sheet?as_of=.
func (s *Server) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, ok := dateParam(w, r, "as_of")
	if !ok {
		return
	}

	report, err := s.reports.BalanceSheet(chi.URLParam(r, "tenantID"), asOf)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// CashFlow handles GET /api/v1/tenants/{tenantID}/reports/cash-flow?from=&to=.
func (s *Server) CashFlow(w http.ResponseWriter, r *http.Request) {
	from, ok := dateParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := dateParam(w, r, "to")
	if !ok {
		return
	}

	report, err := s.reports.CashFlow(chi.URLParam(r, "tenantID"), from, to)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// GeneralLedger handles
// GET /api/v1/tenants/{tenantID}/reports/general-ledger?from=&to=&account_id=.
// account_id is optional; without it every account with activity is listed.
func (s *Server) GeneralLedger(w http.ResponseWriter, r *http.Request) {
	from, ok := dateParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := dateParam(w, r, "to")
	if !ok {
		return
	}

	report, err := s.reports.GeneralLedger(chi.URLParam(r, "tenantID"), from, to,
		r.URL.Query().Get("account_id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
