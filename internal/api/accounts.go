package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListAccounts handles GET /api/v1/tenants/{tenantID}/accounts.
func (s *Server) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.ListByTenant(chi.URLParam(r, "tenantID"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

// GetAccount handles GET /api/v1/tenants/{tenantID}/accounts/{accountID}.
func (s *Server) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(chi.URLParam(r, "tenantID"), chi.URLParam(r, "accountID"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"account": account})
}

// DeactivateAccount handles DELETE /api/v1/tenants/{tenantID}/accounts/{accountID}.
// Accounts are never deleted; the account stays in place with its history and
// is marked inactive.
func (s *Server) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	accountID := chi.URLParam(r, "accountID")

	if err := s.accounts.Deactivate(tenantID, accountID); err != nil {
		writeLedgerError(w, err)
		return
	}

	account, err := s.accounts.Get(tenantID, accountID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"account": account})
}
