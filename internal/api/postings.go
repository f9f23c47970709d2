package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/growfinance/growledger/pkg/posting"
	"github.com/shopspring/decimal"
)

// postingRequest is the shared JSON body of the three posting endpoints.
type postingRequest struct {
	AccountID     string          `json:"account_id"`      // deposit/withdrawal cash account
	FromAccountID string          `json:"from_account_id"` // transfer source
	ToAccountID   string          `json:"to_account_id"`   // transfer destination
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Reference     string          `json:"reference"`
	Date          string          `json:"date"`
	ActorID       string          `json:"actor_id"`
}

func decodePosting(w http.ResponseWriter, r *http.Request) (*postingRequest, bool) {
	var req postingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return nil, false
	}
	if !ledger.ValidDate(req.Date) {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "date must be YYYY-MM-DD")
		return nil, false
	}
	return &req, true
}

// Deposit handles POST /api/v1/tenants/{tenantID}/postings/deposit.
// An Idempotency-Key request header makes a retried call return the original
// entry instead of double-posting.
func (s *Server) Deposit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePosting(w, r)
	if !ok {
		return
	}
	if req.AccountID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing account_id")
		return
	}

	entry, err := s.engine.RecordDeposit(r.Context(), posting.DepositRequest{
		TenantID:       chi.URLParam(r, "tenantID"),
		CashAccountID:  req.AccountID,
		Amount:         req.Amount,
		Description:    req.Description,
		Reference:      req.Reference,
		Date:           req.Date,
		ActorID:        req.ActorID,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"entry": entry})
}

// Withdrawal handles POST /api/v1/tenants/{tenantID}/postings/withdrawal.
func (s *Server) Withdrawal(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePosting(w, r)
	if !ok {
		return
	}
	if req.AccountID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing account_id")
		return
	}

	entry, err := s.engine.RecordWithdrawal(r.Context(), posting.WithdrawalRequest{
		TenantID:       chi.URLParam(r, "tenantID"),
		CashAccountID:  req.AccountID,
		Amount:         req.Amount,
		Description:    req.Description,
		Reference:      req.Reference,
		Date:           req.Date,
		ActorID:        req.ActorID,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"entry": entry})
}

// Transfer handles POST /api/v1/tenants/{tenantID}/postings/transfer.
func (s *Server) Transfer(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePosting(w, r)
	if !ok {
		return
	}
	if req.FromAccountID == "" || req.ToAccountID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing from_account_id or to_account_id")
		return
	}

	entry, err := s.engine.RecordTransfer(r.Context(), posting.TransferRequest{
		TenantID:       chi.URLParam(r, "tenantID"),
		FromAccountID:  req.FromAccountID,
		ToAccountID:    req.ToAccountID,
		Amount:         req.Amount,
		Description:    req.Description,
		Date:           req.Date,
		ActorID:        req.ActorID,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"entry": entry})
}

// reverseRequest is the JSON body of the reverse endpoint.
type reverseRequest struct {
	Date    string `json:"date"`
	ActorID string `json:"actor_id"`
}

// ReverseEntry handles POST /api/v1/tenants/{tenantID}/entries/{entryID}/reverse.
func (s *Server) ReverseEntry(w http.ResponseWriter, r *http.Request) {
	var req reverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if !ledger.ValidDate(req.Date) {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "date must be YYYY-MM-DD")
		return
	}

	entry, err := s.engine.ReverseEntry(r.Context(),
		chi.URLParam(r, "tenantID"), chi.URLParam(r, "entryID"), req.Date, req.ActorID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"entry": entry})
}

// GetEntry handles GET /api/v1/tenants/{tenantID}/entries/{entryID}.
func (s *Server) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.journal.GetEntry(chi.URLParam(r, "tenantID"), chi.URLParam(r, "entryID"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entry": entry})
}

// ListEntries handles GET /api/v1/tenants/{tenantID}/entries.
func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.journal.ListEntries(chi.URLParam(r, "tenantID"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
