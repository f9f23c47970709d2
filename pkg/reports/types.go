package reports

import (
	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's accumulated debit and credit totals.
type TrialBalanceRow struct {
	AccountID   string             `json:"account_id"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Type        ledger.AccountType `json:"type"`
	DebitTotal  decimal.Decimal    `json:"debit_total"`
	CreditTotal decimal.Decimal    `json:"credit_total"`
}

// TrialBalance lists every account with activity as of a date. IsBalanced is
// exact decimal equality of the grand totals, not an epsilon check.
type TrialBalance struct {
	TenantID    string            `json:"tenant_id"`
	AsOf        string            `json:"as_of"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
	IsBalanced  bool              `json:"is_balanced"`
}

// AccountAmount is an account with its net amount for a statement section.
type AccountAmount struct {
	AccountID string          `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Net       decimal.Decimal `json:"net"`
}

// ProfitAndLoss reports revenue and expense activity over a date range.
type ProfitAndLoss struct {
	TenantID      string          `json:"tenant_id"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

// BalanceSheet reports cumulative asset, liability and equity positions as of
// a date. Every account of those types is listed, zero balances included; the
// accounting identity is the caller's check, not an enforced invariant here.
type BalanceSheet struct {
	TenantID         string          `json:"tenant_id"`
	AsOf             string          `json:"as_of"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

// CashFlowAccount is the movement of one cash account over the range.
type CashFlowAccount struct {
	AccountID      string          `json:"account_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Inflows        decimal.Decimal `json:"inflows"`
	Outflows       decimal.Decimal `json:"outflows"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// CashFlow summarizes movement across all cash sub-type accounts in range.
type CashFlow struct {
	TenantID       string            `json:"tenant_id"`
	From           string            `json:"from"`
	To             string            `json:"to"`
	Accounts       []CashFlowAccount `json:"accounts"`
	OpeningBalance decimal.Decimal   `json:"opening_balance"`
	Inflows        decimal.Decimal   `json:"inflows"`
	Outflows       decimal.Decimal   `json:"outflows"`
	ClosingBalance decimal.Decimal   `json:"closing_balance"`
}

// GeneralLedgerLine is one journal line stamped with the running balance
// after applying it.
type GeneralLedgerLine struct {
	LineID      int64           `json:"line_id"`
	EntryID     string          `json:"entry_id"`
	EntryNumber string          `json:"entry_number"`
	EntryDate   string          `json:"entry_date"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Running     decimal.Decimal `json:"running"`
}

// GeneralLedgerAccount is one account's chronological activity with opening
// and closing balances.
type GeneralLedgerAccount struct {
	AccountID      string              `json:"account_id"`
	Code           string              `json:"code"`
	Name           string              `json:"name"`
	OpeningBalance decimal.Decimal     `json:"opening_balance"`
	Lines          []GeneralLedgerLine `json:"lines"`
	ClosingBalance decimal.Decimal     `json:"closing_balance"`
}

// GeneralLedger is the per-account chronological listing for a date range.
type GeneralLedger struct {
	TenantID string                 `json:"tenant_id"`
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	Accounts []GeneralLedgerAccount `json:"accounts"`
}
