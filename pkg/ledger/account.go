// Package ledger defines the core domain types of the GrowFinance
// double-entry ledger: accounts, journal entries and lines, budgets, and the
// error taxonomy shared by the storage and posting layers.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the fundamental accounting type of an account. It decides
// which side (debit or credit) increases the account's reported value.
type AccountType string

const (
	AccountAsset     AccountType = "asset"
	AccountLiability AccountType = "liability"
	AccountEquity    AccountType = "equity"
	AccountRevenue   AccountType = "revenue"
	AccountExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountAsset, AccountLiability, AccountEquity, AccountRevenue, AccountExpense:
		return true
	}
	return false
}

// DebitNormal reports whether accounts of this type increase on the debit side.
func (t AccountType) DebitNormal() bool {
	return t == AccountAsset || t == AccountExpense
}

// AccountRole names a well-known slot in a tenant's chart of accounts. The
// posting engine resolves counterparty accounts through role bindings so that
// account codes stay tenant-local conventions, not magic constants.
type AccountRole string

const (
	// RoleIncome receives the credit side of deposits.
	RoleIncome AccountRole = "income"
	// RoleCapital is the fallback credit target for deposits when no income
	// account is configured.
	RoleCapital AccountRole = "capital"
	// RoleDrawings receives the debit side of owner withdrawals.
	RoleDrawings AccountRole = "drawings"
)

// Conventional chart-of-accounts codes used as a fallback when a tenant has
// no explicit role binding. Kept for charts seeded before role bindings
// existed.
const (
	CodeOtherIncome   = "4200"
	CodeOwnerCapital  = "3000"
	CodeOwnerDrawings = "3200"
)

// FallbackCode returns the conventional account code for a role.
func (r AccountRole) FallbackCode() string {
	switch r {
	case RoleIncome:
		return CodeOtherIncome
	case RoleCapital:
		return CodeOwnerCapital
	case RoleDrawings:
		return CodeOwnerDrawings
	}
	return ""
}

// SubTypeCash is the account sub-type selected by the cash flow report.
const SubTypeCash = "cash"

// Account is one bucket in a tenant's chart of accounts.
//
// Balance is the raw running sum of debit minus credit over all posted lines
// against the account, updated only inside posting transactions. Reports apply
// normal-side presentation signs; the stored value is side-agnostic.
type Account struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenant_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	SubType   string          `json:"sub_type,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsCash reports whether the account participates in the cash flow report.
func (a *Account) IsCash() bool {
	return a.SubType == SubTypeCash
}
