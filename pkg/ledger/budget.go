package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the recurrence granularity of a budget.
type BudgetPeriod string

const (
	BudgetMonthly   BudgetPeriod = "monthly"
	BudgetQuarterly BudgetPeriod = "quarterly"
	BudgetYearly    BudgetPeriod = "yearly"
)

// Budget is a spending ceiling for an expense account or category over a
// period.
//
// Spent is a denormalized cache over the journal: it is recomputed only when
// budget.Rollup.RecalculateSpent is invoked, not on every posting, and is
// stale in between. Callers that need fresh numbers recalculate first.
type Budget struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenant_id"`
	AccountID      string          `json:"account_id,omitempty"`
	Category       string          `json:"category,omitempty"`
	Period         BudgetPeriod    `json:"period"`
	StartDate      string          `json:"start_date"` // YYYY-MM-DD
	EndDate        string          `json:"end_date"`   // YYYY-MM-DD
	Amount         decimal.Decimal `json:"amount"`
	Spent          decimal.Decimal `json:"spent"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"` // percent
	Rollover       bool            `json:"rollover"`
	CreatedAt      time.Time       `json:"created_at"`
}

// IsOverBudget reports whether the cached spend exceeds the budgeted amount.
func (b *Budget) IsOverBudget() bool {
	return b.Spent.GreaterThan(b.Amount)
}

// IsNearLimit reports whether the cached spend has reached the alert
// threshold percentage without yet being over budget.
func (b *Budget) IsNearLimit() bool {
	if b.IsOverBudget() || !b.Amount.IsPositive() {
		return false
	}
	pct := b.Spent.Div(b.Amount).Mul(decimal.NewFromInt(100))
	return pct.GreaterThanOrEqual(b.AlertThreshold)
}
