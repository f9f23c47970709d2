// Package budget implements the budget rollup: recomputing a budget's cached
// spend from expense postings in its period. Recalculation runs only when
// explicitly invoked (on a schedule, or when a budget page loads); the cache
// is deliberately stale in between. That staleness is a documented tradeoff,
// not a bug.
package budget

import (
	"fmt"

	"github.com/growfinance/growledger/pkg/db"
	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/shopspring/decimal"
)

// Rollup recomputes budget spend caches.
type Rollup struct {
	accounts *db.AccountStore
	journal  *db.JournalStore
	budgets  *db.BudgetStore
}

// NewRollup creates a budget rollup over the shared connection.
func NewRollup(conn *db.Connection) *Rollup {
	return &Rollup{
		accounts: db.NewAccountStore(conn),
		journal:  db.NewJournalStore(conn),
		budgets:  db.NewBudgetStore(conn),
	}
}

// RecalculateSpent re-sums expense postings within the budget's period and
// overwrites the cached spend, both on the passed budget and in storage. The
// filter is the budget's account when set, otherwise every expense account
// whose sub-type matches the budget's category.
func (r *Rollup) RecalculateSpent(budget *ledger.Budget) (decimal.Decimal, error) {
	accountIDs, err := r.filterAccounts(budget)
	if err != nil {
		return decimal.Zero, err
	}

	spent := decimal.Zero
	for _, accountID := range accountIDs {
		lines, err := r.journal.LinesForAccount(budget.TenantID, accountID, budget.StartDate, budget.EndDate)
		if err != nil {
			return decimal.Zero, err
		}
		for _, line := range lines {
			spent = spent.Add(line.Debit).Sub(line.Credit)
		}
	}

	if err := r.budgets.UpdateSpent(budget.TenantID, budget.ID, spent); err != nil {
		return decimal.Zero, err
	}
	budget.Spent = spent

	return spent, nil
}

// filterAccounts resolves the expense accounts a budget measures.
func (r *Rollup) filterAccounts(budget *ledger.Budget) ([]string, error) {
	if budget.AccountID != "" {
		account, err := r.accounts.Get(budget.TenantID, budget.AccountID)
		if err != nil {
			return nil, fmt.Errorf("budget account: %w", err)
		}
		if account.Type != ledger.AccountExpense {
			return nil, fmt.Errorf("budget account %s is not an expense account", account.Code)
		}
		return []string{account.ID}, nil
	}

	accounts, err := r.accounts.ListByTenant(budget.TenantID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, account := range accounts {
		if account.Type == ledger.AccountExpense && account.SubType == budget.Category {
			ids = append(ids, account.ID)
		}
	}
	return ids, nil
}
