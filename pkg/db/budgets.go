package db

import (
	"database/sql"
	"fmt"

	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/shopspring/decimal"
)

// BudgetStore manages budget records and their cached spend.
type BudgetStore struct {
	conn *Connection
}

// NewBudgetStore creates a new BudgetStore instance.
func NewBudgetStore(conn *Connection) *BudgetStore {
	return &BudgetStore{conn: conn}
}

const budgetColumns = `id, tenant_id, account_id, category, period, start_date, end_date,
	amount, spent, alert_threshold, rollover, created_at`

func scanBudget(row interface{ Scan(...interface{}) error }) (*ledger.Budget, error) {
	var b ledger.Budget
	var accountID sql.NullString
	var rollover int
	err := row.Scan(
		&b.ID,
		&b.TenantID,
		&accountID,
		&b.Category,
		&b.Period,
		&b.StartDate,
		&b.EndDate,
		&b.Amount,
		&b.Spent,
		&b.AlertThreshold,
		&rollover,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.AccountID = accountID.String
	b.Rollover = rollover != 0
	return &b, nil
}

// Create inserts a new budget.
func (s *BudgetStore) Create(budget *ledger.Budget) error {
	query := `
		INSERT INTO budgets
			(id, tenant_id, account_id, category, period, start_date, end_date,
			 amount, spent, alert_threshold, rollover)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var accountID interface{}
	if budget.AccountID != "" {
		accountID = budget.AccountID
	}
	rollover := 0
	if budget.Rollover {
		rollover = 1
	}

	_, err := s.conn.Exec(query,
		budget.ID,
		budget.TenantID,
		accountID,
		budget.Category,
		string(budget.Period),
		budget.StartDate,
		budget.EndDate,
		budget.Amount,
		budget.Spent,
		budget.AlertThreshold,
		rollover,
	)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	return nil
}

// Get retrieves a budget by ID within a tenant.
// Returns ledger.ErrNotFound if the budget does not exist.
func (s *BudgetStore) Get(tenantID, budgetID string) (*ledger.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE tenant_id = ? AND id = ?`

	budget, err := scanBudget(s.conn.QueryRow(query, tenantID, budgetID))
	if err == sql.ErrNoRows {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return budget, nil
}

// ListByTenant retrieves all budgets of a tenant ordered by start date.
func (s *BudgetStore) ListByTenant(tenantID string) ([]ledger.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE tenant_id = ? ORDER BY start_date, id`

	rows, err := s.conn.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []ledger.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, *budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}

	return budgets, nil
}

// UpdateSpent overwrites the cached spend of a budget.
func (s *BudgetStore) UpdateSpent(tenantID, budgetID string, spent decimal.Decimal) error {
	query := `UPDATE budgets SET spent = ? WHERE tenant_id = ? AND id = ?`

	result, err := s.conn.Exec(query, spent, tenantID, budgetID)
	if err != nil {
		return fmt.Errorf("failed to update budget spend: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update budget spend: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
