package db

import (
	"database/sql"
	"fmt"

	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/shopspring/decimal"
)

// AccountStore manages chart-of-accounts records. Balances are mutated only
// through AdjustBalanceTx from inside a posting transaction.
type AccountStore struct {
	conn *Connection
}

// NewAccountStore creates a new AccountStore instance.
func NewAccountStore(conn *Connection) *AccountStore {
	return &AccountStore{conn: conn}
}

const accountColumns = `id, tenant_id, code, name, type, sub_type, balance, active, created_at`

func scanAccount(row interface{ Scan(...interface{}) error }) (*ledger.Account, error) {
	var a ledger.Account
	var active int
	err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.Code,
		&a.Name,
		&a.Type,
		&a.SubType,
		&a.Balance,
		&active,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Active = active != 0
	return &a, nil
}

// Create inserts a new account.
func (s *AccountStore) Create(account *ledger.Account) error {
	if !account.Type.Valid() {
		return fmt.Errorf("invalid account type %q", account.Type)
	}

	query := `
		INSERT INTO accounts (id, tenant_id, code, name, type, sub_type, balance, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	active := 0
	if account.Active {
		active = 1
	}

	_, err := s.conn.Exec(query,
		account.ID,
		account.TenantID,
		account.Code,
		account.Name,
		string(account.Type),
		account.SubType,
		account.Balance,
		active,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// Get retrieves an account by ID within a tenant.
// Returns ledger.ErrNotFound if the account does not exist.
func (s *AccountStore) Get(tenantID, accountID string) (*ledger.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = ? AND id = ?`

	account, err := scanAccount(s.conn.QueryRow(query, tenantID, accountID))
	if err == sql.ErrNoRows {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// FindByCode retrieves an account by its chart-of-accounts code.
// Returns (nil, nil) when no account carries the code; the posting engine
// treats that as "role not configured", not as a storage failure.
func (s *AccountStore) FindByCode(tenantID, code string) (*ledger.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = ? AND code = ?`

	account, err := scanAccount(s.conn.QueryRow(query, tenantID, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by code: %w", err)
	}

	return account, nil
}

// ListByTenant retrieves all accounts of a tenant ordered by code.
func (s *AccountStore) ListByTenant(tenantID string) ([]ledger.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = ? ORDER BY code`

	rows, err := s.conn.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Deactivate marks an account inactive. Accounts are never deleted.
func (s *AccountStore) Deactivate(tenantID, accountID string) error {
	query := `UPDATE accounts SET active = 0 WHERE tenant_id = ? AND id = ?`

	result, err := s.conn.Exec(query, tenantID, accountID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

// AdjustBalanceTx applies a signed delta to an account's balance inside an
// open transaction. It must only be called from the same atomic unit as the
// journal-line insert that justifies the delta.
func (s *AccountStore) AdjustBalanceTx(tx *sql.Tx, accountID string, delta decimal.Decimal) error {
	var balance decimal.Decimal
	err := tx.QueryRow(`SELECT balance FROM accounts WHERE id = ?`, accountID).Scan(&balance)
	if err == sql.ErrNoRows {
		return ledger.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read balance: %w", err)
	}

	_, err = tx.Exec(`UPDATE accounts SET balance = ? WHERE id = ?`, balance.Add(delta), accountID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	return nil
}
