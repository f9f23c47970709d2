package db

import (
	"database/sql"
	"fmt"

	"github.com/growfinance/growledger/pkg/ledger"
)

// RoleStore manages the per-tenant bindings of well-known account roles
// (income, capital, drawings) to concrete accounts.
type RoleStore struct {
	conn *Connection
}

// NewRoleStore creates a new RoleStore instance.
func NewRoleStore(conn *Connection) *RoleStore {
	return &RoleStore{conn: conn}
}

// Bind binds a role to an account for a tenant, replacing any existing
// binding.
func (s *RoleStore) Bind(tenantID string, role ledger.AccountRole, accountID string) error {
	query := `
		INSERT INTO account_roles (tenant_id, role, account_id)
		VALUES (?, ?, ?)
		ON CONFLICT(tenant_id, role) DO UPDATE SET account_id = excluded.account_id
	`

	_, err := s.conn.Exec(query, tenantID, string(role), accountID)
	if err != nil {
		return fmt.Errorf("failed to bind role: %w", err)
	}

	return nil
}

// Resolve returns the account ID bound to a role for a tenant.
// Returns ("", nil) when the role is unbound; the caller decides whether a
// code-based fallback applies.
func (s *RoleStore) Resolve(tenantID string, role ledger.AccountRole) (string, error) {
	query := `SELECT account_id FROM account_roles WHERE tenant_id = ? AND role = ?`

	var accountID string
	err := s.conn.QueryRow(query, tenantID, string(role)).Scan(&accountID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve role: %w", err)
	}

	return accountID, nil
}
