// Package db provides SQLite persistence for the ledger core: the chart of
// accounts, the journal, role bindings and budgets.
package db

// Schema defines the SQL statements to create database tables.
//
// Money columns are stored as decimal TEXT and aggregated in Go; SQLite's
// numeric SUM would coerce to binary float.
const Schema = `
-- Chart of accounts
-- One row per ledger bucket per tenant. Balance is the raw running
-- sum of debit minus credit over the account's lines.
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    code TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,                -- asset/liability/equity/revenue/expense
    sub_type TEXT NOT NULL DEFAULT '',
    balance TEXT NOT NULL DEFAULT '0', -- decimal as text
    active INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(tenant_id, code)
);

CREATE INDEX IF NOT EXISTS idx_accounts_tenant
    ON accounts(tenant_id, code);

-- Journal entry headers
-- One row per posted, balanced transaction. Immutable after insert.
CREATE TABLE IF NOT EXISTS journal_entries (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    entry_number TEXT NOT NULL,        -- JE-NNNNNN, sequential per tenant
    entry_date TEXT NOT NULL,          -- YYYY-MM-DD
    description TEXT NOT NULL DEFAULT '',
    reference TEXT NOT NULL DEFAULT '',
    idempotency_key TEXT,
    posted INTEGER NOT NULL DEFAULT 1,
    reverses_entry_id TEXT REFERENCES journal_entries(id),
    created_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(tenant_id, entry_number)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_idempotency
    ON journal_entries(tenant_id, idempotency_key)
    WHERE idempotency_key IS NOT NULL;

CREATE INDEX IF NOT EXISTS idx_entries_tenant_date
    ON journal_entries(tenant_id, entry_date);

-- Journal lines
-- One row per debit/credit leg. The integer primary key doubles as the
-- insertion-order tiebreak for same-date entries.
CREATE TABLE IF NOT EXISTS journal_lines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entry_id TEXT NOT NULL REFERENCES journal_entries(id),
    account_id TEXT NOT NULL REFERENCES accounts(id),
    debit TEXT NOT NULL DEFAULT '0',   -- decimal as text
    credit TEXT NOT NULL DEFAULT '0',  -- decimal as text
    description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_lines_entry
    ON journal_lines(entry_id);

CREATE INDEX IF NOT EXISTS idx_lines_account
    ON journal_lines(account_id);

-- Well-known account role bindings (income, capital, drawings)
-- Resolved by the posting engine before falling back to conventional codes.
CREATE TABLE IF NOT EXISTS account_roles (
    tenant_id TEXT NOT NULL,
    role TEXT NOT NULL,
    account_id TEXT NOT NULL REFERENCES accounts(id),
    PRIMARY KEY (tenant_id, role)
);

-- Budgets
-- spent is a cached rollup over the journal, recomputed on demand.
CREATE TABLE IF NOT EXISTS budgets (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    account_id TEXT REFERENCES accounts(id),
    category TEXT NOT NULL DEFAULT '',
    period TEXT NOT NULL,              -- monthly/quarterly/yearly
    start_date TEXT NOT NULL,          -- YYYY-MM-DD
    end_date TEXT NOT NULL,            -- YYYY-MM-DD
    amount TEXT NOT NULL DEFAULT '0',  -- decimal as text
    spent TEXT NOT NULL DEFAULT '0',   -- decimal as text
    alert_threshold TEXT NOT NULL DEFAULT '80',
    rollover INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_budgets_tenant
    ON budgets(tenant_id);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
