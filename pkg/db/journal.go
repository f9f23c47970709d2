package db

import (
	"database/sql"
	"fmt"

	"github.com/growfinance/growledger/pkg/ledger"
)

// JournalStore manages journal entries and their lines. Entries are append
// only: there is no update or delete path, corrections are new reversing
// entries posted through the posting engine.
type JournalStore struct {
	conn *Connection
}

// NewJournalStore creates a new JournalStore instance.
func NewJournalStore(conn *Connection) *JournalStore {
	return &JournalStore{conn: conn}
}

// NextEntryNumberTx computes the next sequential entry number for a tenant,
// highest existing number plus one, inside an open transaction. The
// transaction is the serialization point: the computation and the subsequent
// insert commit together, so two concurrent postings cannot both claim the
// same number.
func (s *JournalStore) NextEntryNumberTx(tx *sql.Tx, tenantID string) (string, error) {
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTR(entry_number, 4) AS INTEGER)), 0)
		FROM journal_entries
		WHERE tenant_id = ?
	`

	var last int64
	if err := tx.QueryRow(query, tenantID).Scan(&last); err != nil {
		return "", fmt.Errorf("failed to compute next entry number: %w", err)
	}

	return ledger.FormatEntryNumber(last + 1), nil
}

// AppendEntryTx validates and inserts a journal entry with its lines inside
// an open transaction. The balance and line invariants are checked here
// independently of the posting engine; nothing is written when they fail.
// Line IDs are filled in from the insert order.
func (s *JournalStore) AppendEntryTx(tx *sql.Tx, entry *ledger.JournalEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if !ledger.ValidDate(entry.EntryDate) {
		return fmt.Errorf("invalid entry date %q", entry.EntryDate)
	}

	var idempotencyKey interface{}
	if entry.IdempotencyKey != "" {
		idempotencyKey = entry.IdempotencyKey
	}
	var reverses interface{}
	if entry.ReversesEntry != "" {
		reverses = entry.ReversesEntry
	}

	headerQuery := `
		INSERT INTO journal_entries
			(id, tenant_id, entry_number, entry_date, description, reference,
			 idempotency_key, posted, reverses_entry_id, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`

	_, err := tx.Exec(headerQuery,
		entry.ID,
		entry.TenantID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		idempotencyKey,
		reverses,
		entry.CreatedBy,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return ledger.ErrDuplicateEntryNumber
		}
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	lineQuery := `
		INSERT INTO journal_lines (entry_id, account_id, debit, credit, description)
		VALUES (?, ?, ?, ?, ?)
	`

	for i := range entry.Lines {
		line := &entry.Lines[i]
		line.EntryID = entry.ID

		result, err := tx.Exec(lineQuery,
			line.EntryID,
			line.AccountID,
			line.Debit,
			line.Credit,
			line.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert journal line: %w", err)
		}

		if line.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read journal line id: %w", err)
		}
	}

	entry.Posted = true
	return nil
}

const entryColumns = `id, tenant_id, entry_number, entry_date, description, reference,
	idempotency_key, posted, reverses_entry_id, created_by, created_at`

func scanEntry(row interface{ Scan(...interface{}) error }) (*ledger.JournalEntry, error) {
	var e ledger.JournalEntry
	var idempotencyKey, reverses sql.NullString
	var posted int
	err := row.Scan(
		&e.ID,
		&e.TenantID,
		&e.EntryNumber,
		&e.EntryDate,
		&e.Description,
		&e.Reference,
		&idempotencyKey,
		&posted,
		&reverses,
		&e.CreatedBy,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.IdempotencyKey = idempotencyKey.String
	e.ReversesEntry = reverses.String
	e.Posted = posted != 0
	return &e, nil
}

// GetEntry retrieves a journal entry by ID with its lines and the affected
// account codes and names attached.
// Returns ledger.ErrNotFound if the entry does not exist.
func (s *JournalStore) GetEntry(tenantID, entryID string) (*ledger.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = ? AND id = ?`

	entry, err := scanEntry(s.conn.QueryRow(query, tenantID, entryID))
	if err == sql.ErrNoRows {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	if entry.Lines, err = s.loadLines(entryID); err != nil {
		return nil, err
	}

	return entry, nil
}

// FindByIdempotencyKey retrieves the entry recorded under an idempotency key.
// Returns (nil, nil) when the key has not been used.
func (s *JournalStore) FindByIdempotencyKey(tenantID, key string) (*ledger.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE tenant_id = ? AND idempotency_key = ?`

	entry, err := scanEntry(s.conn.QueryRow(query, tenantID, key))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry by idempotency key: %w", err)
	}

	if entry.Lines, err = s.loadLines(entry.ID); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListEntries retrieves all entries of a tenant in (entry_date, insertion)
// order, headers only.
func (s *JournalStore) ListEntries(tenantID string) ([]ledger.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE tenant_id = ?
		ORDER BY entry_date, created_at, entry_number`

	rows, err := s.conn.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}

	return entries, nil
}

func (s *JournalStore) loadLines(entryID string) ([]ledger.JournalLine, error) {
	query := `
		SELECT l.id, l.entry_id, l.account_id, a.code, a.name, l.debit, l.credit, l.description
		FROM journal_lines l
		JOIN accounts a ON a.id = l.account_id
		WHERE l.entry_id = ?
		ORDER BY l.id
	`

	rows, err := s.conn.Query(query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.JournalLine
	for rows.Next() {
		var line ledger.JournalLine
		if err := rows.Scan(
			&line.ID,
			&line.EntryID,
			&line.AccountID,
			&line.AccountCode,
			&line.AccountName,
			&line.Debit,
			&line.Credit,
			&line.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal lines: %w", err)
	}

	return lines, nil
}

const postedLineQuery = `
	SELECT l.id, l.entry_id, e.entry_number, e.entry_date, l.account_id,
	       l.debit, l.credit, l.description
	FROM journal_lines l
	JOIN journal_entries e ON e.id = l.entry_id
`

func (s *JournalStore) queryPostedLines(query string, args ...interface{}) ([]ledger.PostedLine, error) {
	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.PostedLine
	for rows.Next() {
		var line ledger.PostedLine
		if err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.EntryNumber,
			&line.EntryDate,
			&line.AccountID,
			&line.Debit,
			&line.Credit,
			&line.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal lines: %w", err)
	}

	return lines, nil
}

// LinesForAccount retrieves one account's lines dated within [from, to],
// chronological, oldest first, same-date entries in insertion order.
func (s *JournalStore) LinesForAccount(tenantID, accountID, from, to string) ([]ledger.PostedLine, error) {
	query := postedLineQuery + `
		WHERE e.tenant_id = ? AND l.account_id = ? AND e.entry_date >= ? AND e.entry_date <= ?
		ORDER BY e.entry_date, l.id`

	return s.queryPostedLines(query, tenantID, accountID, from, to)
}

// LinesThrough retrieves every line of a tenant dated on or before to, in
// (entry_date, insertion) order. The reporting engine splits opening and
// in-range portions itself so that one query serves cumulative reports.
func (s *JournalStore) LinesThrough(tenantID, to string) ([]ledger.PostedLine, error) {
	query := postedLineQuery + `
		WHERE e.tenant_id = ? AND e.entry_date <= ?
		ORDER BY e.entry_date, l.id`

	return s.queryPostedLines(query, tenantID, to)
}
