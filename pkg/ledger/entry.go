package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryNumberPrefix is the prefix of journal entry numbers. Sibling document
// flows (invoices, quotations) use the same PREFIX-NNNNNN shape with their
// own prefixes.
const EntryNumberPrefix = "JE"

// FormatEntryNumber renders a sequence value as a JE-NNNNNN entry number.
func FormatEntryNumber(seq int64) string {
	return fmt.Sprintf("%s-%06d", EntryNumberPrefix, seq)
}

// ParseEntryNumber extracts the sequence value from a JE-NNNNNN entry number.
func ParseEntryNumber(number string) (int64, error) {
	rest, ok := strings.CutPrefix(number, EntryNumberPrefix+"-")
	if !ok {
		return 0, fmt.Errorf("malformed entry number %q", number)
	}
	seq, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed entry number %q: %w", number, err)
	}
	return seq, nil
}

// JournalLine is one leg of a balanced journal entry. Exactly one of Debit
// and Credit is strictly positive; the other is exactly zero.
type JournalLine struct {
	ID          int64           `json:"id"`
	EntryID     string          `json:"entry_id"`
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code,omitempty"`
	AccountName string          `json:"account_name,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// Validate checks the line invariant: one side strictly positive, the other
// exactly zero.
func (l *JournalLine) Validate() error {
	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()
	if l.Debit.IsNegative() || l.Credit.IsNegative() || debitSet == creditSet {
		return ErrInvalidLine
	}
	return nil
}

// JournalEntry is one balanced, immutable transaction header with its lines.
// Entries are created already posted; corrections are new reversing entries.
type JournalEntry struct {
	ID             string        `json:"id"`
	TenantID       string        `json:"tenant_id"`
	EntryNumber    string        `json:"entry_number"`
	EntryDate      string        `json:"entry_date"` // YYYY-MM-DD
	Description    string        `json:"description"`
	Reference      string        `json:"reference,omitempty"`
	IdempotencyKey string        `json:"-"`
	Posted         bool          `json:"posted"`
	ReversesEntry  string        `json:"reverses_entry_id,omitempty"`
	CreatedBy      string        `json:"created_by"`
	CreatedAt      time.Time     `json:"created_at"`
	Lines          []JournalLine `json:"lines,omitempty"`
}

// Totals returns the sums of the entry's debit and credit sides.
func (e *JournalEntry) Totals() (debit, credit decimal.Decimal) {
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Validate checks the entry invariants: at least two lines, every line valid,
// and debit and credit totals exactly equal.
func (e *JournalEntry) Validate() error {
	if len(e.Lines) < 2 {
		return ErrEmptyEntry
	}
	for i := range e.Lines {
		if err := e.Lines[i].Validate(); err != nil {
			return err
		}
	}
	debit, credit := e.Totals()
	if !debit.Equal(credit) {
		return ErrUnbalancedEntry
	}
	return nil
}

// PostedLine is a journal line joined with its entry header, as read back for
// report aggregation. Ordering is (entry date, line id), oldest first.
type PostedLine struct {
	LineID      int64           `json:"line_id"`
	EntryID     string          `json:"entry_id"`
	EntryNumber string          `json:"entry_number"`
	EntryDate   string          `json:"entry_date"`
	AccountID   string          `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date. Dates are
// stored and compared as strings; the format orders lexicographically.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
