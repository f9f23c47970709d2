package ledger

import "errors"

var (
	// ErrNotFound is returned when an account, entry or budget does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidAmount is returned when a posting amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrEmptyEntry is returned when a journal entry carries fewer than two lines.
	ErrEmptyEntry = errors.New("journal entry requires at least two lines")

	// ErrUnbalancedEntry is returned when the debit and credit totals of an
	// entry's lines differ.
	ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")

	// ErrInvalidLine is returned when a line is not exactly one of debit or
	// credit with a positive amount.
	ErrInvalidLine = errors.New("journal line must have exactly one positive side")

	// ErrRoleNotConfigured is returned when a posting needs a well-known
	// account (income, capital, drawings) and the tenant's chart of accounts
	// has neither a role binding nor a matching code for it.
	ErrRoleNotConfigured = errors.New("no account configured for required role")

	// ErrDuplicateEntryNumber is returned when an entry number is already
	// taken for the tenant. Indicates a numbering race that exhausted retries.
	ErrDuplicateEntryNumber = errors.New("entry number already exists for tenant")

	// ErrConflict is returned when a posting could not be committed after
	// retrying transient storage conflicts. The caller may retry.
	ErrConflict = errors.New("transient storage conflict")
)
