// Package posting implements the posting engine: the only component that
// writes to the journal. It builds balanced two-line entries for the standard
// banking operations (deposit, withdrawal, transfer), posts reversing
// entries, and applies every posting as one atomic unit spanning entry-number
// assignment, the entry and line inserts, and both balance updates.
package posting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/growfinance/growledger/pkg/db"
	"github.com/growfinance/growledger/pkg/events"
	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/shopspring/decimal"
)

// maxAttempts bounds the retry loop around transient storage conflicts
// (SQLite busy, entry-number races).
const maxAttempts = 3

// Engine posts balanced journal entries.
type Engine struct {
	conn      *db.Connection
	accounts  *db.AccountStore
	journal   *db.JournalStore
	roles     *db.RoleStore
	publisher events.Publisher
	topic     string
}

// Option configures an Engine.
type Option func(*Engine)

// WithPublisher makes the engine emit an EntryPosted event after each
// committed posting. Publishing is best effort and never fails the posting.
func WithPublisher(p events.Publisher, topic string) Option {
	return func(e *Engine) {
		e.publisher = p
		if topic != "" {
			e.topic = topic
		}
	}
}

// NewEngine creates a posting engine over the shared connection.
func NewEngine(conn *db.Connection, opts ...Option) *Engine {
	e := &Engine{
		conn:     conn,
		accounts: db.NewAccountStore(conn),
		journal:  db.NewJournalStore(conn),
		roles:    db.NewRoleStore(conn),
		topic:    events.TopicEntryPosted,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DepositRequest records money arriving in a cash account.
type DepositRequest struct {
	TenantID       string
	CashAccountID  string
	Amount         decimal.Decimal
	Description    string
	Reference      string
	Date           string // YYYY-MM-DD
	ActorID        string
	IdempotencyKey string
}

// WithdrawalRequest records an owner withdrawal from a cash account.
type WithdrawalRequest struct {
	TenantID       string
	CashAccountID  string
	Amount         decimal.Decimal
	Description    string
	Reference      string
	Date           string
	ActorID        string
	IdempotencyKey string
}

// TransferRequest records a plain account-to-account move.
type TransferRequest struct {
	TenantID       string
	FromAccountID  string
	ToAccountID    string
	Amount         decimal.Decimal
	Description    string
	Date           string
	ActorID        string
	IdempotencyKey string
}

// RecordDeposit debits the cash account and credits the tenant's income
// account, falling back to the capital account when no income account is
// configured. Fails with ledger.ErrRoleNotConfigured when neither resolves.
func (e *Engine) RecordDeposit(ctx context.Context, req DepositRequest) (*ledger.JournalEntry, error) {
	if err := validateCommon(req.TenantID, req.Amount, req.Date); err != nil {
		return nil, err
	}

	cash, err := e.accounts.Get(req.TenantID, req.CashAccountID)
	if err != nil {
		return nil, err
	}

	counterparty, err := e.resolveAny(req.TenantID, ledger.RoleIncome, ledger.RoleCapital)
	if err != nil {
		return nil, err
	}
	if counterparty == nil {
		return nil, fmt.Errorf("no income or equity account configured for deposits: %w", ledger.ErrRoleNotConfigured)
	}

	return e.post(ctx, twoLineEntry{
		tenantID:       req.TenantID,
		date:           req.Date,
		description:    req.Description,
		reference:      req.Reference,
		actorID:        req.ActorID,
		idempotencyKey: req.IdempotencyKey,
		debitAccount:   cash,
		creditAccount:  counterparty,
		amount:         req.Amount,
	})
}

// RecordWithdrawal debits the tenant's drawings account and credits the cash
// account. Fails with ledger.ErrRoleNotConfigured when no drawings account is
// configured.
func (e *Engine) RecordWithdrawal(ctx context.Context, req WithdrawalRequest) (*ledger.JournalEntry, error) {
	if err := validateCommon(req.TenantID, req.Amount, req.Date); err != nil {
		return nil, err
	}

	cash, err := e.accounts.Get(req.TenantID, req.CashAccountID)
	if err != nil {
		return nil, err
	}

	drawings, err := e.resolveAny(req.TenantID, ledger.RoleDrawings)
	if err != nil {
		return nil, err
	}
	if drawings == nil {
		return nil, fmt.Errorf("no drawings account configured for withdrawals: %w", ledger.ErrRoleNotConfigured)
	}

	return e.post(ctx, twoLineEntry{
		tenantID:       req.TenantID,
		date:           req.Date,
		description:    req.Description,
		reference:      req.Reference,
		actorID:        req.ActorID,
		idempotencyKey: req.IdempotencyKey,
		debitAccount:   drawings,
		creditAccount:  cash,
		amount:         req.Amount,
	})
}

// RecordTransfer debits the destination account and credits the source
// account.
func (e *Engine) RecordTransfer(ctx context.Context, req TransferRequest) (*ledger.JournalEntry, error) {
	if err := validateCommon(req.TenantID, req.Amount, req.Date); err != nil {
		return nil, err
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("transfer source and destination are the same account: %w", ledger.ErrInvalidLine)
	}

	from, err := e.accounts.Get(req.TenantID, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := e.accounts.Get(req.TenantID, req.ToAccountID)
	if err != nil {
		return nil, err
	}

	return e.post(ctx, twoLineEntry{
		tenantID:       req.TenantID,
		date:           req.Date,
		description:    req.Description,
		actorID:        req.ActorID,
		idempotencyKey: req.IdempotencyKey,
		debitAccount:   to,
		creditAccount:  from,
		amount:         req.Amount,
	})
}

// ReverseEntry posts the equal-and-opposite entry of an existing one and
// links it to the original. The original stays immutable.
func (e *Engine) ReverseEntry(ctx context.Context, tenantID, entryID, date, actorID string) (*ledger.JournalEntry, error) {
	if !ledger.ValidDate(date) {
		return nil, fmt.Errorf("invalid entry date %q", date)
	}

	original, err := e.journal.GetEntry(tenantID, entryID)
	if err != nil {
		return nil, err
	}

	reversal := &ledger.JournalEntry{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		EntryDate:     date,
		Description:   fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, original.Description),
		Reference:     original.EntryNumber,
		ReversesEntry: original.ID,
		CreatedBy:     actorID,
	}
	for _, l := range original.Lines {
		reversal.Lines = append(reversal.Lines, ledger.JournalLine{
			AccountID:   l.AccountID,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Description: l.Description,
		})
	}

	return e.commit(ctx, reversal)
}

// twoLineEntry carries the resolved shape of a standard posting.
type twoLineEntry struct {
	tenantID       string
	date           string
	description    string
	reference      string
	actorID        string
	idempotencyKey string
	debitAccount   *ledger.Account
	creditAccount  *ledger.Account
	amount         decimal.Decimal
}

func (e *Engine) post(ctx context.Context, p twoLineEntry) (*ledger.JournalEntry, error) {
	entry := &ledger.JournalEntry{
		ID:             uuid.New().String(),
		TenantID:       p.tenantID,
		EntryDate:      p.date,
		Description:    p.description,
		Reference:      p.reference,
		IdempotencyKey: p.idempotencyKey,
		CreatedBy:      p.actorID,
		Lines: []ledger.JournalLine{
			{AccountID: p.debitAccount.ID, Debit: p.amount, Description: p.description},
			{AccountID: p.creditAccount.ID, Credit: p.amount, Description: p.description},
		},
	}

	return e.commit(ctx, entry)
}

// commit applies one posting as a single atomic unit: entry number, entry and
// line inserts, and a signed balance adjustment per line. Transient conflicts
// are retried a bounded number of times.
func (e *Engine) commit(ctx context.Context, entry *ledger.JournalEntry) (*ledger.JournalEntry, error) {
	if entry.IdempotencyKey != "" {
		existing, err := e.journal.FindByIdempotencyKey(entry.TenantID, entry.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := e.conn.Transaction(ctx, func(tx *sql.Tx) error {
			number, err := e.journal.NextEntryNumberTx(tx, entry.TenantID)
			if err != nil {
				return err
			}
			entry.EntryNumber = number

			if err := e.journal.AppendEntryTx(tx, entry); err != nil {
				return err
			}

			for _, line := range entry.Lines {
				if err := e.accounts.AdjustBalanceTx(tx, line.AccountID, line.Debit.Sub(line.Credit)); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return e.finish(entry)
		}

		// A replayed idempotency key can lose the race to another writer;
		// the committed entry is the answer either way.
		if entry.IdempotencyKey != "" && errors.Is(err, ledger.ErrDuplicateEntryNumber) {
			existing, lookupErr := e.journal.FindByIdempotencyKey(entry.TenantID, entry.IdempotencyKey)
			if lookupErr == nil && existing != nil {
				return existing, nil
			}
		}

		if !db.IsBusy(err) && !errors.Is(err, ledger.ErrDuplicateEntryNumber) {
			return nil, err
		}
		lastErr = err
		slog.Debug("retrying posting after conflict", "tenant_id", entry.TenantID, "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
	}

	return nil, fmt.Errorf("posting failed after %d attempts: %v: %w", maxAttempts, lastErr, ledger.ErrConflict)
}

// finish reloads the committed entry with account names attached and emits
// the EntryPosted event.
func (e *Engine) finish(entry *ledger.JournalEntry) (*ledger.JournalEntry, error) {
	loaded, err := e.journal.GetEntry(entry.TenantID, entry.ID)
	if err != nil {
		return nil, err
	}

	if e.publisher != nil {
		event := events.EntryPosted{
			TenantID:    loaded.TenantID,
			EntryID:     loaded.ID,
			EntryNumber: loaded.EntryNumber,
			EntryDate:   loaded.EntryDate,
			Description: loaded.Description,
			OccurredAt:  time.Now().UTC(),
		}
		for _, l := range loaded.Lines {
			event.Lines = append(event.Lines, events.PostedLine{
				AccountID:   l.AccountID,
				AccountCode: l.AccountCode,
				Debit:       l.Debit,
				Credit:      l.Credit,
			})
		}
		if err := e.publisher.Publish(e.topic, event); err != nil {
			slog.Warn("failed to publish entry posted event", "entry_number", loaded.EntryNumber, "error", err)
		}
	}

	return loaded, nil
}

// resolveAny resolves the first configured account among the given roles,
// trying each role's explicit binding first and its conventional code second.
// Returns (nil, nil) when nothing resolves.
func (e *Engine) resolveAny(tenantID string, roles ...ledger.AccountRole) (*ledger.Account, error) {
	for _, role := range roles {
		accountID, err := e.roles.Resolve(tenantID, role)
		if err != nil {
			return nil, err
		}
		if accountID != "" {
			account, err := e.accounts.Get(tenantID, accountID)
			if err != nil {
				return nil, fmt.Errorf("role %s binds missing account %s: %w", role, accountID, err)
			}
			return account, nil
		}

		account, err := e.accounts.FindByCode(tenantID, role.FallbackCode())
		if err != nil {
			return nil, err
		}
		if account != nil {
			return account, nil
		}
	}
	return nil, nil
}

func validateCommon(tenantID string, amount decimal.Decimal, date string) error {
	if tenantID == "" {
		return fmt.Errorf("tenant id is required")
	}
	if !amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}
	if !ledger.ValidDate(date) {
		return fmt.Errorf("invalid entry date %q", date)
	}
	return nil
}
