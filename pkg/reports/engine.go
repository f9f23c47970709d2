// Package reports derives the financial statements from the journal: trial
// balance, profit & loss, balance sheet, cash flow and general ledger. Every
// builder is a pure read over the account and journal stores; empty data
// yields empty, zero-valued reports rather than errors. All aggregation runs
// on decimals in Go, never on the storage engine's floats.
package reports

import (
	"fmt"

	"github.com/growfinance/growledger/pkg/db"
	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/shopspring/decimal"
)

// Engine builds reports for one tenant at a time.
type Engine struct {
	accounts *db.AccountStore
	journal  *db.JournalStore
}

// NewEngine creates a reporting engine over the shared connection.
func NewEngine(conn *db.Connection) *Engine {
	return &Engine{
		accounts: db.NewAccountStore(conn),
		journal:  db.NewJournalStore(conn),
	}
}

// accountTotals is the decimal aggregate of one account's lines.
type accountTotals struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

func (t accountTotals) net() decimal.Decimal { return t.debit.Sub(t.credit) }

// loadTotals fetches accounts (ordered by code) and aggregates every line
// dated on or before to into per-account debit/credit totals, split at the
// from date: totals strictly before from land in opening, the rest in
// inRange. An empty from puts everything in inRange.
func (e *Engine) loadTotals(tenantID, from, to string) ([]ledger.Account, map[string]*accountTotals, map[string]*accountTotals, error) {
	accounts, err := e.accounts.ListByTenant(tenantID)
	if err != nil {
		return nil, nil, nil, err
	}

	lines, err := e.journal.LinesThrough(tenantID, to)
	if err != nil {
		return nil, nil, nil, err
	}

	opening := make(map[string]*accountTotals)
	inRange := make(map[string]*accountTotals)
	for _, line := range lines {
		target := inRange
		if from != "" && line.EntryDate < from {
			target = opening
		}
		t := target[line.AccountID]
		if t == nil {
			t = &accountTotals{}
			target[line.AccountID] = t
		}
		t.debit = t.debit.Add(line.Debit)
		t.credit = t.credit.Add(line.Credit)
	}

	return accounts, opening, inRange, nil
}

func validateRange(from, to string) error {
	if !ledger.ValidDate(from) {
		return fmt.Errorf("invalid from date %q", from)
	}
	if !ledger.ValidDate(to) {
		return fmt.Errorf("invalid to date %q", to)
	}
	if from > to {
		return fmt.Errorf("from date %s is after to date %s", from, to)
	}
	return nil
}

// TrialBalance sums every account's debit and credit lines posted on or
// before asOf. Accounts with no activity are omitted; ordering is by account
// code ascending.
func (e *Engine) TrialBalance(tenantID, asOf string) (*TrialBalance, error) {
	if !ledger.ValidDate(asOf) {
		return nil, fmt.Errorf("invalid as-of date %q", asOf)
	}

	accounts, _, totals, err := e.loadTotals(tenantID, "", asOf)
	if err != nil {
		return nil, err
	}

	report := &TrialBalance{TenantID: tenantID, AsOf: asOf}
	for _, account := range accounts {
		t := totals[account.ID]
		if t == nil || t.debit.Add(t.credit).IsZero() {
			continue
		}
		report.Rows = append(report.Rows, TrialBalanceRow{
			AccountID:   account.ID,
			Code:        account.Code,
			Name:        account.Name,
			Type:        account.Type,
			DebitTotal:  t.debit,
			CreditTotal: t.credit,
		})
		report.TotalDebit = report.TotalDebit.Add(t.debit)
		report.TotalCredit = report.TotalCredit.Add(t.credit)
	}
	report.IsBalanced = report.TotalDebit.Equal(report.TotalCredit)

	return report, nil
}

// ProfitAndLoss nets revenue (credit minus debit) and expense (debit minus
// credit) activity within [from, to], omitting accounts whose net is exactly
// zero in range.
func (e *Engine) ProfitAndLoss(tenantID, from, to string) (*ProfitAndLoss, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	accounts, _, inRange, err := e.loadTotals(tenantID, from, to)
	if err != nil {
		return nil, err
	}

	report := &ProfitAndLoss{TenantID: tenantID, From: from, To: to}
	for _, account := range accounts {
		t := inRange[account.ID]
		if t == nil {
			continue
		}
		switch account.Type {
		case ledger.AccountRevenue:
			net := t.credit.Sub(t.debit)
			if net.IsZero() {
				continue
			}
			report.Revenue = append(report.Revenue, AccountAmount{
				AccountID: account.ID, Code: account.Code, Name: account.Name, Net: net,
			})
			report.TotalRevenue = report.TotalRevenue.Add(net)
		case ledger.AccountExpense:
			net := t.net()
			if net.IsZero() {
				continue
			}
			report.Expenses = append(report.Expenses, AccountAmount{
				AccountID: account.ID, Code: account.Code, Name: account.Name, Net: net,
			})
			report.TotalExpenses = report.TotalExpenses.Add(net)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	return report, nil
}

// BalanceSheet reports cumulative positions as of a date: assets as debit
// minus credit, liabilities and equity as credit minus debit. All accounts of
// the three types are listed, zero balances included.
func (e *Engine) BalanceSheet(tenantID, asOf string) (*BalanceSheet, error) {
	if !ledger.ValidDate(asOf) {
		return nil, fmt.Errorf("invalid as-of date %q", asOf)
	}

	accounts, _, totals, err := e.loadTotals(tenantID, "", asOf)
	if err != nil {
		return nil, err
	}

	report := &BalanceSheet{TenantID: tenantID, AsOf: asOf}
	for _, account := range accounts {
		var t accountTotals
		if cur := totals[account.ID]; cur != nil {
			t = *cur
		}
		switch account.Type {
		case ledger.AccountAsset:
			net := t.net()
			report.Assets = append(report.Assets, AccountAmount{
				AccountID: account.ID, Code: account.Code, Name: account.Name, Net: net,
			})
			report.TotalAssets = report.TotalAssets.Add(net)
		case ledger.AccountLiability:
			net := t.credit.Sub(t.debit)
			report.Liabilities = append(report.Liabilities, AccountAmount{
				AccountID: account.ID, Code: account.Code, Name: account.Name, Net: net,
			})
			report.TotalLiabilities = report.TotalLiabilities.Add(net)
		case ledger.AccountEquity:
			net := t.credit.Sub(t.debit)
			report.Equity = append(report.Equity, AccountAmount{
				AccountID: account.ID, Code: account.Code, Name: account.Name, Net: net,
			})
			report.TotalEquity = report.TotalEquity.Add(net)
		}
	}

	return report, nil
}

// CashFlow restricts to accounts with the cash sub-type: opening is the
// cumulative net strictly before from, inflows the debits and outflows the
// credits within [from, to].
func (e *Engine) CashFlow(tenantID, from, to string) (*CashFlow, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	accounts, opening, inRange, err := e.loadTotals(tenantID, from, to)
	if err != nil {
		return nil, err
	}

	report := &CashFlow{TenantID: tenantID, From: from, To: to}
	for _, account := range accounts {
		if !account.IsCash() {
			continue
		}

		row := CashFlowAccount{AccountID: account.ID, Code: account.Code, Name: account.Name}
		if t := opening[account.ID]; t != nil {
			row.OpeningBalance = t.net()
		}
		if t := inRange[account.ID]; t != nil {
			row.Inflows = t.debit
			row.Outflows = t.credit
		}
		row.ClosingBalance = row.OpeningBalance.Add(row.Inflows).Sub(row.Outflows)

		report.Accounts = append(report.Accounts, row)
		report.OpeningBalance = report.OpeningBalance.Add(row.OpeningBalance)
		report.Inflows = report.Inflows.Add(row.Inflows)
		report.Outflows = report.Outflows.Add(row.Outflows)
	}
	report.ClosingBalance = report.OpeningBalance.Add(report.Inflows).Sub(report.Outflows)

	return report, nil
}

// GeneralLedger walks each selected account's lines within [from, to] in
// chronological order, stamping a running balance on every line. With an
// accountID the report covers only that account; otherwise it covers every
// account with an opening balance or in-range activity.
func (e *Engine) GeneralLedger(tenantID, from, to, accountID string) (*GeneralLedger, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	accounts, err := e.accounts.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if accountID != "" {
		account, err := e.accounts.Get(tenantID, accountID)
		if err != nil {
			return nil, err
		}
		accounts = []ledger.Account{*account}
	}

	report := &GeneralLedger{TenantID: tenantID, From: from, To: to}
	for _, account := range accounts {
		lines, err := e.journal.LinesForAccount(tenantID, account.ID, "0000-01-01", to)
		if err != nil {
			return nil, err
		}

		row := GeneralLedgerAccount{AccountID: account.ID, Code: account.Code, Name: account.Name}

		// Split at from: everything earlier forms the opening balance.
		opening := decimal.Zero
		var inRange []ledger.PostedLine
		for _, line := range lines {
			if line.EntryDate < from {
				opening = opening.Add(line.Debit).Sub(line.Credit)
			} else {
				inRange = append(inRange, line)
			}
		}

		row.OpeningBalance = opening
		running := opening
		for _, line := range inRange {
			running = running.Add(line.Debit).Sub(line.Credit)
			row.Lines = append(row.Lines, GeneralLedgerLine{
				LineID:      line.LineID,
				EntryID:     line.EntryID,
				EntryNumber: line.EntryNumber,
				EntryDate:   line.EntryDate,
				Description: line.Description,
				Debit:       line.Debit,
				Credit:      line.Credit,
				Running:     running,
			})
		}
		row.ClosingBalance = running

		if accountID == "" && row.OpeningBalance.IsZero() && len(row.Lines) == 0 {
			continue
		}
		report.Accounts = append(report.Accounts, row)
	}

	return report, nil
}
