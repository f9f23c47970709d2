package reports

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/growfinance/growledger/pkg/db"
	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/growfinance/growledger/pkg/posting"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fixture struct {
	engine  *Engine
	posting *posting.Engine

	cash    *ledger.Account
	savings *ledger.Account
	income  *ledger.Account
	capital *ledger.Account
	rent    *ledger.Account
}

// newFixture seeds a tenant and posts a month of activity:
//
//	2024-01-10  deposit   500  (cash / income)
//	2024-01-15  withdrawal 120 (drawings / cash)
//	2024-01-20  transfer  200  cash -> savings
//	2024-01-25  transfer   80  cash -> rent expense
func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "reports_test.db"))
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	accounts := db.NewAccountStore(conn)
	create := func(code, name string, typ ledger.AccountType, subType string) *ledger.Account {
		a := &ledger.Account{
			ID:       uuid.New().String(),
			TenantID: "t1",
			Code:     code,
			Name:     name,
			Type:     typ,
			SubType:  subType,
			Active:   true,
		}
		if err := accounts.Create(a); err != nil {
			t.Fatalf("Create(%s) returned error: %v", code, err)
		}
		return a
	}

	f := &fixture{
		engine:  NewEngine(conn),
		posting: posting.NewEngine(conn),
	}
	f.cash = create("1000", "Business Checking", ledger.AccountAsset, ledger.SubTypeCash)
	f.savings = create("1010", "Business Savings", ledger.AccountAsset, ledger.SubTypeCash)
	f.capital = create(ledger.CodeOwnerCapital, "Owner's Capital", ledger.AccountEquity, "")
	create(ledger.CodeOwnerDrawings, "Owner's Drawings", ledger.AccountEquity, "")
	f.income = create(ledger.CodeOtherIncome, "Other Income", ledger.AccountRevenue, "")
	f.rent = create("6000", "Rent Expense", ledger.AccountExpense, "operations")

	ctx := context.Background()
	if _, err := f.posting.RecordDeposit(ctx, posting.DepositRequest{
		TenantID: "t1", CashAccountID: f.cash.ID, Amount: d("500"),
		Description: "Client payment", Date: "2024-01-10",
	}); err != nil {
		t.Fatalf("RecordDeposit() returned error: %v", err)
	}
	if _, err := f.posting.RecordWithdrawal(ctx, posting.WithdrawalRequest{
		TenantID: "t1", CashAccountID: f.cash.ID, Amount: d("120"),
		Description: "Owner draw", Date: "2024-01-15",
	}); err != nil {
		t.Fatalf("RecordWithdrawal() returned error: %v", err)
	}
	if _, err := f.posting.RecordTransfer(ctx, posting.TransferRequest{
		TenantID: "t1", FromAccountID: f.cash.ID, ToAccountID: f.savings.ID,
		Amount: d("200"), Description: "Move to savings", Date: "2024-01-20",
	}); err != nil {
		t.Fatalf("RecordTransfer() returned error: %v", err)
	}
	if _, err := f.posting.RecordTransfer(ctx, posting.TransferRequest{
		TenantID: "t1", FromAccountID: f.cash.ID, ToAccountID: f.rent.ID,
		Amount: d("80"), Description: "January rent", Date: "2024-01-25",
	}); err != nil {
		t.Fatalf("RecordTransfer() returned error: %v", err)
	}

	return f
}

func TestTrialBalance(t *testing.T) {
	f := newFixture(t)

	report, err := f.engine.TrialBalance("t1", "2024-01-31")
	if err != nil {
		t.Fatalf("TrialBalance() returned error: %v", err)
	}

	if !report.IsBalanced {
		t.Errorf("trial balance is not balanced: debit %s credit %s",
			report.TotalDebit, report.TotalCredit)
	}
	if !report.TotalDebit.Equal(d("900")) {
		t.Errorf("total debit = %s, expected 900", report.TotalDebit)
	}

	rows := make(map[string]TrialBalanceRow)
	for _, row := range report.Rows {
		rows[row.Code] = row
	}

	// Capital has no activity and must be omitted.
	if _, ok := rows[ledger.CodeOwnerCapital]; ok {
		t.Errorf("trial balance includes inactive capital account")
	}
	cash := rows["1000"]
	if !cash.DebitTotal.Equal(d("500")) || !cash.CreditTotal.Equal(d("400")) {
		t.Errorf("cash totals = %s/%s, expected 500/400", cash.DebitTotal, cash.CreditTotal)
	}
	income := rows[ledger.CodeOtherIncome]
	if !income.CreditTotal.Equal(d("500")) || !income.DebitTotal.IsZero() {
		t.Errorf("income totals = %s/%s, expected 0/500", income.DebitTotal, income.CreditTotal)
	}
}

func TestTrialBalanceCutoffDate(t *testing.T) {
	f := newFixture(t)

	// Only the deposit falls on or before the 10th.
	report, err := f.engine.TrialBalance("t1", "2024-01-10")
	if err != nil {
		t.Fatalf("TrialBalance() returned error: %v", err)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("trial balance has %d rows, expected 2", len(report.Rows))
	}
	if !report.TotalDebit.Equal(d("500")) || !report.IsBalanced {
		t.Errorf("totals = %s/%s balanced=%v, expected 500/500 balanced",
			report.TotalDebit, report.TotalCredit, report.IsBalanced)
	}
}

func TestProfitAndLoss(t *testing.T) {
	f := newFixture(t)

	report, err := f.engine.ProfitAndLoss("t1", "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("ProfitAndLoss() returned error: %v", err)
	}

	if len(report.Revenue) != 1 || !report.Revenue[0].Net.Equal(d("500")) {
		t.Errorf("revenue = %+v, expected one 500 line", report.Revenue)
	}
	if len(report.Expenses) != 1 || !report.Expenses[0].Net.Equal(d("80")) {
		t.Errorf("expenses = %+v, expected one 80 line", report.Expenses)
	}
	if !report.NetIncome.Equal(d("420")) {
		t.Errorf("net income = %s, expected 420", report.NetIncome)
	}
}

func TestProfitAndLossEmptyRange(t *testing.T) {
	f := newFixture(t)

	report, err := f.engine.ProfitAndLoss("t1", "2024-02-01", "2024-02-29")
	if err != nil {
		t.Fatalf("ProfitAndLoss() returned error: %v", err)
	}
	if len(report.Revenue) != 0 || len(report.Expenses) != 0 || !report.NetIncome.IsZero() {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestProfitAndLossRejectsInvertedRange(t *testing.T) {
	f := newFixture(t)

	if _, err := f.engine.ProfitAndLoss("t1", "2024-02-01", "2024-01-01"); err == nil {
		t.Errorf("ProfitAndLoss() accepted inverted range")
	}
}

func TestBalanceSheet(t *testing.T) {
	f := newFixture(t)

	report, err := f.engine.BalanceSheet("t1", "2024-01-31")
	if err != nil {
		t.Fatalf("BalanceSheet() returned error: %v", err)
	}

	if !report.TotalAssets.Equal(d("300")) {
		t.Errorf("total assets = %s, expected 300", report.TotalAssets)
	}

	assets := make(map[string]decimal.Decimal)
	for _, a := range report.Assets {
		assets[a.Code] = a.Net
	}
	if !assets["1000"].Equal(d("100")) || !assets["1010"].Equal(d("200")) {
		t.Errorf("asset positions = %v, expected cash 100 savings 200", assets)
	}

	// Zero-balance accounts still appear on the balance sheet.
	var sawCapital bool
	for _, e := range report.Equity {
		if e.Code == ledger.CodeOwnerCapital {
			sawCapital = true
			if !e.Net.IsZero() {
				t.Errorf("capital position = %s, expected 0", e.Net)
			}
		}
	}
	if !sawCapital {
		t.Errorf("balance sheet omitted zero-balance capital account")
	}
	// Drawings were debited 120 against a credit-normal section.
	if !report.TotalEquity.Equal(d("-120")) {
		t.Errorf("total equity = %s, expected -120", report.TotalEquity)
	}
}

func TestCashFlow(t *testing.T) {
	f := newFixture(t)

	report, err := f.engine.CashFlow("t1", "2024-01-12", "2024-01-31")
	if err != nil {
		t.Fatalf("CashFlow() returned error: %v", err)
	}

	// Only the two cash sub-type accounts participate.
	if len(report.Accounts) != 2 {
		t.Fatalf("cash flow covers %d accounts, expected 2", len(report.Accounts))
	}

	if !report.OpeningBalance.Equal(d("500")) {
		t.Errorf("opening balance = %s, expected 500", report.OpeningBalance)
	}
	if !report.Inflows.Equal(d("200")) || !report.Outflows.Equal(d("400")) {
		t.Errorf("flows = +%s/-%s, expected +200/-400", report.Inflows, report.Outflows)
	}
	if !report.ClosingBalance.Equal(d("300")) {
		t.Errorf("closing balance = %s, expected 300", report.ClosingBalance)
	}

	for _, row := range report.Accounts {
		expected := row.OpeningBalance.Add(row.Inflows).Sub(row.Outflows)
		if !row.ClosingBalance.Equal(expected) {
			t.Errorf("%s closing = %s, expected %s", row.Code, row.ClosingBalance, expected)
		}
	}
}

func TestGeneralLedgerSingleAccount(t *testing.T) {
	f := newFixture(t)

	report, err := f.engine.GeneralLedger("t1", "2024-01-12", "2024-01-31", f.cash.ID)
	if err != nil {
		t.Fatalf("GeneralLedger() returned error: %v", err)
	}
	if len(report.Accounts) != 1 {
		t.Fatalf("report covers %d accounts, expected 1", len(report.Accounts))
	}

	row := report.Accounts[0]
	if !row.OpeningBalance.Equal(d("500")) {
		t.Errorf("opening balance = %s, expected 500", row.OpeningBalance)
	}
	if len(row.Lines) != 3 {
		t.Fatalf("cash account has %d lines in range, expected 3", len(row.Lines))
	}

	expected := []string{"380", "180", "100"}
	for i, line := range row.Lines {
		if !line.Running.Equal(d(expected[i])) {
			t.Errorf("line %d running = %s, expected %s", i, line.Running, expected[i])
		}
	}
	if !row.ClosingBalance.Equal(d("100")) {
		t.Errorf("closing balance = %s, expected 100", row.ClosingBalance)
	}

	// Round trip: opening plus line deltas equals closing.
	sum := row.OpeningBalance
	for _, line := range row.Lines {
		sum = sum.Add(line.Debit).Sub(line.Credit)
	}
	if !sum.Equal(row.ClosingBalance) {
		t.Errorf("opening + deltas = %s, closing = %s", sum, row.ClosingBalance)
	}
}

func TestGeneralLedgerAllAccountsSkipsInactive(t *testing.T) {
	f := newFixture(t)

	report, err := f.engine.GeneralLedger("t1", "2024-01-01", "2024-01-31", "")
	if err != nil {
		t.Fatalf("GeneralLedger() returned error: %v", err)
	}

	for _, row := range report.Accounts {
		if row.Code == ledger.CodeOwnerCapital {
			t.Errorf("report includes account with no activity")
		}
	}
	// Cash, savings, drawings, income and rent all moved.
	if len(report.Accounts) != 5 {
		t.Errorf("report covers %d accounts, expected 5", len(report.Accounts))
	}
}

func TestReportsAreEmptyForUnknownTenant(t *testing.T) {
	f := newFixture(t)

	report, err := f.engine.TrialBalance("nobody", "2024-01-31")
	if err != nil {
		t.Fatalf("TrialBalance() returned error: %v", err)
	}
	if len(report.Rows) != 0 || !report.TotalDebit.IsZero() {
		t.Errorf("expected empty trial balance, got %+v", report)
	}
	if !report.IsBalanced {
		t.Errorf("empty trial balance should report balanced")
	}
}
