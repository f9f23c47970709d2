package cmd

import (
	"fmt"
	"time"

	"github.com/growfinance/growledger/pkg/reports"
	"github.com/spf13/cobra"
)

var (
	reportTenant  string
	reportAsOf    string
	reportFrom    string
	reportTo      string
	reportAccount string
)

// reportCmd represents the report command group.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build financial reports from the journal",
	Long: `Build financial reports from the journal.

Subcommands:
  trial-balance   Accumulated debit/credit totals per account as of a date
  profit-loss     Revenue and expense activity over a date range
  balance-sheet   Asset, liability and equity positions as of a date
  cash-flow       Cash account movement over a date range
  general-ledger  Per-account chronological lines with running balances

Example:
  growledger report trial-balance --tenant acme --as-of 2024-01-31
  growledger report general-ledger --tenant acme --from 2024-01-01 --to 2024-01-31 --account <id>`,
}

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Display the trial balance as of a date",
	Run:   runTrialBalance,
}

var profitLossCmd = &cobra.Command{
	Use:   "profit-loss",
	Short: "Display profit & loss for a date range",
	Run:   runProfitLoss,
}

var balanceSheetCmd = &cobra.Command{
	Use:   "balance-sheet",
	Short: "Display the balance sheet as of a date",
	Run:   runBalanceSheet,
}

var cashFlowCmd = &cobra.Command{
	Use:   "cash-flow",
	Short: "Display cash flow for a date range",
	Run:   runCashFlow,
}

var generalLedgerCmd = &cobra.Command{
	Use:   "general-ledger",
	Short: "Display the general ledger for a date range",
	Run:   runGeneralLedger,
}

func init() {
	subcommands := []*cobra.Command{
		trialBalanceCmd, profitLossCmd, balanceSheetCmd, cashFlowCmd, generalLedgerCmd,
	}
	for _, c := range subcommands {
		c.Flags().StringVar(&reportTenant, "tenant", "", "Tenant ID (required)")
		c.MarkFlagRequired("tenant")
		reportCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{trialBalanceCmd, balanceSheetCmd} {
		c.Flags().StringVar(&reportAsOf, "as-of", "", "As-of date YYYY-MM-DD (default today)")
	}
	for _, c := range []*cobra.Command{profitLossCmd, cashFlowCmd, generalLedgerCmd} {
		c.Flags().StringVar(&reportFrom, "from", "", "Start date YYYY-MM-DD (required)")
		c.Flags().StringVar(&reportTo, "to", "", "End date YYYY-MM-DD (required)")
		c.MarkFlagRequired("from")
		c.MarkFlagRequired("to")
	}
	generalLedgerCmd.Flags().StringVar(&reportAccount, "account", "", "Restrict to one account ID")
}

func reportEngine() *reports.Engine {
	_, conn := openLedger()
	// The connection lives for the duration of the process; report commands
	// exit right after printing.
	return reports.NewEngine(conn)
}

func asOfOrToday() string {
	if reportAsOf != "" {
		return reportAsOf
	}
	return time.Now().Format("2006-01-02")
}

func runTrialBalance(cmd *cobra.Command, args []string) {
	report, err := reportEngine().TrialBalance(reportTenant, asOfOrToday())
	exitOnError(err, "failed to build trial balance")

	fmt.Printf("\n=== Trial Balance as of %s ===\n", report.AsOf)
	fmt.Printf("%-6s %-30s %12s %12s\n", "Code", "Account", "Debit", "Credit")
	for _, row := range report.Rows {
		fmt.Printf("%-6s %-30s %12s %12s\n", row.Code, row.Name,
			row.DebitTotal.StringFixed(2), row.CreditTotal.StringFixed(2))
	}
	fmt.Printf("%-37s %12s %12s\n", "Total",
		report.TotalDebit.StringFixed(2), report.TotalCredit.StringFixed(2))
	fmt.Printf("Balanced: %v\n\n", report.IsBalanced)
}

func runProfitLoss(cmd *cobra.Command, args []string) {
	report, err := reportEngine().ProfitAndLoss(reportTenant, reportFrom, reportTo)
	exitOnError(err, "failed to build profit & loss")

	fmt.Printf("\n=== Profit & Loss %s to %s ===\n", report.From, report.To)
	fmt.Println("Revenue:")
	for _, row := range report.Revenue {
		fmt.Printf("  %-6s %-30s %12s\n", row.Code, row.Name, row.Net.StringFixed(2))
	}
	fmt.Println("Expenses:")
	for _, row := range report.Expenses {
		fmt.Printf("  %-6s %-30s %12s\n", row.Code, row.Name, row.Net.StringFixed(2))
	}
	fmt.Printf("Net income: %s\n\n", report.NetIncome.StringFixed(2))
}

func runBalanceSheet(cmd *cobra.Command, args []string) {
	report, err := reportEngine().BalanceSheet(reportTenant, asOfOrToday())
	exitOnError(err, "failed to build balance sheet")

	fmt.Printf("\n=== Balance Sheet as of %s ===\n", report.AsOf)
	sections := []struct {
		name  string
		rows  []reports.AccountAmount
		total string
	}{
		{"Assets", report.Assets, report.TotalAssets.StringFixed(2)},
		{"Liabilities", report.Liabilities, report.TotalLiabilities.StringFixed(2)},
		{"Equity", report.Equity, report.TotalEquity.StringFixed(2)},
	}
	for _, section := range sections {
		fmt.Printf("%s:\n", section.name)
		for _, row := range section.rows {
			fmt.Printf("  %-6s %-30s %12s\n", row.Code, row.Name, row.Net.StringFixed(2))
		}
		fmt.Printf("  Total %-33s %12s\n", section.name, section.total)
	}
	fmt.Println()
}

func runCashFlow(cmd *cobra.Command, args []string) {
	report, err := reportEngine().CashFlow(reportTenant, reportFrom, reportTo)
	exitOnError(err, "failed to build cash flow")

	fmt.Printf("\n=== Cash Flow %s to %s ===\n", report.From, report.To)
	for _, row := range report.Accounts {
		fmt.Printf("%-6s %-30s opening %12s in %12s out %12s closing %12s\n",
			row.Code, row.Name,
			row.OpeningBalance.StringFixed(2), row.Inflows.StringFixed(2),
			row.Outflows.StringFixed(2), row.ClosingBalance.StringFixed(2))
	}
	fmt.Printf("Opening: %s  Inflows: %s  Outflows: %s  Closing: %s\n\n",
		report.OpeningBalance.StringFixed(2), report.Inflows.StringFixed(2),
		report.Outflows.StringFixed(2), report.ClosingBalance.StringFixed(2))
}

func runGeneralLedger(cmd *cobra.Command, args []string) {
	report, err := reportEngine().GeneralLedger(reportTenant, reportFrom, reportTo, reportAccount)
	exitOnError(err, "failed to build general ledger")

	fmt.Printf("\n=== General Ledger %s to %s ===\n", report.From, report.To)
	for _, account := range report.Accounts {
		fmt.Printf("%s %s  opening %s\n", account.Code, account.Name, account.OpeningBalance.StringFixed(2))
		for _, line := range account.Lines {
			fmt.Printf("  %s %-10s %-30s %12s %12s %12s\n",
				line.EntryDate, line.EntryNumber, line.Description,
				line.Debit.StringFixed(2), line.Credit.StringFixed(2), line.Running.StringFixed(2))
		}
		fmt.Printf("  closing %s\n", account.ClosingBalance.StringFixed(2))
	}
	fmt.Println()
}
