package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/growfinance/growledger/pkg/db"
	"github.com/growfinance/growledger/pkg/ledger"
	"github.com/growfinance/growledger/pkg/posting"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	postTenant      string
	postAccount     string
	postFrom        string
	postTo          string
	postAmount      string
	postDescription string
	postReference   string
	postDate        string
	postActor       string
)

// depositCmd represents the deposit command.
var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Record a deposit into a cash account",
	Long: `Record a deposit: debit the cash account, credit the tenant's income
account (falling back to the capital account).

Example:
  growledger deposit --tenant acme --account 1000 --amount 500.00 --date 2024-01-10`,
	Run: runDeposit,
}

// withdrawCmd represents the withdraw command.
var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Record an owner withdrawal from a cash account",
	Long: `Record a withdrawal: debit the tenant's drawings account, credit the
cash account.

Example:
  growledger withdraw --tenant acme --account 1000 --amount 120.00 --date 2024-01-15`,
	Run: runWithdraw,
}

// transferCmd represents the transfer command.
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Record a transfer between two accounts",
	Long: `Record an account-to-account transfer: debit the destination, credit
the source.

Example:
  growledger transfer --tenant acme --from 1000 --to 1010 --amount 200.00 --date 2024-01-20`,
	Run: runTransfer,
}

func init() {
	for _, c := range []*cobra.Command{depositCmd, withdrawCmd, transferCmd} {
		c.Flags().StringVar(&postTenant, "tenant", "", "Tenant ID (required)")
		c.Flags().StringVar(&postAmount, "amount", "", "Amount (required)")
		c.Flags().StringVar(&postDescription, "description", "", "Entry description")
		c.Flags().StringVar(&postDate, "date", "", "Entry date YYYY-MM-DD (default today)")
		c.Flags().StringVar(&postActor, "actor", "cli", "Acting user ID")
		c.MarkFlagRequired("tenant")
		c.MarkFlagRequired("amount")
	}

	for _, c := range []*cobra.Command{depositCmd, withdrawCmd} {
		c.Flags().StringVar(&postAccount, "account", "", "Cash account code (required)")
		c.Flags().StringVar(&postReference, "reference", "", "External reference")
		c.MarkFlagRequired("account")
	}

	transferCmd.Flags().StringVar(&postFrom, "from", "", "Source account code (required)")
	transferCmd.Flags().StringVar(&postTo, "to", "", "Destination account code (required)")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
}

// resolvePostingInputs parses the shared flags and resolves account codes.
func resolvePostingInputs(accounts *db.AccountStore, codes ...string) (decimal.Decimal, string, []string) {
	amount, err := decimal.NewFromString(postAmount)
	exitOnError(err, "invalid amount")

	date := postDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	ids := make([]string, 0, len(codes))
	for _, code := range codes {
		account, err := accounts.FindByCode(postTenant, code)
		exitOnError(err, "failed to resolve account")
		if account == nil {
			exitOnError(fmt.Errorf("no account with code %s: %w", code, ledger.ErrNotFound), "failed to resolve account")
		}
		ids = append(ids, account.ID)
	}

	return amount, date, ids
}

func runDeposit(cmd *cobra.Command, args []string) {
	cfg, conn := openLedger()
	defer conn.Close()

	amount, date, ids := resolvePostingInputs(db.NewAccountStore(conn), postAccount)

	entry, err := newEngine(cfg, conn).RecordDeposit(context.Background(), posting.DepositRequest{
		TenantID:      postTenant,
		CashAccountID: ids[0],
		Amount:        amount,
		Description:   postDescription,
		Reference:     postReference,
		Date:          date,
		ActorID:       postActor,
	})
	exitOnError(err, "failed to record deposit")

	printEntry(entry)
}

func runWithdraw(cmd *cobra.Command, args []string) {
	cfg, conn := openLedger()
	defer conn.Close()

	amount, date, ids := resolvePostingInputs(db.NewAccountStore(conn), postAccount)

	entry, err := newEngine(cfg, conn).RecordWithdrawal(context.Background(), posting.WithdrawalRequest{
		TenantID:      postTenant,
		CashAccountID: ids[0],
		Amount:        amount,
		Description:   postDescription,
		Reference:     postReference,
		Date:          date,
		ActorID:       postActor,
	})
	exitOnError(err, "failed to record withdrawal")

	printEntry(entry)
}

func runTransfer(cmd *cobra.Command, args []string) {
	cfg, conn := openLedger()
	defer conn.Close()

	amount, date, ids := resolvePostingInputs(db.NewAccountStore(conn), postFrom, postTo)

	entry, err := newEngine(cfg, conn).RecordTransfer(context.Background(), posting.TransferRequest{
		TenantID:      postTenant,
		FromAccountID: ids[0],
		ToAccountID:   ids[1],
		Amount:        amount,
		Description:   postDescription,
		Date:          date,
		ActorID:       postActor,
	})
	exitOnError(err, "failed to record transfer")

	printEntry(entry)
}

func printEntry(entry *ledger.JournalEntry) {
	slog.Info("Posted journal entry", "entry_number", entry.EntryNumber)

	fmt.Printf("\n%s  %s  %s\n", entry.EntryNumber, entry.EntryDate, entry.Description)
	for _, line := range entry.Lines {
		side, amount := "Dr", line.Debit
		if line.Credit.IsPositive() {
			side, amount = "Cr", line.Credit
		}
		fmt.Printf("  %s %-6s %-30s %12s\n", side, line.AccountCode, line.AccountName, amount.StringFixed(2))
	}
	fmt.Println()
}
