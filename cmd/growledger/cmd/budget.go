package cmd

import (
	"fmt"
	"log/slog"

	"github.com/growfinance/growledger/pkg/budget"
	"github.com/growfinance/growledger/pkg/db"
	"github.com/spf13/cobra"
)

var (
	budgetTenant string
	budgetID     string
)

// budgetCmd represents the budget command group.
var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Inspect and recalculate budgets",
	Long: `Inspect and recalculate budgets.

Budget spend figures are cached rollups over the journal: they are refreshed
only when recalculate runs, not on every posting.

Example:
  growledger budget recalculate --tenant acme --id <budget-id>
  growledger budget status --tenant acme`,
}

var budgetRecalcCmd = &cobra.Command{
	Use:   "recalculate",
	Short: "Recalculate a budget's cached spend from the journal",
	Run:   runBudgetRecalc,
}

var budgetStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display all budgets with their cached spend",
	Run:   runBudgetStatus,
}

func init() {
	for _, c := range []*cobra.Command{budgetRecalcCmd, budgetStatusCmd} {
		c.Flags().StringVar(&budgetTenant, "tenant", "", "Tenant ID (required)")
		c.MarkFlagRequired("tenant")
		budgetCmd.AddCommand(c)
	}
	budgetRecalcCmd.Flags().StringVar(&budgetID, "id", "", "Budget ID (required)")
	budgetRecalcCmd.MarkFlagRequired("id")
}

func runBudgetRecalc(cmd *cobra.Command, args []string) {
	_, conn := openLedger()
	defer conn.Close()

	budgets := db.NewBudgetStore(conn)
	b, err := budgets.Get(budgetTenant, budgetID)
	exitOnError(err, "failed to load budget")

	spent, err := budget.NewRollup(conn).RecalculateSpent(b)
	exitOnError(err, "failed to recalculate budget")

	slog.Info("Recalculated budget spend", "budget_id", b.ID, "spent", spent.StringFixed(2))
	fmt.Printf("Budget %s: spent %s of %s (over: %v, near limit: %v)\n",
		b.ID, b.Spent.StringFixed(2), b.Amount.StringFixed(2), b.IsOverBudget(), b.IsNearLimit())
}

func runBudgetStatus(cmd *cobra.Command, args []string) {
	_, conn := openLedger()
	defer conn.Close()

	budgets, err := db.NewBudgetStore(conn).ListByTenant(budgetTenant)
	exitOnError(err, "failed to list budgets")

	if len(budgets) == 0 {
		fmt.Println("No budgets configured.")
		return
	}

	fmt.Printf("%-36s %-12s %-10s %12s %12s %s\n", "ID", "Period", "Filter", "Budgeted", "Spent", "State")
	for _, b := range budgets {
		filter := b.Category
		if b.AccountID != "" {
			filter = "account"
		}
		state := "ok"
		if b.IsOverBudget() {
			state = "over"
		} else if b.IsNearLimit() {
			state = "near limit"
		}
		fmt.Printf("%-36s %-12s %-10s %12s %12s %s\n",
			b.ID, b.Period, filter, b.Amount.StringFixed(2), b.Spent.StringFixed(2), state)
	}
}
