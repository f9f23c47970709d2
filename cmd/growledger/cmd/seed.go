package cmd

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/growfinance/growledger/pkg/chart"
	"github.com/growfinance/growledger/pkg/db"
	"github.com/spf13/cobra"
)

var (
	seedTenant   string
	seedTemplate string
)

// seedCmd represents the seed command.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a tenant's chart of accounts",
	Long: `Seed a tenant's chart of accounts from a YAML template.

The template declares account codes, names, types and sub-types, and may bind
the well-known roles (income, capital, drawings) the posting engine resolves
deposits and withdrawals through.

Without --tenant a new tenant ID is generated and printed.

Example:
  growledger seed --tenant acme
  growledger seed --template config/chart-of-accounts.yaml`,
	Run: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedTenant, "tenant", "", "Tenant ID (generated when omitted)")
	seedCmd.Flags().StringVar(&seedTemplate, "template", "", "Chart template path (default from configuration)")
}

func runSeed(cmd *cobra.Command, args []string) {
	cfg, conn := openLedger()
	defer conn.Close()

	templatePath := seedTemplate
	if templatePath == "" {
		templatePath = cfg.Ledger.ChartTemplate
	}

	tpl, err := chart.Load(templatePath)
	exitOnError(err, "failed to load chart template")

	tenantID := seedTenant
	if tenantID == "" {
		tenantID = uuid.New().String()
	}

	slog.Info("Seeding chart of accounts", "tenant_id", tenantID, "template", templatePath)

	accounts, err := chart.Seed(db.NewAccountStore(conn), db.NewRoleStore(conn), tenantID, tpl)
	exitOnError(err, "failed to seed chart of accounts")

	fmt.Printf("Tenant:   %s\n", tenantID)
	fmt.Printf("Accounts: %d\n", len(accounts))
	for _, a := range accounts {
		fmt.Printf("  %-6s %-30s %s\n", a.Code, a.Name, a.Type)
	}
}
