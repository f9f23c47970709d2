// Package cmd provides CLI commands for growledger.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "growledger",
	Short: "Double-entry ledger and reporting engine for GrowFinance",
	Long: `growledger is the double-entry ledger core of the GrowFinance
accounting platform: the chart of accounts, journal postings and the
financial reports derived from them.

It supports:
- Seeding a tenant's chart of accounts from a YAML template
- Posting deposits, withdrawals and transfers
- Trial balance, profit & loss, balance sheet, cash flow and general ledger
- Budget spend recalculation
- Serving the same operations over a JSON HTTP API

Example:
  growledger seed --tenant acme
  growledger deposit --tenant acme --account 1000 --amount 500 --date 2024-01-10
  growledger report trial-balance --tenant acme --as-of 2024-01-31`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(depositCmd)
	rootCmd.AddCommand(withdrawCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(serveCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
