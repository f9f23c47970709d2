package cmd

import (
	"log/slog"
	"net/http"

	"github.com/growfinance/growledger/internal/api"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger over a JSON HTTP API",
	Long: `Serve postings, reports, accounts and budget recalculation over a
JSON HTTP API, scoped by tenant.

Example:
  growledger serve
  growledger serve --addr :9090`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from configuration)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, conn := openLedger()
	defer conn.Close()

	addr := serveAddr
	if addr == "" {
		addr = cfg.Ledger.HTTPAddr
	}

	server := api.NewServer(conn, newEngine(cfg, conn))

	slog.Info("Starting ledger API", "addr", addr, "db", cfg.Ledger.DBPath)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		exitOnError(err, "server stopped")
	}
}
