package cmd

import (
	"log/slog"

	"github.com/growfinance/growledger/pkg/config"
	"github.com/growfinance/growledger/pkg/db"
	"github.com/growfinance/growledger/pkg/events/kafka"
	"github.com/growfinance/growledger/pkg/posting"
)

// openLedger loads configuration and opens the database. Callers own the
// returned connection.
func openLedger() (*config.Config, *db.Connection) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate("dbPath"); err != nil {
		exitOnError(err, "invalid configuration")
	}

	slog.Debug("Opening database", "path", cfg.Ledger.DBPath)
	conn, err := db.Open(cfg.Ledger.DBPath)
	exitOnError(err, "failed to open database")

	return cfg, conn
}

// newEngine builds the posting engine, wiring the Kafka publisher when
// brokers are configured.
func newEngine(cfg *config.Config, conn *db.Connection) *posting.Engine {
	var opts []posting.Option
	if cfg.EventsEnabled() {
		slog.Debug("Enabling event publishing", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
		publisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		opts = append(opts, posting.WithPublisher(publisher, cfg.Kafka.Topic))
	}
	return posting.NewEngine(conn, opts...)
}
