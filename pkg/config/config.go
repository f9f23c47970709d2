// Package config provides configuration management for the ledger service.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Ledger LedgerConfig
	Kafka  KafkaConfig
	Debug  bool
}

// LedgerConfig represents storage and serving configuration.
type LedgerConfig struct {
	DBPath        string
	HTTPAddr      string
	ChartTemplate string
}

// KafkaConfig represents event publishing configuration. Publishing is
// disabled when no brokers are configured.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Ledger: LedgerConfig{
			DBPath:        getEnvOrDefault("GROWLEDGER_DB_PATH", "growledger.db"),
			HTTPAddr:      getEnvOrDefault("GROWLEDGER_HTTP_ADDR", ":8080"),
			ChartTemplate: getEnvOrDefault("GROWLEDGER_CHART_TEMPLATE", "config/chart-of-accounts.yaml"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("GROWLEDGER_KAFKA_BROKERS")),
			Topic:   getEnvOrDefault("GROWLEDGER_KAFKA_TOPIC", "ledger.entry_posted"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, key := range required {
		var value string
		switch key {
		case "dbPath":
			value = c.Ledger.DBPath
		case "httpAddr":
			value = c.Ledger.HTTPAddr
		case "chartTemplate":
			value = c.Ledger.ChartTemplate
		case "kafkaBrokers":
			value = strings.Join(c.Kafka.Brokers, ",")
		case "kafkaTopic":
			value = c.Kafka.Topic
		}

		if value == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// EventsEnabled reports whether Kafka publishing is configured.
func (c *Config) EventsEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma-separated environment value, trimming whitespace
// and dropping empty items.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
