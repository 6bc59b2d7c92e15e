// Package postgres provides a PostgreSQL database adapter for salesquery.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/leapstack-labs/salesquery/pkg/adapter"
	"github.com/leapstack-labs/salesquery/pkg/dialect"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// Dialect is the PostgreSQL SQL dialect. Subtracting two dates yields an
// integer day count.
var Dialect = dialect.NewDialect("postgres").
	Placeholders(dialect.PlaceholderDollar).
	DaysBetween(func(start, end string) string {
		return fmt.Sprintf("(CAST(%s AS DATE) - CAST(%s AS DATE))", end, start)
	}).
	Build()

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the PostgreSQL dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return Dialect
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildPostgresDSN(cfg)

	a.Logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
		slog.Bool("read_only", cfg.ReadOnly))

	return a.Open(ctx, "pgx", dsn, cfg)
}

// buildPostgresDSN constructs a PostgreSQL connection string.
// Unknown keys are sent by pgx as run-time parameters, which is how
// read-only mode reaches the server.
func buildPostgresDSN(cfg adapter.Config) string {
	// Build key=value format: host=localhost port=5432 user=postgres ...
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	keys := make([]string, 0, len(cfg.Options))
	for k := range cfg.Options {
		if k != "sslmode" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		dsn += fmt.Sprintf(" %s=%s", k, cfg.Options[k])
	}

	if cfg.ReadOnly {
		dsn += " default_transaction_read_only=on"
	}

	return dsn
}
