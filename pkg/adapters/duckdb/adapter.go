// Package duckdb provides a DuckDB database adapter for salesquery.
package duckdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/leapstack-labs/salesquery/pkg/adapter"
	"github.com/leapstack-labs/salesquery/pkg/dialect"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Dialect is the DuckDB SQL dialect.
var Dialect = dialect.NewDialect("duckdb").
	DaysBetween(func(start, end string) string {
		return fmt.Sprintf("date_diff('day', CAST(%s AS DATE), CAST(%s AS DATE))", start, end)
	}).
	Build()

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the DuckDB dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return Dialect
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database; in-memory databases
// ignore ReadOnly since there is nothing to protect.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildDuckDBDSN(cfg)
	a.Logger.Debug("connecting to duckdb", slog.String("path", cfg.Path), slog.Bool("read_only", cfg.ReadOnly))
	return a.Open(ctx, "duckdb", dsn, cfg)
}

// buildDuckDBDSN appends DuckDB configuration as query parameters.
// Options are passed through verbatim (e.g. threads, memory_limit).
func buildDuckDBDSN(cfg adapter.Config) string {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	params := url.Values{}
	if cfg.ReadOnly && path != ":memory:" {
		params.Set("access_mode", "READ_ONLY")
	}
	for k, v := range cfg.Options {
		params.Set(k, v)
	}
	if len(params) == 0 {
		return path
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(params.Get(k)))
	}
	return path + "?" + strings.Join(parts, "&")
}
