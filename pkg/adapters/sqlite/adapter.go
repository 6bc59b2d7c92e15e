// Package sqlite provides a SQLite database adapter for salesquery.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/salesquery/pkg/adapter"
	"github.com/leapstack-labs/salesquery/pkg/dialect"

	_ "modernc.org/sqlite" // sqlite driver
)

// Dialect is the SQLite SQL dialect. julianday over date() drops any time
// component, so the difference is a whole number of calendar days.
var Dialect = dialect.NewDialect("sqlite").
	DaysBetween(func(start, end string) string {
		return fmt.Sprintf("CAST(julianday(date(%s)) - julianday(date(%s)) AS INTEGER)", end, start)
	}).
	Build()

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQLite dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return Dialect
}

// Connect opens the SQLite file at cfg.Path.
// A read-only connection never creates the file, so a missing dataset
// fails here rather than producing empty results.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn, err := BuildDSN(cfg.Path, cfg.ReadOnly)
	if err != nil {
		return err
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", cfg.Path), slog.Bool("read_only", cfg.ReadOnly))
	return a.Open(ctx, "sqlite", dsn, cfg)
}

// BuildDSN returns the modernc.org/sqlite data source name for path.
func BuildDSN(path string, readOnly bool) (string, error) {
	if path == "" {
		return "", fmt.Errorf("sqlite database path is required")
	}
	if path == ":memory:" {
		return path, nil
	}
	if readOnly {
		return "file:" + path + "?mode=ro&_pragma=query_only(1)", nil
	}
	return "file:" + path, nil
}
