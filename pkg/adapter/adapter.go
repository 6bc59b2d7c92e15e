// Package adapter provides the database adapter contract used by salesquery.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves with this package from init().
package adapter

import (
	"context"

	"github.com/leapstack-labs/salesquery/pkg/core"
	"github.com/leapstack-labs/salesquery/pkg/dialect"
)

type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// Dialect returns the SQL dialect for this adapter.
	Dialect() *dialect.Dialect
}
