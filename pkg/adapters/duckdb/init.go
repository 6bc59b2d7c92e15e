// Package duckdb provides a DuckDB database adapter for salesquery.
//
// This file registers the DuckDB adapter and dialect.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/salesquery/pkg/adapters/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/salesquery/pkg/adapter"
	"github.com/leapstack-labs/salesquery/pkg/dialect"
)

func init() {
	dialect.Register(Dialect)
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
