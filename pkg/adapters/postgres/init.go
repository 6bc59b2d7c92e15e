// Package postgres provides a PostgreSQL database adapter for salesquery.
//
// This file registers the PostgreSQL adapter and dialect.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/salesquery/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/salesquery/pkg/adapter"
	"github.com/leapstack-labs/salesquery/pkg/dialect"
)

func init() {
	dialect.Register(Dialect)
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
