// Package catalog holds the fixed, ordered set of report queries run
// against the products and orders tables.
//
// Every entry is a pure read. Each one is available both as a Query value
// (for the runner, which renders untyped result sets) and as a typed
// function taking the connection explicitly.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/salesquery/pkg/core"
	"github.com/leapstack-labs/salesquery/pkg/dialect"
)

// Source is a read-only connection the catalogue can run against.
// adapter.Adapter satisfies it.
type Source interface {
	Query(ctx context.Context, sql string, args ...any) (*core.Rows, error)
	Dialect() *dialect.Dialect
}

// Query is one catalogue entry.
type Query struct {
	Name  string
	Title string
	// Limit caps the row count after sorting; 0 means no cap.
	Limit int

	build func(d *dialect.Dialect) string
}

// SQL renders the statement for dialect d.
func (q Query) SQL(d *dialect.Dialect) string {
	stmt := q.build(d)
	if q.Limit > 0 {
		stmt += fmt.Sprintf("\n LIMIT %d", q.Limit)
	}
	return stmt
}

// Run executes the query and materializes every row.
func (q Query) Run(ctx context.Context, src Source) (*core.ResultSet, error) {
	rows, err := src.Query(ctx, q.SQL(src.Dialect()))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return core.Collect(rows.Rows)
}

// static returns a builder for SQL that is identical in every dialect.
func static(sql string) func(*dialect.Dialect) string {
	return func(*dialect.Dialect) string { return sql }
}

// catalogue is the run order.
var catalogue = []Query{
	allProducts,
	productsByName,
	productsByNameAsc,
	productsByNameDesc,
	descriptionLengths,
	namesByDescriptionLength,
	productsByVendorName,
	productsByNameVendor,
	distinctCounts,
	stockLexical,
	stockLexicalTop10,
	stockNumericTop10,
	stockNumeric,
	firstOrders,
	longestComments,
	longestCancelledComments,
	longestCancelledResolvedComments,
	firstCustomerOrderDates,
	openOrders,
	longestFulfillment,
}

// All returns every catalogue entry in run order.
func All() []Query {
	out := make([]Query, len(catalogue))
	copy(out, catalogue)
	return out
}

// Names returns the entry names in run order.
func Names() []string {
	names := make([]string, len(catalogue))
	for i, q := range catalogue {
		names[i] = q.Name
	}
	return names
}

// Lookup finds an entry by name.
func Lookup(name string) (Query, bool) {
	for _, q := range catalogue {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}

// Select returns the named entries in catalogue order, not argument order.
// Duplicates collapse. An empty list selects everything.
func Select(names []string) ([]Query, error) {
	if len(names) == 0 {
		return All(), nil
	}

	want := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := Lookup(name); !ok {
			return nil, &UnknownQueryError{Name: name, Available: Names()}
		}
		want[name] = true
	}

	var out []Query
	for _, q := range catalogue {
		if want[q.Name] {
			out = append(out, q)
		}
	}
	return out, nil
}

// UnknownQueryError is returned when a name is not in the catalogue.
type UnknownQueryError struct {
	Name      string
	Available []string
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("unknown query %q\nHint: run 'salesquery list' to see the %d available queries", e.Name, len(e.Available))
}
