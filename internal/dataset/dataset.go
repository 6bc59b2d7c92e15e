package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/leapstack-labs/salesquery/pkg/adapters/sqlite"
	"github.com/leapstack-labs/salesquery/pkg/core"
)

// Column describes one column of a dataset table.
type Column struct {
	Name    string
	Numeric bool // empty CSV values load as NULL instead of ''
}

// Table describes a dataset table in column order.
type Table struct {
	Name    string
	Columns []Column
}

// Products is the product catalog table.
var Products = Table{
	Name: "products",
	Columns: []Column{
		{Name: "productCode"},
		{Name: "productName"},
		{Name: "productLine"},
		{Name: "productScale"},
		{Name: "productVendor"},
		{Name: "productDescription"},
		{Name: "quantityInStock"},
		{Name: "buyPrice", Numeric: true},
		{Name: "MSRP", Numeric: true},
	},
}

// Orders is the sales orders table.
var Orders = Table{
	Name: "orders",
	Columns: []Column{
		{Name: "orderNumber", Numeric: true},
		{Name: "orderDate"},
		{Name: "requiredDate"},
		{Name: "shippedDate"},
		{Name: "status"},
		{Name: "comments"},
		{Name: "customerNumber", Numeric: true},
	},
}

// Tables lists the dataset tables by name.
var Tables = map[string]Table{
	Products.Name: Products,
	Orders.Name:   Orders,
}

func (t Table) column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// Dataset is a writable handle on a SQLite sales dataset.
type Dataset struct {
	adp    *sqlite.Adapter
	path   string
	logger *slog.Logger
}

// Create opens (creating if needed) the SQLite file at path and migrates it.
func Create(ctx context.Context, path string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	adp := sqlite.New(logger)
	if err := adp.Connect(ctx, core.AdapterConfig{Type: "sqlite", Path: path}); err != nil {
		return nil, err
	}

	if err := Migrate(adp.DB); err != nil {
		_ = adp.Close()
		return nil, err
	}

	logger.Debug("dataset ready", slog.String("path", path))
	return &Dataset{adp: adp, path: path, logger: logger}, nil
}

// Close closes the dataset connection.
func (d *Dataset) Close() error {
	return d.adp.Close()
}

// DB exposes the underlying connection.
func (d *Dataset) DB() *sql.DB {
	return d.adp.DB
}

// Insert writes rows into table inside one transaction. Only the keys
// present in a row are written, so omitted columns take their schema
// default (shippedDate is '', the rest NULL). Keys that are not table
// columns are rejected.
func (d *Dataset) Insert(ctx context.Context, table string, rows ...core.Row) error {
	t, ok := Tables[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	for i, row := range rows {
		for key := range row {
			if _, ok := t.column(key); !ok {
				return fmt.Errorf("row %d: unknown column %q for table %s", i, key, table)
			}
		}
	}

	return d.insert(ctx, t, func(yield func([]string, []any) error) error {
		for _, row := range rows {
			names := make([]string, 0, len(row))
			values := make([]any, 0, len(row))
			for _, c := range t.Columns {
				if v, ok := lookup(row, c.Name); ok {
					names = append(names, c.Name)
					values = append(values, v)
				}
			}
			if err := yield(names, values); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadCSV loads CSV data with a header row of column names into table and
// returns the number of rows written.
func (d *Dataset) LoadCSV(ctx context.Context, table string, r io.Reader) (int, error) {
	t, ok := Tables[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%s: empty CSV", table)
		}
		return 0, fmt.Errorf("%s: failed to read CSV header: %w", table, err)
	}

	cols := make([]Column, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		c, ok := t.column(strings.TrimSpace(h))
		if !ok {
			return 0, fmt.Errorf("%s: unknown column %q in CSV header", table, h)
		}
		cols[i] = c
		names[i] = c.Name
	}

	count := 0
	err = d.insert(ctx, t, func(yield func([]string, []any) error) error {
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read CSV: %w", err)
			}

			values := make([]any, len(record))
			for i, v := range record {
				if v == "" && cols[i].Numeric {
					values[i] = nil
					continue
				}
				values[i] = v
			}
			if err := yield(names, values); err != nil {
				return err
			}
			count++
		}
	})
	if err != nil {
		return 0, err
	}

	d.logger.Debug("loaded CSV", slog.String("table", table), slog.Int("rows", count))
	return count, nil
}

// LoadCSVFile is LoadCSV reading from the file at path.
func (d *Dataset) LoadCSVFile(ctx context.Context, table, path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied CSV path
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return d.LoadCSV(ctx, table, f)
}

// insert feeds every (columns, values) pair produced by each to an INSERT
// prepared once per column list, committing only if all rows succeed.
func (d *Dataset) insert(ctx context.Context, t Table, each func(yield func([]string, []any) error) error) error {
	tx, err := d.adp.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmts := make(map[string]*sql.Stmt)
	defer func() {
		for _, stmt := range stmts {
			_ = stmt.Close()
		}
	}()

	err = each(func(names []string, values []any) error {
		key := strings.Join(names, ",")
		stmt, ok := stmts[key]
		if !ok {
			prepared, err := tx.PrepareContext(ctx, d.insertSQL(t, names))
			if err != nil {
				return fmt.Errorf("failed to prepare insert into %s: %w", t.Name, err)
			}
			stmt = prepared
			stmts[key] = stmt
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", t.Name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", t.Name, err)
	}
	return nil
}

func (d *Dataset) insertSQL(t Table, names []string) string {
	dialect := d.adp.Dialect()
	table := dialect.QuoteIdentifier(t.Name)
	if len(names) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", table)
	}

	quoted := make([]string, len(names))
	placeholders := make([]string, len(names))
	for i, name := range names {
		quoted[i] = dialect.QuoteIdentifier(name)
		placeholders[i] = dialect.FormatPlaceholder(i + 1)
	}
	//nolint:gosec // identifiers come from the fixed table definitions
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}

func lookup(row core.Row, name string) (any, bool) {
	if v, ok := row[name]; ok {
		return v, true
	}
	for k, v := range row {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}
