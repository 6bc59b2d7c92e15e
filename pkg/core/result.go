package core

import (
	"database/sql"
	"fmt"
)

// Row maps column names to scanned values.
type Row map[string]any

// ResultSet is a fully materialized query result.
// Columns keeps the order reported by the driver; Rows keeps the order
// the database returned them in.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Values returns the values of row i in column order.
func (r *ResultSet) Values(i int) []any {
	out := make([]any, len(r.Columns))
	for j, col := range r.Columns {
		out[j] = r.Rows[i][col]
	}
	return out
}

// Collect drains rows into a ResultSet. It does not close rows.
func Collect(rows *sql.Rows) (*ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	rs := &ResultSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			val := values[i]
			// Convert []byte to string for readability
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		rs.Rows = append(rs.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return rs, nil
}
