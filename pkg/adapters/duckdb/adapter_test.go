package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/salesquery/pkg/adapter"
	"github.com/leapstack-labs/salesquery/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDuckDBDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   core.AdapterConfig
		expected string
	}{
		{
			name:     "empty path is in-memory",
			config:   core.AdapterConfig{},
			expected: ":memory:",
		},
		{
			name:     "in-memory ignores read only",
			config:   core.AdapterConfig{Path: ":memory:", ReadOnly: true},
			expected: ":memory:",
		},
		{
			name:     "file read only",
			config:   core.AdapterConfig{Path: "sales.duckdb", ReadOnly: true},
			expected: "sales.duckdb?access_mode=READ_ONLY",
		},
		{
			name: "options sorted after access mode",
			config: core.AdapterConfig{
				Path:     "sales.duckdb",
				ReadOnly: true,
				Options:  map[string]string{"threads": "2", "memory_limit": "1GB"},
			},
			expected: "sales.duckdb?access_mode=READ_ONLY&memory_limit=1GB&threads=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildDuckDBDSN(tt.config))
		})
	}
}

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name: "in-memory",
			setupPath: func(_ *testing.T) string {
				return ":memory:"
			},
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "sales.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			dbPath := tt.setupPath(t)
			require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: dbPath}))
			defer func() { _ = adp.Close() }()

			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_ReadOnlyRejectsWrites(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sales.duckdb")

	rw := New(nil)
	require.NoError(t, rw.Connect(ctx, core.AdapterConfig{Path: dbPath}))
	require.NoError(t, rw.Exec(ctx, `CREATE TABLE products ("productName" VARCHAR)`))
	require.NoError(t, rw.Close())

	ro := New(nil)
	require.NoError(t, ro.Connect(ctx, core.AdapterConfig{Path: dbPath, ReadOnly: true}))
	defer func() { _ = ro.Close() }()

	err := ro.Exec(ctx, `INSERT INTO products VALUES ('1952 Alpine Renault 1300')`)
	assert.Error(t, err, "writes should fail on a read-only connection")

	rows, err := ro.Query(ctx, `SELECT COUNT(*) FROM products`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()
	require.True(t, rows.Next())
}

func TestDialect_DaysBetween(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
	defer func() { _ = adp.Close() }()

	expr := adp.Dialect().DaysBetween("'2003-01-06'", "'2003-01-10'")
	rows, err := adp.Query(ctx, "SELECT "+expr+" AS days")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var days int64
	require.True(t, rows.Next())
	require.NoError(t, rows.Scan(&days))
	assert.Equal(t, int64(4), days)
}

func TestAdapter_Registry(t *testing.T) {
	assert.True(t, adapter.IsRegistered("duckdb"))

	adp, err := adapter.NewAdapter(core.AdapterConfig{Type: "duckdb"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", adp.Dialect().Name)

	var _ adapter.Adapter = (*Adapter)(nil)
}
