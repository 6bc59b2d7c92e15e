package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/salesquery/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/salesquery/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/salesquery/pkg/adapters/sqlite"
)

// newFlags mirrors the root command's persistent flags.
func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("database", "d", "", "dataset path")
	flags.String("type", "", "adapter type")
	flags.StringP("output", "o", "", "output format")
	flags.BoolP("verbose", "v", false, "verbose")
	return flags
}

// inTempDir runs the test from an empty directory so no stray
// salesquery.yaml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "salesquery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	inTempDir(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabase, cfg.DatabasePath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	require.NotNil(t, cfg.Target)
	assert.Equal(t, "sqlite", cfg.Target.Type)
	assert.Equal(t, DefaultDatabase, cfg.Target.Database)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_DiscoversFileInWorkingDir(t *testing.T) {
	ResetConfig()
	dir := inTempDir(t)
	writeConfig(t, dir, `database: sales.duckdb
output: markdown
target:
  type: DuckDB
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "salesquery.yaml", GetConfigFileUsed())
	assert.Equal(t, "duckdb", cfg.Target.Type, "type is normalized to lower case")
	assert.Equal(t, "sales.duckdb", cfg.Target.Database)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestLoadConfig_Postgres(t *testing.T) {
	ResetConfig()
	dir := inTempDir(t)
	t.Setenv("SALES_PG_PASSWORD", "s3cret")
	path := writeConfig(t, dir, `target:
  type: postgres
  host: db.internal
  user: reporting
  password: ${SALES_PG_PASSWORD}
  database: classicmodels
  options:
    sslmode: require
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Target.Type)
	assert.Equal(t, DefaultPgPort, cfg.Target.Port)
	assert.Equal(t, "s3cret", cfg.Target.Password)
	assert.Equal(t, "classicmodels", cfg.Target.Database, "target.database beats the top-level default")
	assert.Equal(t, "classicmodels", cfg.DatabasePath)
	assert.Equal(t, map[string]string{"sslmode": "require"}, cfg.Target.Options)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	dir := inTempDir(t)
	path := writeConfig(t, dir, `database: from_file.sqlite
target:
  database: target_from_file.sqlite
`)
	t.Setenv("SALESQUERY_DATABASE", "from_env.sqlite")
	t.Setenv("SALESQUERY_OUTPUT", "csv")

	flags := newFlags()
	require.NoError(t, flags.Set("database", "from_flag.sqlite"))
	require.NoError(t, flags.Set("output", "json"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "from_flag.sqlite", cfg.Target.Database, "flag value should override config file and env var")
	assert.Equal(t, "from_flag.sqlite", cfg.DatabasePath)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	dir := inTempDir(t)
	path := writeConfig(t, dir, `output: markdown
target:
  type: sqlite
`)
	t.Setenv("SALESQUERY_OUTPUT", "yaml")
	t.Setenv("SALESQUERY_TARGET_TYPE", "duckdb")

	// Flags exist but are not set, so env wins.
	cfg, err := LoadConfig(path, newFlags())
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, "duckdb", cfg.Target.Type)
}

func TestLoadConfig_EnvDatabaseOverFileTarget(t *testing.T) {
	ResetConfig()
	dir := inTempDir(t)
	path := writeConfig(t, dir, `target:
  type: sqlite
  database: from_file.sqlite
`)
	t.Setenv("SALESQUERY_DATABASE", "from_env.sqlite")

	cfg, err := LoadConfig(path, newFlags())
	require.NoError(t, err)

	assert.Equal(t, "from_env.sqlite", cfg.Target.Database)
	assert.Equal(t, "from_env.sqlite", cfg.DatabasePath)
}

func TestLoadConfig_FileDatabaseWithoutEnv(t *testing.T) {
	ResetConfig()
	dir := inTempDir(t)
	path := writeConfig(t, dir, `database: top_level.sqlite
`)

	cfg, err := LoadConfig(path, newFlags())
	require.NoError(t, err)

	assert.Equal(t, "top_level.sqlite", cfg.Target.Database)
}

func TestLoadConfig_TypeFlag(t *testing.T) {
	ResetConfig()
	inTempDir(t)

	flags := newFlags()
	require.NoError(t, flags.Set("type", "duckdb"))
	require.NoError(t, flags.Set("database", ":memory:"))
	require.NoError(t, flags.Set("verbose", "true"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", cfg.Target.Type)
	assert.Equal(t, ":memory:", cfg.Target.Database)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		errSubstr string
	}{
		{name: "unknown type", yaml: "target:\n  type: mysql\n", errSubstr: "unknown adapter type"},
		{name: "unknown output", yaml: "output: html\n", errSubstr: "unknown output format"},
		{name: "postgres without host", yaml: "target:\n  type: postgres\n  database: sales\n", errSubstr: "target.host is required"},
		{name: "malformed yaml", yaml: "target: [\n", errSubstr: "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := inTempDir(t)
			path := writeConfig(t, dir, tt.yaml)

			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name      string
		target    *TargetConfig
		errSubstr string
	}{
		{name: "nil", target: nil, errSubstr: "target type is required"},
		{name: "empty type", target: &TargetConfig{Database: "data.sqlite"}, errSubstr: "target type is required"},
		{name: "sqlite", target: &TargetConfig{Type: "sqlite", Database: "data.sqlite"}},
		{name: "duckdb uppercase", target: &TargetConfig{Type: "DuckDB", Database: "data.duckdb"}},
		{name: "postgres", target: &TargetConfig{Type: "postgres", Host: "localhost", Database: "sales"}},
		{name: "missing database", target: &TargetConfig{Type: "sqlite"}, errSubstr: "database is required"},
		{name: "unknown", target: &TargetConfig{Type: "oracle", Database: "x"}, errSubstr: "unknown adapter type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestValidateTarget_ErrorContainsAvailable(t *testing.T) {
	err := ValidateTarget(&TargetConfig{Type: "invalid_db", Database: "x"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "duckdb", "error should list available adapters")
	assert.Contains(t, err.Error(), "sqlite")
	assert.Contains(t, err.Error(), "salesquery.yaml", "error should mention config file")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "target.database", envKey("SALESQUERY_DATABASE"))
	assert.Equal(t, "target.database", envKey("SALESQUERY_TARGET_DATABASE"))
	assert.Equal(t, "target.host", envKey("SALESQUERY_TARGET_HOST"))
	assert.Equal(t, "output", envKey("SALESQUERY_OUTPUT"))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SALESQUERY_TEST_USER", "analyst")

	assert.Equal(t, "analyst", expandEnvVars("${SALESQUERY_TEST_USER}"))
	assert.Equal(t, "user=analyst;", expandEnvVars("user=${SALESQUERY_TEST_USER};"))
	assert.Equal(t, "${SALESQUERY_UNSET_VAR}", expandEnvVars("${SALESQUERY_UNSET_VAR}"), "unset vars are left alone")
	assert.Equal(t, "plain", expandEnvVars("plain"))
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "falls back to a discard logger")

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
	assert.Same(t, logger, ctx.Value(LoggerKey()))
}
