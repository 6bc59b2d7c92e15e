// Package config provides configuration management for the salesquery CLI.
//
// Settings are layered with koanf: built-in defaults, then salesquery.yaml
// (or the file named by --config), then SALESQUERY_ environment variables,
// then explicitly set command-line flags.
package config

import "github.com/leapstack-labs/salesquery/pkg/core"

// TargetConfig is an alias for the shared target configuration.
// This allows CLI code to use config.TargetConfig without importing pkg/core.
type TargetConfig = core.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	// DatabasePath is the dataset file (sqlite, duckdb) or database name
	// (postgres). Mirrors Target.Database after loading.
	DatabasePath string        `koanf:"database"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Target       *TargetConfig `koanf:"target"`
}

// Default configuration values.
const (
	DefaultDatabase = "data.sqlite"
	DefaultType     = "sqlite"
	DefaultOutput   = "text"
	DefaultPgPort   = 5432

	// EnvPrefix is the prefix for environment overrides.
	// SALESQUERY_TARGET_HOST sets target.host.
	EnvPrefix = "SALESQUERY_"
)

// configFileNames are searched in the working directory, in order.
var configFileNames = []string{"salesquery.yaml", "salesquery.yml"}
