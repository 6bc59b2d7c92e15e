package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/salesquery/internal/cli/output"
	"github.com/leapstack-labs/salesquery/pkg/adapter"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if err := ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	return nil
}

// ValidateTarget checks the target against the adapter registry.
func ValidateTarget(t *TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	// Use adapter registry as single source of truth
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	if t.Database == "" {
		return fmt.Errorf("database is required\nHint: set database in salesquery.yaml or pass --database")
	}
	if strings.EqualFold(t.Type, "postgres") && t.Host == "" {
		return fmt.Errorf("target.host is required for postgres")
	}
	return nil
}
