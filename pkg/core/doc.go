// Package core defines the shared language of salesquery.
//
// This package contains:
//   - Connection settings (AdapterConfig, TargetConfig)
//   - Result sets materialized from driver rows (ResultSet, Row)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
