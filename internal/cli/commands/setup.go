package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/salesquery/internal/cli/config"
	"github.com/leapstack-labs/salesquery/internal/cli/output"
	"github.com/leapstack-labs/salesquery/pkg/adapter"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Adapter  adapter.Adapter
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a read-only connection
// to the configured target. Returns the context and a cleanup function that
// must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutAdapter(cmd)

	adp, err := openReadOnly(cmd.Context(), cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Adapter = adp

	cleanup := func() {
		if err := adp.Close(); err != nil {
			cmdCtx.Logger.Warn("failed to close connection", "error", err)
		}
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutAdapter creates a CommandContext without a
// connection. Useful for commands that don't read the dataset.
func NewCommandContextWithoutAdapter(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = output.ModeText
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// openReadOnly connects to the configured target. Every connection the
// CLI reads through is read-only at the driver level.
func openReadOnly(ctx context.Context, cfg *config.Config, logger *slog.Logger) (adapter.Adapter, error) {
	acfg := cfg.Target.AdapterConfig(true)

	adp, err := adapter.NewAdapter(acfg, logger)
	if err != nil {
		return nil, err
	}
	if err := adp.Connect(ctx, acfg); err != nil {
		return nil, fmt.Errorf("failed to open %s database %s: %w", acfg.Type, cfg.Target.Database, err)
	}
	return adp, nil
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables and defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	database := getEnvOrDefault(config.EnvPrefix+"DATABASE", config.DefaultDatabase)
	return &config.Config{
		DatabasePath: database,
		Verbose:      os.Getenv(config.EnvPrefix+"VERBOSE") == "true",
		OutputFormat: getEnvOrDefault(config.EnvPrefix+"OUTPUT", config.DefaultOutput),
		Target: &config.TargetConfig{
			Type:     getEnvOrDefault(config.EnvPrefix+"TARGET_TYPE", config.DefaultType),
			Database: database,
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
