package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/leapstack-labs/salesquery/internal/dataset"
	"github.com/spf13/cobra"
)

// SeedOptions holds options for the seed command.
type SeedOptions struct {
	Products string
	Orders   string
	Force    bool
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	opts := &SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Build a SQLite dataset from CSV files",
		Long: `Create the products and orders tables in a new SQLite file and load
them from CSV exports. Each CSV needs a header row naming the columns.

The dataset is written to --database (default data.sqlite). This is the only
command that writes; every other command opens the dataset read-only.`,
		Example: `  # Build ./data.sqlite
  salesquery seed --products products.csv --orders orders.csv

  # Rebuild an existing file
  salesquery seed --products products.csv --orders orders.csv -d sales.sqlite --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Products, "products", "", "CSV file for the products table")
	cmd.Flags().StringVar(&opts.Orders, "orders", "", "CSV file for the orders table")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Replace an existing dataset file")
	_ = cmd.MarkFlagRequired("products")
	_ = cmd.MarkFlagRequired("orders")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	cmdCtx := NewCommandContextWithoutAdapter(cmd)
	cfg, r := cmdCtx.Cfg, cmdCtx.Renderer
	ctx := cmd.Context()

	if cfg.Target.Type != "sqlite" {
		return fmt.Errorf("seed writes SQLite datasets; target type is %q", cfg.Target.Type)
	}
	path := cfg.Target.Database
	if path == ":memory:" {
		return fmt.Errorf("seed needs a file path, not :memory:")
	}

	switch _, err := os.Stat(path); {
	case err == nil && !opts.Force:
		return fmt.Errorf("%s already exists\nHint: pass --force to replace it", path)
	case err == nil:
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	ds, err := dataset.Create(ctx, path, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	defer func() { _ = ds.Close() }()

	for _, src := range []struct {
		table string
		file  string
	}{
		{dataset.Products.Name, opts.Products},
		{dataset.Orders.Name, opts.Orders},
	} {
		n, err := ds.LoadCSVFile(ctx, src.table, src.file)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", src.table, err)
		}
		r.Success("Loaded %d rows into %s from %s", n, src.table, src.file)
	}

	version, err := dataset.Version(ds.DB())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	r.Muted("Dataset written to %s (schema version %d)", path, version)
	return nil
}
