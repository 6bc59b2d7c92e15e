package commands

import (
	"github.com/leapstack-labs/salesquery/internal/catalog"
	"github.com/leapstack-labs/salesquery/internal/runner"
	"github.com/spf13/cobra"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Select []string
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the report queries and print each result",
		Long: `Run the catalogue of report queries against the dataset, in order,
printing each result before the next query starts.

The connection is read-only. The first failing query stops the run.`,
		Example: `  # Run every query against ./data.sqlite
  salesquery run

  # Run two queries (catalogue order is kept)
  salesquery run --select open_orders,longest_fulfillment

  # Run against a DuckDB copy of the dataset as markdown
  salesquery run --type duckdb -d sales.duckdb -o markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunCatalog(cmd, opts.Select)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Select, "select", "s", nil, "Only run the named queries (see 'salesquery list')")
	_ = cmd.RegisterFlagCompletionFunc("select", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return catalog.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// RunCatalog runs the named catalogue entries, or all of them when names is
// empty. Unknown names fail before the dataset is opened.
func RunCatalog(cmd *cobra.Command, names []string) error {
	queries, err := catalog.Select(names)
	if err != nil {
		return err
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = runner.New(cmdCtx.Adapter, cmdCtx.Renderer, cmdCtx.Logger).Run(cmd.Context(), queries)
	return err
}
