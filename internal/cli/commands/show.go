package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/salesquery/internal/catalog"
	"github.com/leapstack-labs/salesquery/internal/runner"
	"github.com/leapstack-labs/salesquery/pkg/dialect"
	"github.com/spf13/cobra"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	SQL     bool
	Dialect string
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Run a single report query, or print its SQL",
		Example: `  salesquery show longest_fulfillment
  salesquery show longest_fulfillment --sql --type postgres
  salesquery show longest_fulfillment --sql --dialect duckdb`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return catalog.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.SQL, "sql", false, "Print the SQL for the configured database type instead of running it")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "Dialect to print SQL for with --sql (defaults to the database type)")
	_ = cmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runShow(cmd *cobra.Command, name string, opts *ShowOptions) error {
	q, ok := catalog.Lookup(name)
	if !ok {
		return &catalog.UnknownQueryError{Name: name, Available: catalog.Names()}
	}

	if opts.Dialect != "" && !opts.SQL {
		return fmt.Errorf("--dialect requires --sql")
	}

	if opts.SQL {
		dialectName := opts.Dialect
		if dialectName == "" {
			dialectName = getConfig().Target.Type
		}
		d, ok := dialect.Get(dialectName)
		if !ok {
			return fmt.Errorf("no SQL dialect registered for %q (available: %s)", dialectName, strings.Join(dialect.List(), ", "))
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "-- %s (%s)\n%s;\n", q.Title, d.Name, q.SQL(d))
		return nil
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = runner.New(cmdCtx.Adapter, cmdCtx.Renderer, cmdCtx.Logger).Run(cmd.Context(), []catalog.Query{q})
	return err
}
