package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/salesquery/internal/cli/output"
	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run ad hoc SQL against the dataset",
		Long: `Run ad hoc SQL against the dataset over the same read-only connection
the reports use. Statements that write are rejected by the database.

When invoked without arguments on a terminal, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  salesquery query 'SELECT "status", COUNT(*) FROM "orders" GROUP BY 1'

  # Read SQL from a file or a pipe
  salesquery query -i report.sql
  echo 'SELECT COUNT(*) FROM "products"' | salesquery query

  # Interactive mode
  salesquery query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	var sqlQuery string
	repl := false

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(cmd.InOrStdin()):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		repl = true
	}

	if !repl && strings.TrimSpace(sqlQuery) == "" {
		return fmt.Errorf("no SQL given")
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if repl {
		return runQueryREPL(cmd, cmdCtx)
	}
	return executeAndRender(cmd.Context(), cmdCtx.Adapter, cmdCtx.Renderer, sqlQuery)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && output.IsTerminal(f)
}
