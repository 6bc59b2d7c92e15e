package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/salesquery/internal/catalog"
	"github.com/leapstack-labs/salesquery/internal/dataset"
	"github.com/leapstack-labs/salesquery/internal/runner"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "salesquery> "
	replContinuePrompt = "       ...> "
)

func runQueryREPL(cmd *cobra.Command, cmdCtx *CommandContext) error {
	ctx := cmd.Context()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cmdCtx.Renderer
	r.Println(fmt.Sprintf("salesquery REPL (%s: %s, read-only)", cmdCtx.Cfg.Target.Type, cmdCtx.Cfg.Target.Database))
	r.Println("Type .help for commands, .quit to exit")
	r.Println()

	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if multiLineBuffer.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(ctx, cmd, cmdCtx, line); quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString("\n")
			rl.SetPrompt(replContinuePrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		query := multiLineBuffer.String()
		multiLineBuffer.Reset()

		if err := executeAndRender(ctx, cmdCtx.Adapter, cmdCtx.Renderer, query); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return nil
}

// handleDotCommand runs a REPL meta-command and reports whether to quit.
func handleDotCommand(ctx context.Context, cmd *cobra.Command, cmdCtx *CommandContext, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	out, errOut := cmdCtx.Renderer.Writer(), cmd.ErrOrStderr()

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)

	case ".tables":
		printTables(out)

	case ".queries":
		if err := runList(cmd); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}

	case ".run":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .run <query> [query...]")
			return false
		}
		queries, err := catalog.Select(parts[1:])
		if err == nil {
			_, err = runner.New(cmdCtx.Adapter, cmdCtx.Renderer, cmdCtx.Logger).Run(ctx, queries)
		}
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}

	case ".sql":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .sql <query>")
			return false
		}
		q, ok := catalog.Lookup(parts[1])
		if !ok {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", &catalog.UnknownQueryError{Name: parts[1], Available: catalog.Names()})
			return false
		}
		cmdCtx.Renderer.Println(q.SQL(cmdCtx.Adapter.Dialect()) + ";")
		cmdCtx.Renderer.Println()

	case ".clear":
		_, _ = fmt.Fprint(out, "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .tables           List dataset tables and their columns
  .queries          List the report queries
  .run <query>...   Run report queries by name
  .sql <query>      Print a report query's SQL
  .clear            Clear the screen
  .quit / .exit     Exit the REPL

Tips:
  - End statements with ; (multi-line input is supported)
  - Quote camelCase columns: SELECT "productName" FROM "products";
  - Use Tab for completion
`
	_, _ = fmt.Fprintln(w, help)
}

func printTables(w io.Writer) {
	for _, t := range []dataset.Table{dataset.Products, dataset.Orders} {
		names := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			names[i] = c.Name
		}
		_, _ = fmt.Fprintf(w, "%s(%s)\n", t.Name, strings.Join(names, ", "))
	}
	_, _ = fmt.Fprintln(w)
}

// newCompleter completes dot-commands, table names, quoted column names
// and report query names.
func newCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	for _, t := range []dataset.Table{dataset.Products, dataset.Orders} {
		items = append(items, readline.PcItem(`"`+t.Name+`"`))
		for _, c := range t.Columns {
			items = append(items, readline.PcItem(`"`+c.Name+`"`))
		}
	}

	queryItems := make([]readline.PrefixCompleterInterface, 0, len(catalog.Names()))
	for _, name := range catalog.Names() {
		queryItems = append(queryItems, readline.PcItem(name))
	}

	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".queries"),
		readline.PcItem(".run", queryItems...),
		readline.PcItem(".sql", queryItems...),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}

// historyFile lives in the user cache directory; "" disables history.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "salesquery")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return ""
	}
	return filepath.Join(dir, "query_history")
}
