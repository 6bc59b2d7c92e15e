package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo identifies the binary. Commit and Date are stamped by the
// release build and stay "unknown" otherwise.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display salesquery version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "salesquery v%s\n", info.Version)
			if known(info.Commit) || known(info.Date) {
				_, _ = fmt.Fprintf(out, "commit %s, built %s\n", orUnknown(info.Commit), orUnknown(info.Date))
			}
			_, _ = fmt.Fprintln(out, "Read-only sales reports over SQLite, DuckDB and PostgreSQL")
		},
	}
}

func known(s string) bool {
	return s != "" && s != "unknown"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
