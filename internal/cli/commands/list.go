package commands

import (
	"strconv"

	"github.com/leapstack-labs/salesquery/internal/catalog"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the report queries in run order",
		Example: `  salesquery list
  salesquery list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	r := NewCommandContextWithoutAdapter(cmd).Renderer

	all := catalog.All()
	rows := make([][]string, len(all))
	for i, q := range all {
		limit := "-"
		if q.Limit > 0 {
			limit = strconv.Itoa(q.Limit)
		}
		rows[i] = []string{strconv.Itoa(i + 1), q.Name, q.Title, limit}
	}
	return r.Table([]string{"#", "name", "title", "limit"}, rows)
}
