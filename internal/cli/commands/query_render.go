package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/salesquery/internal/catalog"
	"github.com/leapstack-labs/salesquery/internal/cli/output"
	"github.com/leapstack-labs/salesquery/pkg/core"
)

// executeAndRender runs one ad hoc statement and renders its rows.
func executeAndRender(ctx context.Context, src catalog.Source, r *output.Renderer, sqlQuery string) error {
	sqlQuery = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sqlQuery), ";"))

	rows, err := src.Query(ctx, sqlQuery)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	rs, err := core.Collect(rows.Rows)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return r.Result(queryTitle(sqlQuery), rs)
}

// queryTitle is the first line of the statement, shortened for display.
func queryTitle(sqlQuery string) string {
	const maxTitle = 60
	title, _, _ := strings.Cut(sqlQuery, "\n")
	title = strings.TrimSpace(title)
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}
	return title
}
