// Package runner executes catalogue queries in order and hands each result
// to a printer before the next query starts.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/salesquery/internal/catalog"
	"github.com/leapstack-labs/salesquery/pkg/core"
)

// Printer renders one query result.
type Printer interface {
	Result(title string, rs *core.ResultSet) error
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Queries  int
	Rows     int
	Duration time.Duration
}

// Runner runs queries sequentially against a single connection.
// The caller owns the connection and closes it.
type Runner struct {
	src    catalog.Source
	out    Printer
	logger *slog.Logger
}

// New creates a Runner. A nil logger discards log output.
func New(src catalog.Source, out Printer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{src: src, out: out, logger: logger}
}

// Run executes queries in the given order. The first failure stops the run
// and is returned with the query name attached; nothing after it executes.
func (r *Runner) Run(ctx context.Context, queries []catalog.Query) (*Summary, error) {
	sum := &Summary{RunID: uuid.NewString()}
	logger := r.logger.With("run_id", sum.RunID, "dialect", r.src.Dialect().Name)
	start := time.Now()

	logger.Debug("run started", "queries", len(queries))

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		qStart := time.Now()
		rs, err := q.Run(ctx, r.src)
		if err != nil {
			logger.Error("query failed", "query", q.Name, "error", err)
			return sum, fmt.Errorf("query %s failed: %w", q.Name, err)
		}

		if err := r.out.Result(q.Title, rs); err != nil {
			return sum, fmt.Errorf("failed to render %s: %w", q.Name, err)
		}

		sum.Queries++
		sum.Rows += rs.Len()
		logger.Debug("query complete",
			"query", q.Name,
			"rows", rs.Len(),
			"duration", time.Since(qStart),
		)
	}

	sum.Duration = time.Since(start)
	logger.Debug("run complete", "queries", sum.Queries, "rows", sum.Rows, "duration", sum.Duration)
	return sum, nil
}
