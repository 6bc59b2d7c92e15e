package output

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/salesquery/pkg/core"
	"gopkg.in/yaml.v3"
)

// document is the machine-readable shape of one result.
type document struct {
	Title    string           `json:"title" yaml:"title"`
	Columns  []string         `json:"columns" yaml:"columns"`
	Rows     []map[string]any `json:"rows" yaml:"rows"`
	RowCount int              `json:"row_count" yaml:"row_count"`
}

// Result writes one titled result set.
func (r *Renderer) Result(title string, rs *core.ResultSet) error {
	if rs == nil {
		rs = &core.ResultSet{}
	}

	switch r.mode {
	case ModeJSON:
		return r.resultJSON(title, rs)
	case ModeYAML:
		return r.resultYAML(title, rs)
	}

	rows := make([][]any, rs.Len())
	for i := range rs.Rows {
		vals := rs.Values(i)
		for j, v := range vals {
			vals[j] = FormatValue(v)
		}
		rows[i] = vals
	}

	switch r.mode {
	case ModeMarkdown:
		_, _ = fmt.Fprintf(r.out, "## %s\n\n", title)
		r.table(rs.Columns, rows).RenderMarkdown()
		_, _ = fmt.Fprintf(r.out, "\n%s\n\n", rowCount(rs.Len()))
	case ModeCSV:
		_, _ = fmt.Fprintf(r.out, "# %s\n", title)
		r.table(rs.Columns, rows).RenderCSV()
		_, _ = fmt.Fprintln(r.out)
	default:
		_, _ = fmt.Fprintln(r.out, r.title(title))
		r.table(rs.Columns, rows).Render()
		_, _ = fmt.Fprintf(r.out, "%s\n\n", rowCount(rs.Len()))
	}
	return nil
}

// Table writes an untitled table of preformatted cells in the current mode.
func (r *Renderer) Table(headers []string, rows [][]string) error {
	switch r.mode {
	case ModeJSON, ModeYAML:
		recs := make([]map[string]string, len(rows))
		for i, row := range rows {
			rec := make(map[string]string, len(headers))
			for j, h := range headers {
				if j < len(row) {
					rec[h] = row[j]
				}
			}
			recs[i] = rec
		}
		if r.mode == ModeYAML {
			return r.writeYAML(recs)
		}
		return r.writeJSON(recs)
	}

	cells := make([][]any, len(rows))
	for i, row := range rows {
		cells[i] = make([]any, len(row))
		for j, c := range row {
			cells[i][j] = c
		}
	}

	t := r.table(headers, cells)
	switch r.mode {
	case ModeMarkdown:
		t.RenderMarkdown()
	case ModeCSV:
		t.RenderCSV()
	default:
		t.Render()
	}
	return nil
}

func (r *Renderer) table(headers []string, rows [][]any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)

	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}
	return t
}

func (r *Renderer) resultJSON(title string, rs *core.ResultSet) error {
	return r.writeJSON(newDocument(title, rs))
}

func (r *Renderer) resultYAML(title string, rs *core.ResultSet) error {
	return r.writeYAML(newDocument(title, rs))
}

func (r *Renderer) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func (r *Renderer) writeYAML(v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if r.docs > 0 {
		_, _ = fmt.Fprintln(r.out, "---")
	}
	r.docs++
	_, err = r.out.Write(b)
	return err
}

func newDocument(title string, rs *core.ResultSet) document {
	doc := document{
		Title:    title,
		Columns:  rs.Columns,
		Rows:     make([]map[string]any, rs.Len()),
		RowCount: rs.Len(),
	}
	if doc.Columns == nil {
		doc.Columns = []string{}
	}
	for i, row := range rs.Rows {
		rec := make(map[string]any, len(row))
		for k, v := range row {
			if t, ok := v.(time.Time); ok {
				v = formatTime(t)
			}
			rec[k] = v
		}
		doc.Rows[i] = rec
	}
	return doc
}

func rowCount(n int) string {
	return fmt.Sprintf("(%d rows)", n)
}

// FormatValue renders a cell for the tabular modes.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return formatTime(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}
