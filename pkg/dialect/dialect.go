// Package dialect describes the small set of SQL differences between the
// databases salesquery can read from.
//
// Catalogue queries are written once with double-quoted identifiers and
// standard functions; a Dialect only supplies the pieces that genuinely vary
// (placeholders and calendar-day arithmetic).
package dialect

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderStyle selects how bind parameters are written.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses "?" for every parameter.
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses "$1", "$2", ...
	PlaceholderDollar
)

// Dialect holds the per-database SQL fragments.
type Dialect struct {
	Name        string
	Placeholder PlaceholderStyle

	// daysBetween renders an integer expression counting calendar days
	// from start to end. Both arguments are already-rendered SQL expressions.
	daysBetween func(start, end string) string
}

// Builder constructs a Dialect.
type Builder struct {
	d *Dialect
}

// NewDialect starts a dialect definition with question-mark placeholders.
func NewDialect(name string) *Builder {
	return &Builder{d: &Dialect{Name: name, Placeholder: PlaceholderQuestion}}
}

// Placeholders sets the bind parameter style.
func (b *Builder) Placeholders(style PlaceholderStyle) *Builder {
	b.d.Placeholder = style
	return b
}

// DaysBetween sets the calendar-day difference renderer.
func (b *Builder) DaysBetween(fn func(start, end string) string) *Builder {
	b.d.daysBetween = fn
	return b
}

// Build returns the finished dialect.
func (b *Builder) Build() *Dialect {
	return b.d
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// QuoteIdentifier quotes an identifier with double quotes, which all
// supported databases accept and which preserves camelCase column names.
func (d *Dialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// DaysBetween renders the number of calendar days from start to end.
// Panics if the dialect was built without a renderer.
func (d *Dialect) DaysBetween(start, end string) string {
	if d.daysBetween == nil {
		panic(fmt.Sprintf("dialect %s: no day difference renderer", d.Name))
	}
	return d.daysBetween(start, end)
}

// String returns the dialect name.
func (d *Dialect) String() string {
	return d.Name
}
