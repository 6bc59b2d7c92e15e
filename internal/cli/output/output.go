// Package output renders query results and CLI messages.
//
// A Renderer writes every result the same way regardless of which command
// produced it: a title line, the rows in the selected Mode, a row count and
// a blank separator line.
package output

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Mode selects the result format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto" // text on a terminal, markdown otherwise
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeCSV      Mode = "csv"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Modes lists every accepted mode name.
func Modes() []string {
	return []string{
		string(ModeText), string(ModeMarkdown), string(ModeCSV),
		string(ModeJSON), string(ModeYAML), string(ModeAuto),
	}
}

// ParseMode validates s. The empty string selects text.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return ModeText, nil
	case s == "md":
		return ModeMarkdown, nil
	case slices.Contains(Modes(), s):
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (expected one of: %s)", s, strings.Join(Modes(), ", "))
}

// Renderer writes results to out and diagnostics to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	tty    bool

	titleStyle   lipgloss.Style
	successStyle lipgloss.Style
	mutedStyle   lipgloss.Style

	docs int // documents written, for yaml separators
}

// NewRenderer creates a Renderer. ModeAuto resolves to text when out is a
// terminal and markdown otherwise; an unrecognized mode falls back to text.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	tty := IsTerminal(out)
	switch mode {
	case ModeAuto:
		if tty {
			mode = ModeText
		} else {
			mode = ModeMarkdown
		}
	case ModeText, ModeMarkdown, ModeCSV, ModeJSON, ModeYAML:
	default:
		mode = ModeText
	}

	r := &Renderer{out: out, errOut: errOut, mode: mode, tty: tty}
	if tty {
		r.titleStyle = lipgloss.NewStyle().Bold(true)
		r.successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		r.mutedStyle = lipgloss.NewStyle().Faint(true)
	}
	return r
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the effective output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Writer returns the result stream.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Println writes a plain line to the result stream.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Success writes a status line to the diagnostic stream.
func (r *Renderer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if r.tty {
		msg = r.successStyle.Render(msg)
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

// Muted writes a low-emphasis line to the diagnostic stream.
func (r *Renderer) Muted(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if r.tty {
		msg = r.mutedStyle.Render(msg)
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

func (r *Renderer) title(s string) string {
	if r.tty {
		return r.titleStyle.Render(s)
	}
	return s
}
