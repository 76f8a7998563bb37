package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"igdiff/pkg/graph"
)

// ASCII logo for the application
const ASCIILogo = `
  ╔══════════════════════════════════════╗
  ║  ▀█▀ █▀▀ █▀▄ ▀█▀ █▀▀ █▀▀             ║
  ║   █  █ █ █ █  █  █▀  █▀              ║
  ║  ▀▀▀ ▀▀▀ ▀▀  ▀▀▀ ▀   ▀               ║
  ║  who does not follow back            ║
  ╚══════════════════════════════════════╝
`

var (
	cyan    = lipgloss.Color("#00FFFF")
	magenta = lipgloss.Color("#FF00FF")
	green   = lipgloss.Color("#39FF14")
	yellow  = lipgloss.Color("#FFFF00")
	red     = lipgloss.Color("#FF3131")
	dim     = lipgloss.Color("#B0B0B0")

	logoStyle    = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(cyan)
	valueStyle   = lipgloss.NewStyle().Foreground(yellow)
	successStyle = lipgloss.NewStyle().Foreground(green)
	warnStyle    = lipgloss.NewStyle().Foreground(yellow)
	errorStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(magenta).
			Padding(0, 2)
)

// Printer writes human-facing messages. Styling is only applied when the
// destination is a terminal.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a Printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, color: IsTerminal(out)}
}

// NewPlainPrinter creates a Printer that never styles its output
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Logo prints the ASCII logo
func (p *Printer) Logo() {
	fmt.Fprintln(p.out, p.render(logoStyle, ASCIILogo))
}

// Error prints an error message, with its cause when err is not nil
func (p *Printer) Error(msg string, err error) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	fmt.Fprintln(p.out, p.render(errorStyle, msg))
}

// Success prints a success message
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.render(successStyle, msg))
}

// Warning prints a warning message
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.out, p.render(warnStyle, msg))
}

// Info prints a label: value line
func (p *Printer) Info(label, value string) {
	fmt.Fprintf(p.out, "%s: %s\n", p.render(labelStyle, label), p.render(valueStyle, value))
}

// Summary prints a boxed overview of result for username
func (p *Printer) Summary(username string, result *graph.Result) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", p.render(labelStyle, "profile"), username)
	fmt.Fprintf(&b, "%s %s\n", p.render(labelStyle, "followers"), p.render(valueStyle, fmt.Sprint(result.Counts.Followers)))
	fmt.Fprintf(&b, "%s %s\n", p.render(labelStyle, "following"), p.render(valueStyle, fmt.Sprint(result.Counts.Following)))
	fmt.Fprintf(&b, "%s %s", p.render(labelStyle, "not following back"), p.render(valueStyle, fmt.Sprint(len(result.NotFollowingYou))))

	for _, id := range result.NotFollowingYou {
		fmt.Fprintf(&b, "\n  %s %s", p.render(dimStyle, "·"), id)
	}

	body := b.String()
	if p.color {
		body = panelStyle.Render(body)
	}
	fmt.Fprintln(p.out, body)
}
