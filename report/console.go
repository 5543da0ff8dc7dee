package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Verbosity controls how much a ConsoleReporter prints.
type Verbosity int

// Verbosity levels, lowest to highest.
const (
	// Quiet prints warnings and errors only.
	Quiet Verbosity = iota

	// Normal prints run progress and results.
	Normal

	// Verbose additionally prints per-source progress.
	Verbose

	// Debug additionally prints per-file merge steps.
	Debug
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// ConsoleReporter renders events for humans.
type ConsoleReporter struct {
	Out       io.Writer
	Verbosity Verbosity
}

// NewConsoleReporter creates a console reporter writing to out.
// If out is nil, uses os.Stderr.
func NewConsoleReporter(out io.Writer, verbosity Verbosity) *ConsoleReporter {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleReporter{Out: out, Verbosity: verbosity}
}

// Report implements Reporter.
func (r *ConsoleReporter) Report(event Event) error {
	if r.minVerbosity(event) > r.Verbosity {
		return nil
	}
	fmt.Fprintln(r.Out, r.render(event))
	return nil
}

// minVerbosity returns the lowest verbosity at which an event is shown.
func (r *ConsoleReporter) minVerbosity(event Event) Verbosity {
	switch event.Severity {
	case SeverityWarning, SeverityError:
		return Quiet
	}
	switch event.Type {
	case EventRunStarted, EventRunCompleted, EventFileWritten:
		return Normal
	case EventSourceStarted:
		return Verbose
	default:
		return Debug
	}
}

func (r *ConsoleReporter) render(event Event) string {
	switch event.Type {
	case EventFileWritten:
		detail := ""
		if len(event.Sources) > 0 {
			detail = dimStyle.Render(fmt.Sprintf(" (from %d source(s): %s)",
				len(event.Sources), strings.Join(event.Sources, ", ")))
		}
		return successStyle.Render("  ✓ ") + event.File + detail
	case EventWriteFailed:
		return errorStyle.Render("  ✗ ") + event.Message
	case EventRunCompleted:
		return successStyle.Render("✓ ") + event.Message
	case EventSourceStarted:
		return dimStyle.Render("→ " + event.Message)
	}

	switch event.Severity {
	case SeverityWarning:
		return warnStyle.Render("! ") + event.Message
	case SeverityError:
		return errorStyle.Render("✗ ") + event.Message
	default:
		return event.Message
	}
}
