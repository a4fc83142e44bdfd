package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

// Printer writes action results for humans
type Printer struct {
	out          io.Writer
	successStyle lipgloss.Style
	warnStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	boldStyle    lipgloss.Style
}

// NewPrinter creates a Printer. Colors follow the terminal unless disabled.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		out: out,
		successStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}),
		warnStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"}),
		errorStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true),
		dimStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
		boldStyle: r.NewStyle().Bold(true),
	}
}

// Result prints one action result
func (p *Printer) Result(action string, r types.ActionResult) {
	p.line(action, r, false)
}

// Step prints one auto run step
func (p *Printer) Step(s types.StepResult) {
	p.line(string(s.Step), s.Result, s.Warning)
}

// Report prints the verdict of an auto run
func (p *Printer) Report(r types.AutoRunReport) {
	style := p.successStyle
	switch r.Status {
	case types.StatusWarning:
		style = p.warnStyle
	case types.StatusFailure:
		style = p.errorStyle
	}
	fmt.Fprintf(p.out, "%s %s\n", style.Render(string(r.Status)), r.Summary())
}

func (p *Printer) line(name string, r types.ActionResult, warning bool) {
	mark, style := "✓", p.successStyle
	switch {
	case r.OK():
	case warning:
		mark, style = "!", p.warnStyle
	default:
		mark, style = "✗", p.errorStyle
	}

	msg := r.Message
	if !r.OK() {
		msg += p.dimStyle.Render(" (" + r.Kind.String() + ")")
	}
	fmt.Fprintf(p.out, "%s %s %s\n", style.Render(mark), p.boldStyle.Render(fmt.Sprintf("%-7s", name)), msg)
}
