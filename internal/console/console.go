// Package console renders the operator-facing provisioning output: section
// banners, step lines, and the closing summary.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/lexprep/lexprep/internal/model"
)

const bannerWidth = 60

// Printer writes the fixed report format. Colors are applied only when the
// destination is a terminal; the text itself never changes.
type Printer struct {
	out   io.Writer
	color bool

	bannerStyle lipgloss.Style
	okStyle     lipgloss.Style
	errStyle    lipgloss.Style
}

// New creates a Printer targeting the given writer.
func New(out io.Writer) *Printer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}

	return &Printer{
		out:         out,
		color:       color,
		bannerStyle: lipgloss.NewStyle().Bold(true),
		okStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		errStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Banner prints a section delimiter: a line of '=', the centered title, and
// another line of '='.
func (p *Printer) Banner(title string) {
	rule := strings.Repeat("=", bannerWidth)
	pad := (bannerWidth - len(title)) / 2
	if pad < 0 {
		pad = 0
	}

	fmt.Fprintln(p.out, p.render(p.bannerStyle, rule))
	fmt.Fprintln(p.out, p.render(p.bannerStyle, strings.Repeat(" ", pad)+title))
	fmt.Fprintln(p.out, p.render(p.bannerStyle, rule))
}

// Step prints a progress line.
func (p *Printer) Step(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", "[*]", msg)
}

// OK prints a success line.
func (p *Printer) OK(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", p.render(p.okStyle, "[OK]"), msg)
}

// Error prints a failure line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", p.render(p.errStyle, "[ERROR]"), msg)
}

// Hint prints the equivalent manual command for a failed stage.
func (p *Printer) Hint(command string) {
	p.Step(fmt.Sprintf("run manually: %s", command))
}

// Summary renders the closing report: per-stage outcomes, failed
// capabilities by name, and the overall verdict.
func (p *Printer) Summary(report *model.PipelineReport) {
	p.Banner("PROVISIONING SUMMARY")

	for _, st := range report.Stages {
		if st.Outcome.Success {
			p.OK(fmt.Sprintf("%s: %s", st.Name, st.Outcome.Output))
		} else {
			p.Error(fmt.Sprintf("%s: %s", st.Name, st.Outcome.Output))
		}
	}

	failed := report.FailedCapabilities()
	for _, v := range report.Verifications {
		if v.Passed {
			p.OK(fmt.Sprintf("capability %s (%s)", v.Capability, v.Detail))
		} else {
			p.Error(fmt.Sprintf("capability %s: %v", v.Capability, v.Err))
		}
	}

	if len(failed) > 0 {
		p.Step(fmt.Sprintf("%d of %d capabilities failed; NLP capabilities may be degraded",
			len(failed), len(report.Verifications)))
	}

	if report.OverallSuccess() {
		p.OK("provisioning complete")
	} else {
		p.Error("provisioning failed")
	}
}
