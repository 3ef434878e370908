// Package render formats ledger, registry and doctor output for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/calc-go/internal/domain"
)

// Presenter styles output with lipgloss. Styles degrade to plain text when the
// writer is not a terminal.
type Presenter struct {
	title lipgloss.Style
	index lipgloss.Style
	muted lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
}

// NewPresenter builds styles bound to w's color profile.
func NewPresenter(w io.Writer) *Presenter {
	r := lipgloss.NewRenderer(w)
	return &Presenter{
		title: r.NewStyle().Bold(true),
		index: r.NewStyle().Foreground(lipgloss.Color("6")),
		muted: r.NewStyle().Faint(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// RenderHistory prints records numbered from 1, the index used by delete.
func (p *Presenter) RenderHistory(w io.Writer, title string, records []domain.Record) {
	fmt.Fprintln(w, p.title.Render(title+":"))
	if len(records) == 0 {
		fmt.Fprintln(w, "  "+p.muted.Render("(none)"))
		return
	}
	width := len(fmt.Sprint(len(records)))
	for i, rec := range records {
		fmt.Fprintf(w, "  %s %s\n", p.index.Render(fmt.Sprintf("%*d.", width, i+1)), rec)
	}
}

// RenderList prints one item per line.
func (p *Presenter) RenderList(w io.Writer, title string, items []string) {
	fmt.Fprintln(w, p.title.Render(title+":"))
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

// RenderHealth prints one line per doctor check.
func (p *Presenter) RenderHealth(w io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		status := strings.ToUpper(string(check.Status))
		switch check.Status {
		case domain.HealthOK:
			status = p.ok.Render(status)
		case domain.HealthWarn:
			status = p.warn.Render(status)
		default:
			status = p.fail.Render(status)
		}
		fmt.Fprintf(w, "[%s] %s - %s\n", status, check.Name, check.Details)
	}
}
