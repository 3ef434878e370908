package plugins

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/ports"
)

// Menu prints the interactive usage and the registered commands.
type Menu struct {
	out     io.Writer
	names   func() []string
	heading lipgloss.Style
}

// NewMenu builds a menu listing the commands known to r at execution time.
func NewMenu(out io.Writer, r Registrar) *Menu {
	renderer := lipgloss.NewRenderer(out)
	return &Menu{
		out:     out,
		names:   r.Names,
		heading: renderer.NewStyle().Bold(true).Underline(true),
	}
}

// Execute implements ports.Command.
func (m *Menu) Execute() {
	ops := make([]string, 0, len(domain.Operations()))
	for _, op := range domain.Operations() {
		ops = append(ops, string(op))
	}

	fmt.Fprintln(m.out, m.heading.Render("Menu"))
	fmt.Fprintf(m.out, "  <a> <b> <operation>   calculate (%s)\n", strings.Join(ops, ", "))
	fmt.Fprintln(m.out, "  history               show calculation history")
	fmt.Fprintln(m.out, "  search <text>         filter calculation history")
	fmt.Fprintln(m.out, "  deleted               show deleted calculations")
	fmt.Fprintln(m.out, "  delete <n>            delete history entry n")
	fmt.Fprintln(m.out, "  clear                 remove all history")
	fmt.Fprintln(m.out, "  plugins               list plugin commands")
	fmt.Fprintln(m.out, "  exit                  quit")
	fmt.Fprintln(m.out, m.heading.Render("Commands"))
	for _, name := range m.names() {
		fmt.Fprintf(m.out, "  %s\n", name)
	}
}

var _ ports.Command = (*Menu)(nil)
