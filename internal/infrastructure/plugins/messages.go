package plugins

import (
	"fmt"
	"io"

	"github.com/doeshing/calc-go/internal/ports"
)

// Greet says hello.
type Greet struct{ out io.Writer }

func (g *Greet) Execute() { fmt.Fprintln(g.out, "Hello, World!") }

// Goodbye says goodbye.
type Goodbye struct{ out io.Writer }

func (g *Goodbye) Execute() { fmt.Fprintln(g.out, "Goodbye!") }

// Email announces an email notification.
type Email struct{ out io.Writer }

func (e *Email) Execute() { fmt.Fprintln(e.out, "I will email you") }

// Discord announces a Discord notification.
type Discord struct{ out io.Writer }

func (d *Discord) Execute() { fmt.Fprintln(d.out, "I will send a message on Discord") }

var (
	_ ports.Command = (*Greet)(nil)
	_ ports.Command = (*Goodbye)(nil)
	_ ports.Command = (*Email)(nil)
	_ ports.Command = (*Discord)(nil)
)
