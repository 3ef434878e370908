// Package plugins holds the built-in commands that can be invoked by name from
// the interactive loop or `calc run`.
package plugins

import (
	"io"

	"github.com/doeshing/calc-go/internal/ports"
)

// Command names of the built-in plugins.
const (
	NameMenu    = "menu"
	NameDiscord = "discord"
	NameEmail   = "email"
	NameGoodbye = "goodbye"
	NameGreet   = "greet"
)

// Registrar is the part of the registry plugins are installed into.
type Registrar interface {
	Register(name string, cmd ports.Command)
	Names() []string
}

// RegisterBuiltins installs the built-in plugins, all writing to out.
func RegisterBuiltins(r Registrar, out io.Writer) {
	r.Register(NameMenu, NewMenu(out, r))
	r.Register(NameDiscord, &Discord{out: out})
	r.Register(NameEmail, &Email{out: out})
	r.Register(NameGoodbye, &Goodbye{out: out})
	r.Register(NameGreet, &Greet{out: out})
}
