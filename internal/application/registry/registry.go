package registry

import (
	"fmt"
	"sort"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/ports"
)

// Registry maps command names to commands.
type Registry struct {
	commands map[string]ports.Command
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{commands: make(map[string]ports.Command)}
}

// Register binds name to cmd. A later registration under the same name replaces
// the earlier one.
func (r *Registry) Register(name string, cmd ports.Command) {
	r.commands[name] = cmd
}

// Dispatch runs the command registered under name.
func (r *Registry) Dispatch(name string) error {
	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCommand, name)
	}
	cmd.Execute()
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
