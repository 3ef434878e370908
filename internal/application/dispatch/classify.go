package dispatch

import (
	"strings"

	"github.com/doeshing/calc-go/internal/domain"
)

// Kind is the category of one interactive input line.
type Kind int

// Kinds in classification priority order. Classify returns the first kind
// whose rule matches.
const (
	KindExit Kind = iota
	KindHistory
	KindMenu
	KindPlugins
	KindCommand
	KindCalculation
	KindDelete
	KindClear
	KindSearch
	KindDeleted
	KindInvalid
)

var kindNames = map[Kind]string{
	KindExit:        "exit",
	KindHistory:     "history",
	KindMenu:        "menu",
	KindPlugins:     "plugins",
	KindCommand:     "command",
	KindCalculation: "calculation",
	KindDelete:      "delete",
	KindClear:       "clear",
	KindSearch:      "search",
	KindDeleted:     "deleted",
	KindInvalid:     "invalid",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Input is a classified input line.
type Input struct {
	Kind Kind
	Raw  string
	// Args holds [a, b, op] for calculations, the index text for delete, the
	// term for search and the name for command.
	Args []string
}

// Classify sorts a line into exactly one Kind. isCommand reports whether a
// word is a registered command name.
func Classify(line string, isCommand func(string) bool) Input {
	raw := strings.TrimSpace(line)
	in := Input{Kind: KindInvalid, Raw: raw}
	fields := strings.Fields(raw)
	keyword := strings.ToLower(raw)

	switch {
	case keyword == "exit":
		in.Kind = KindExit
	case keyword == "history":
		in.Kind = KindHistory
	case keyword == "menu":
		in.Kind = KindMenu
	case keyword == "plugins":
		in.Kind = KindPlugins
	case raw != "" && isCommand != nil && isCommand(raw):
		in.Kind = KindCommand
		in.Args = []string{raw}
	case len(fields) == 3 && domain.IsOperation(fields[2]):
		in.Kind = KindCalculation
		in.Args = fields
	case len(fields) >= 1 && strings.EqualFold(fields[0], "delete"):
		in.Kind = KindDelete
		in.Args = fields[1:]
	case keyword == "clear":
		in.Kind = KindClear
	case len(fields) >= 1 && strings.EqualFold(fields[0], "search"):
		in.Kind = KindSearch
		in.Args = []string{strings.TrimSpace(raw[len(fields[0]):])}
	case keyword == "deleted":
		in.Kind = KindDeleted
	}
	return in
}
