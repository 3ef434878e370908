package dispatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/ports"
)

// History is the ledger surface the dispatcher needs.
type History interface {
	Records() []domain.Record
	Search(term string) []domain.Record
	Deleted() []domain.Record
	Delete(index int) (domain.Record, bool)
	Clear()
}

// Calculator evaluates one calculation.
type Calculator interface {
	Evaluate(a, b, op string) (decimal.Decimal, error)
}

// Commands is the registry surface the dispatcher needs.
type Commands interface {
	Has(name string) bool
	Dispatch(name string) error
	Names() []string
}

// Presenter renders lists for the user.
type Presenter interface {
	RenderHistory(w io.Writer, title string, records []domain.Record)
	RenderList(w io.Writer, title string, items []string)
}

// Prompt is printed before each interactive read.
const Prompt = ">>> "

// Dispatcher routes interactive input lines to the ledger, the calculator and
// the command registry.
type Dispatcher struct {
	History    History
	Calculator Calculator
	Commands   Commands
	Presenter  Presenter
	Logger     ports.Logger
	Out        io.Writer
}

// Run reads lines from in until "exit", end of input or ctx is done. ctx is
// honoured while a read is pending. A panic while handling a line is logged
// and ends the loop without error.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.Logger.Error("unexpected failure, exiting", fmt.Errorf("%v", r), nil)
			err = nil
		}
	}()

	fmt.Fprintln(d.Out, "Type 'menu' to see the available commands, 'exit' to quit.")
	lines, readErr := readLines(ctx, in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(d.Out, Prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(d.Out)
			d.Logger.Info("interactive session interrupted", nil)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(d.Out)
				return *readErr
			}
			if d.Handle(line) {
				return nil
			}
		}
	}
}

// readLines scans in on its own goroutine. The channel is closed at end of
// input or once ctx is done; *err is the scan error and is only valid after
// the close.
func readLines(ctx context.Context, in io.Reader) (<-chan string, *error) {
	lines := make(chan string)
	var scanErr error
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr = scanner.Err()
	}()
	return lines, &scanErr
}

// Handle routes one line and reports whether the loop should stop.
func (d *Dispatcher) Handle(line string) bool {
	in := Classify(line, d.Commands.Has)
	d.Logger.Debug("input classified", map[string]interface{}{"kind": in.Kind.String(), "input": in.Raw})

	switch in.Kind {
	case KindExit:
		fmt.Fprintln(d.Out, "Exiting...")
		return true
	case KindHistory:
		d.showHistory("Calculation history", d.History.Records())
	case KindMenu:
		d.runCommand("menu")
	case KindPlugins:
		d.presenter().RenderList(d.Out, "Plugins", d.Commands.Names())
	case KindCommand:
		d.runCommand(in.Args[0])
	case KindCalculation:
		d.calculate(in.Args[0], in.Args[1], in.Args[2])
	case KindDelete:
		d.delete(in.Args)
	case KindClear:
		d.History.Clear()
		fmt.Fprintln(d.Out, "History cleared.")
	case KindSearch:
		d.showHistory(fmt.Sprintf("Calculations matching %q", in.Args[0]), d.History.Search(in.Args[0]))
	case KindDeleted:
		d.showHistory("Deleted calculations", d.History.Deleted())
	default:
		if in.Raw == "" {
			return false
		}
		d.Logger.Warn("invalid input", map[string]interface{}{"input": in.Raw})
		fmt.Fprintln(d.Out, "Invalid input. Enter '<a> <b> <operation>' or type 'menu' for commands.")
	}
	return false
}

func (d *Dispatcher) calculate(a, b, op string) {
	result, err := d.Calculator.Evaluate(a, b, op)
	if err != nil {
		fmt.Fprintf(d.Out, "Calculation failed: %v\n", err)
		return
	}
	fmt.Fprintf(d.Out, "The result of the calculation is %s\n", result.String())
}

func (d *Dispatcher) delete(args []string) {
	if len(args) != 1 {
		d.invalidIndex(fmt.Errorf("%w: want exactly one index", domain.ErrInvalidIndex))
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		d.invalidIndex(fmt.Errorf("%w: %q is not a number", domain.ErrInvalidIndex, args[0]))
		return
	}
	removed, ok := d.History.Delete(n - 1)
	if !ok {
		d.invalidIndex(fmt.Errorf("%w: no history entry %d", domain.ErrInvalidIndex, n))
		return
	}
	fmt.Fprintf(d.Out, "Deleted: %s\n", removed)
}

func (d *Dispatcher) invalidIndex(err error) {
	d.Logger.Warn("delete rejected", map[string]interface{}{"error": err.Error()})
	fmt.Fprintf(d.Out, "%v. Usage: delete <n>, where n is the number shown by 'history'.\n", err)
}

func (d *Dispatcher) runCommand(name string) {
	if err := d.Commands.Dispatch(name); err != nil {
		if errors.Is(err, domain.ErrUnknownCommand) {
			d.Logger.Warn("unknown command", map[string]interface{}{"command": name})
		} else {
			d.Logger.Error("command failed", err, map[string]interface{}{"command": name})
		}
		fmt.Fprintf(d.Out, "Command %q is not available. Type 'plugins' to list commands.\n", name)
	}
}

func (d *Dispatcher) showHistory(title string, records []domain.Record) {
	d.presenter().RenderHistory(d.Out, title, records)
}

func (d *Dispatcher) presenter() Presenter {
	if d.Presenter == nil {
		return PlainPresenter{}
	}
	return d.Presenter
}

// PlainPresenter renders numbered plain-text lists.
type PlainPresenter struct{}

// RenderHistory prints records numbered from 1, the index used by delete.
func (PlainPresenter) RenderHistory(w io.Writer, title string, records []domain.Record) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(records) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for i, rec := range records {
		fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
	}
}

// RenderList prints one item per line.
func (PlainPresenter) RenderList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
