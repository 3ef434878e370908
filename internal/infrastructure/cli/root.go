package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/calc-go/internal/app"
	"github.com/doeshing/calc-go/internal/infrastructure/cli/commands"
	"github.com/doeshing/calc-go/internal/infrastructure/cli/render"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
	In         io.Reader
	Out        io.Writer
}

// ErrUsageFormat reports a root invocation that is neither one-shot nor interactive.
const ErrUsageFormat = "expected '<a> <b> <operation>' or no arguments, got %d arguments"

// NewRootCmd wires the cobra root command. The returned container must be
// closed once the command has finished.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	container, err := app.BuildContainer(ctx, app.Options{
		ConfigPath: opts.ConfigPath,
		Verbose:    opts.Verbose,
		Out:        opts.Out,
		Presenter:  render.NewPresenter(opts.Out),
	})
	if err != nil {
		return nil, nil, err
	}

	root := &cobra.Command{
		Use:   "calc [a b operation]",
		Short: "calc - decimal calculator with history",
		Long: "calc performs add, subtract, multiply and divide on arbitrary-precision decimals.\n" +
			"With three arguments it prints one result; without them it starts an interactive session.",
		Args: cobra.ArbitraryArgs,
		// Operands such as -1 must reach RunE as positional arguments.
		// Subcommands still parse their own flags.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == "--" {
				args = args[1:]
			}
			switch {
			case len(args) == 1 && (args[0] == "-h" || args[0] == "--help"):
				return cmd.Help()
			case len(args) == 3:
				return runOnce(cmd.OutOrStdout(), container, args)
			case len(args) == 0:
				return container.Dispatcher.Run(cmd.Context(), cmd.InOrStdin())
			default:
				return fmt.Errorf(ErrUsageFormat, len(args))
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)

	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewPluginsCommand(container))
	root.AddCommand(commands.NewRunCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, container, nil
}

// runOnce evaluates one calculation. Failures are logged by the evaluator and
// print nothing.
func runOnce(out io.Writer, container *app.Container, args []string) error {
	result, err := container.Evaluator.Evaluate(args[0], args[1], args[2])
	if err != nil {
		return nil
	}
	fmt.Fprintf(out, commands.ResultFormat, result.String())
	return nil
}
