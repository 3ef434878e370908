package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/calc-go/internal/app"
	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/infrastructure/cli/render"
)

// NewPluginsCommand lists the registered plugin commands
func NewPluginsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List plugin commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Registry == nil {
				return errors.New(ErrRegistryUnavailable)
			}
			out := cmd.OutOrStdout()
			render.NewPresenter(out).RenderList(out, "Plugins", container.Registry.Names())
			return nil
		},
	}
}

// NewRunCommand dispatches one plugin command by name
func NewRunCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "run <plugin>",
		Short: "Run a plugin command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Registry == nil {
				return errors.New(ErrRegistryUnavailable)
			}
			if err := container.Registry.Dispatch(args[0]); err != nil {
				if errors.Is(err, domain.ErrUnknownCommand) {
					container.Logger.Warn("unknown command", map[string]interface{}{"command": args[0]})
				}
				return fmt.Errorf("%w (try 'calc plugins')", err)
			}
			return nil
		},
	}
}
