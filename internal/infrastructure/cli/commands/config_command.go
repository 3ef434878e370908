package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/calc-go/internal/app"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect calc configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.ConfigLoader == nil {
					return errors.New(ErrConfigLoaderUnavailable)
				}
				fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default configuration (the old file is backed up)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return resetConfiguration(cmd.OutOrStdout(), container)
			},
		},
	)

	return configCmd
}

// showConfiguration prints the loaded config as YAML
func showConfiguration(out io.Writer, container *app.Container) error {
	raw, err := yaml.Marshal(container.Config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(raw)
	return err
}

// resetConfiguration rewrites the defaults after backing up the current file
func resetConfiguration(out io.Writer, container *app.Container) error {
	if container.ConfigLoader == nil {
		return errors.New(ErrConfigLoaderUnavailable)
	}
	_, backup, err := container.ConfigLoader.Reset()
	if err != nil {
		return fmt.Errorf("failed to reset configuration: %w", err)
	}
	if backup != "" {
		fmt.Fprintf(out, "Backup written to %s\n", backup)
	}
	fmt.Fprintf(out, "Configuration reset: %s\n", container.ConfigLoader.Path())
	return nil
}
