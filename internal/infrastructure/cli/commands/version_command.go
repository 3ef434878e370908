package commands

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/calc-go/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show calc version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayVersionInformation(cmd.OutOrStdout(), short)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

// displayVersionInformation prints "calc <version> (<build details>)"
func displayVersionInformation(out io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(out, version.Version)
		return err
	}

	details := []string{runtime.Version()}
	if version.Commit != "" {
		details = append(details, "commit "+version.Commit)
	}
	if version.BuildDate != "" {
		details = append(details, "built "+version.BuildDate)
	}
	_, err := fmt.Fprintf(out, "calc %s (%s)\n", version.Version, strings.Join(details, ", "))
	return err
}
