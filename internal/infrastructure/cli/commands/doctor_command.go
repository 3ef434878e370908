package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/calc-go/internal/app"
	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/infrastructure/cli/render"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose config, history and log setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctorDiagnostics(cmd, cmd.OutOrStdout(), container)
		},
	}
}

// runDoctorDiagnostics runs environment diagnostics
func runDoctorDiagnostics(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if container.DoctorService == nil {
		return errors.New(ErrDoctorServiceUnavailable)
	}

	report, err := container.DoctorService.Run(cmd.Context())

	// Display report even if there were errors
	render.NewPresenter(out).RenderHealth(out, report)
	fmt.Fprintf(out, "%d ok, %d warn, %d error\n",
		report.Count(domain.HealthOK), report.Count(domain.HealthWarn), report.Count(domain.HealthError))

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	if report.Worst() == domain.HealthError {
		return errors.New(ErrDiagnosticsFailed)
	}
	return nil
}
