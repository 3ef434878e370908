package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doeshing/calc-go/internal/app"
	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/infrastructure/cli/render"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and edit calculation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, "")
		},
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryDeletedCommand(container),
		newHistoryDeleteCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved calculations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, search)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only show calculations containing this text")
	return cmd
}

// newHistoryDeletedCommand creates the 'history deleted' subcommand
func newHistoryDeletedCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "deleted",
		Short: "List deleted calculations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Ledger == nil {
				return errors.New(ErrLedgerUnavailable)
			}
			out := cmd.OutOrStdout()
			render.NewPresenter(out).RenderHistory(out, "Deleted calculations", container.Ledger.Deleted())
			return nil
		},
	}
}

// newHistoryDeleteCommand creates the 'history delete' subcommand
func newHistoryDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <n>",
		Short: "Delete the n-th calculation shown by 'history list'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteHistoryEntry(cmd.OutOrStdout(), container, args[0])
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the history and deleted-history files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Ledger == nil {
				return errors.New(ErrLedgerUnavailable)
			}
			container.Ledger.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHistory(container, args[0])
		},
	}
}

// listHistoryEntries prints the persisted history, optionally filtered
func listHistoryEntries(out io.Writer, container *app.Container, search string) error {
	if container.Ledger == nil {
		return errors.New(ErrLedgerUnavailable)
	}
	container.Ledger.Restore()

	title := "Calculation history"
	records := container.Ledger.Records()
	if search != "" {
		title = fmt.Sprintf("Calculations matching %q", search)
		records = container.Ledger.Search(search)
	}
	if len(records) == 0 && search == "" {
		fmt.Fprintln(out, MsgNoHistory)
		return nil
	}
	render.NewPresenter(out).RenderHistory(out, title, records)
	return nil
}

// deleteHistoryEntry deletes a 1-based entry of the persisted history
func deleteHistoryEntry(out io.Writer, container *app.Container, arg string) error {
	if container.Ledger == nil {
		return errors.New(ErrLedgerUnavailable)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidIndex, arg)
	}
	container.Ledger.Restore()
	removed, ok := container.Ledger.Delete(n - 1)
	if !ok {
		return fmt.Errorf("%w: no history entry %d", domain.ErrInvalidIndex, n)
	}
	fmt.Fprintf(out, "Deleted: %s\n", removed)
	return nil
}

// exportHistory writes the persisted history to a JSONL file
func exportHistory(container *app.Container, path string) error {
	if container.Ledger == nil {
		return errors.New(ErrLedgerUnavailable)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, rec := range container.Ledger.Reload() {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to export history to %s: %w", path, err)
		}
	}
	return nil
}
