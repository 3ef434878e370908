package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/calc-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if cfg.Calculator.DivisionPrecision < 0 {
		return fmt.Errorf("calculator.division_precision must be >= 0 (0 selects the default), got %d", cfg.Calculator.DivisionPrecision)
	}
	return validateLogging(cfg.Logging)
}

func validateHistory(h domain.HistorySettings) error {
	switch h.Backend {
	case domain.BackendCSV:
		if h.File == "" || h.DeletedFile == "" {
			return errors.New("history.file and history.deleted_file are required for the csv backend")
		}
		if h.File == h.DeletedFile {
			return errors.New("history.file and history.deleted_file must differ")
		}
	case domain.BackendSQLite:
		if h.Database == "" {
			return errors.New("history.database is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("history.backend must be csv|sqlite, got %s", h.Backend)
	}
	return nil
}

func validateLogging(l domain.LoggingSettings) error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", l.Level)
	}
}
