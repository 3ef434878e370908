package history

import (
	"fmt"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/ports"
)

// NewStore builds the history store selected by cfg. When the SQLite database
// cannot be opened the CSV files are used instead and the failure is logged.
func NewStore(cfg domain.HistorySettings, log ports.Logger) (ports.HistoryStore, error) {
	switch cfg.Backend {
	case "", domain.BackendCSV:
		return NewCSVStore(cfg.File, cfg.DeletedFile).WithLogger(log), nil
	case domain.BackendSQLite:
		store, err := NewSQLiteStore(cfg.Database)
		if err != nil {
			log.Error("sqlite history unavailable, using csv", err, map[string]interface{}{"database": cfg.Database})
			return NewCSVStore(cfg.File, cfg.DeletedFile).WithLogger(log), nil
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
