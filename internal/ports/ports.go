// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The ledger, evaluator, registry and dispatcher depend
// only on these abstractions, so each can be tested with in-memory stubs while the
// CLI wires in the CSV or SQLite store, the file logger and Prometheus metrics.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., HistoryStore, Logger)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/calc-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.calc/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// HistoryStore persists the ledger. The active sequence is rewritten in full on
// every mutation; the deleted sequence is append-only.
type HistoryStore interface {
	SaveActive(records []domain.Record) error
	LoadActive() ([]domain.Record, error)
	AppendDeleted(record domain.Record) error
	LoadDeleted() ([]domain.Record, error)
	Clear() error
	Location() string
}

// HistoryRecorder receives successful calculations.
type HistoryRecorder interface {
	Append(record domain.Record)
}

// Command is a named plugin unit with a single capability.
type Command interface {
	Execute()
}

// Metrics records calculation and persistence outcomes.
type Metrics interface {
	ObserveCalculation(op string, outcome string)
	ObservePersistence(action string, err error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (log file, stdout).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
