package ledger

import (
	"fmt"
	"strings"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/ports"
)

// Ledger is the in-memory active history, written through to a store on every
// mutation. Store failures are logged and never returned: the in-memory
// sequence stays authoritative for the rest of the process.
type Ledger struct {
	store   ports.HistoryStore
	logger  ports.Logger
	metrics ports.Metrics
	records []domain.Record
}

// New creates an empty ledger over store.
func New(store ports.HistoryStore, logger ports.Logger, m ports.Metrics) *Ledger {
	if m == nil {
		m = nopMetrics{}
	}
	return &Ledger{store: store, logger: logger, metrics: m}
}

// Append adds record and persists the active sequence.
func (l *Ledger) Append(record domain.Record) {
	if record.Deleted {
		return
	}
	l.records = append(l.records, record)
	l.persist()
}

// Delete removes the record at the 0-based display index, moves it to the
// deleted store and persists the active sequence.
func (l *Ledger) Delete(index int) (domain.Record, bool) {
	if index < 0 || index >= len(l.records) {
		l.logger.Warn("delete index out of range", map[string]interface{}{"index": index, "size": len(l.records)})
		return domain.Record{}, false
	}
	removed := l.records[index].Tombstoned()
	l.records = append(l.records[:index:index], l.records[index+1:]...)

	err := l.store.AppendDeleted(removed)
	l.metrics.ObservePersistence("append_deleted", err)
	if err != nil {
		l.logger.Error("failed to record deleted calculation", fmt.Errorf("%w: %w", domain.ErrPersistence, err),
			map[string]interface{}{"record": removed.String()})
	} else {
		l.logger.Info("calculation deleted", map[string]interface{}{"record": removed.String()})
	}
	l.persist()
	return removed, true
}

// Reload reads the active store and drops tombstoned records.
func (l *Ledger) Reload() []domain.Record {
	records, err := l.store.LoadActive()
	l.metrics.ObservePersistence("load_active", err)
	if err != nil {
		l.logger.Error("failed to load history", fmt.Errorf("%w: %w", domain.ErrPersistence, err),
			map[string]interface{}{"location": l.store.Location()})
		return nil
	}
	return domain.ActiveRecords(records)
}

// Restore replaces the in-memory sequence with the persisted one.
func (l *Ledger) Restore() {
	l.records = l.Reload()
	l.logger.Info("history restored", map[string]interface{}{"records": len(l.records)})
}

// Clear removes the persisted active and deleted history and empties memory.
func (l *Ledger) Clear() {
	l.records = nil
	err := l.store.Clear()
	l.metrics.ObservePersistence("clear", err)
	if err != nil {
		l.logger.Error("failed to clear history", fmt.Errorf("%w: %w", domain.ErrPersistence, err),
			map[string]interface{}{"location": l.store.Location()})
		return
	}
	l.logger.Info("history cleared", map[string]interface{}{"location": l.store.Location()})
}

// Records returns a copy of the active sequence in display order.
func (l *Ledger) Records() []domain.Record {
	out := make([]domain.Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of active records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Search returns active records whose rendered form contains term,
// case-insensitively. An empty term matches everything.
func (l *Ledger) Search(term string) []domain.Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return l.Records()
	}
	var matches []domain.Record
	for _, rec := range l.records {
		if strings.Contains(strings.ToLower(rec.String()), term) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// Deleted reads the deleted store for display.
func (l *Ledger) Deleted() []domain.Record {
	records, err := l.store.LoadDeleted()
	l.metrics.ObservePersistence("load_deleted", err)
	if err != nil {
		l.logger.Error("failed to load deleted history", fmt.Errorf("%w: %w", domain.ErrPersistence, err), nil)
		return nil
	}
	return records
}

// Location returns where the active history is persisted.
func (l *Ledger) Location() string {
	return l.store.Location()
}

func (l *Ledger) persist() {
	err := l.store.SaveActive(l.records)
	l.metrics.ObservePersistence("save_active", err)
	if err != nil {
		l.logger.Error("failed to save history", fmt.Errorf("%w: %w", domain.ErrPersistence, err),
			map[string]interface{}{"location": l.store.Location()})
		return
	}
	l.logger.Debug("history saved", map[string]interface{}{"records": len(l.records), "location": l.store.Location()})
}

type nopMetrics struct{}

func (nopMetrics) ObserveCalculation(string, string) {}
func (nopMetrics) ObservePersistence(string, error)  {}

var _ ports.HistoryRecorder = (*Ledger)(nil)
