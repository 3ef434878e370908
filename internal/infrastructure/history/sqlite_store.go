package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/ports"
)

// SQLiteStore persists history in a SQLite database. Active and deleted
// records share one table and are told apart by the deleted column.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init %s: %w", path, err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS calculations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT,
		a TEXT,
		operation TEXT,
		b TEXT,
		result TEXT,
		deleted INTEGER NOT NULL DEFAULT 0
	);`)
	return err
}

// SaveActive replaces every active row with records, in order.
func (s *SQLiteStore) SaveActive(records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM calculations WHERE deleted = 0"); err != nil {
		tx.Rollback()
		return err
	}
	now := time.Now().Format(domain.TimestampFormat)
	for _, rec := range records {
		if _, err := tx.Exec(`INSERT INTO calculations (created_at, a, operation, b, result, deleted)
			VALUES (?, ?, ?, ?, ?, 0)`, now, rec.A, string(rec.Operation), rec.B, rec.Result); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadActive returns the active rows in insertion order.
func (s *SQLiteStore) LoadActive() ([]domain.Record, error) {
	return s.query(false)
}

// AppendDeleted inserts a tombstoned row.
func (s *SQLiteStore) AppendDeleted(record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO calculations (created_at, a, operation, b, result, deleted)
		VALUES (?, ?, ?, ?, ?, 1)`,
		time.Now().Format(domain.TimestampFormat),
		record.A,
		string(record.Operation),
		record.B,
		record.Result,
	)
	return err
}

// LoadDeleted returns the tombstoned rows in deletion order.
func (s *SQLiteStore) LoadDeleted() ([]domain.Record, error) {
	return s.query(true)
}

func (s *SQLiteStore) query(deleted bool) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT a, operation, b, result, deleted FROM calculations
		WHERE deleted = ? ORDER BY id`, boolToInt(deleted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		var op string
		var flag int
		if err := rows.Scan(&rec.A, &op, &rec.B, &rec.Result, &flag); err != nil {
			return nil, err
		}
		rec.Operation = domain.Operation(op)
		rec.Deleted = flag == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all rows.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM calculations")
	return err
}

// Location returns the sqlite database path.
func (s *SQLiteStore) Location() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
