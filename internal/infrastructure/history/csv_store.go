package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/ports"
)

// CSVStore keeps the active history and the deleted history in two CSV files.
// Both files carry an unnamed index column followed by the record column, so
// they stay readable by spreadsheet and dataframe tools.
type CSVStore struct {
	path        string
	deletedPath string
	logger      ports.Logger
	mu          sync.Mutex
}

// NewCSVStore creates a store over the given active and deleted files.
func NewCSVStore(path, deletedPath string) *CSVStore {
	return &CSVStore{path: path, deletedPath: deletedPath}
}

// WithLogger reports rows that cannot be decoded.
func (s *CSVStore) WithLogger(l ports.Logger) *CSVStore {
	s.logger = l
	return s
}

// SaveActive overwrites the active file with records.
func (s *CSVStore) SaveActive(records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ensureDir(s.path); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	w := csv.NewWriter(file)
	if err := w.Write([]string{"", domain.ActiveHistoryHeader}); err != nil {
		file.Close()
		return err
	}
	for i, rec := range records {
		if err := w.Write([]string{strconv.Itoa(i), rec.String()}); err != nil {
			file.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// LoadActive reads the active file. A missing file is an empty history.
func (s *CSVStore) LoadActive() ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, _, err := s.read(s.path)
	return records, err
}

// AppendDeleted appends a tombstoned record to the deleted file.
func (s *CSVStore) AppendDeleted(record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ensureDir(s.deletedPath); err != nil {
		return err
	}

	_, rows, err := s.read(s.deletedPath)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(s.deletedPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if rows < 0 {
		if err := w.Write([]string{"", domain.DeletedHistoryHeader}); err != nil {
			return err
		}
		rows = 0
	}
	if err := w.Write([]string{strconv.Itoa(rows), record.String()}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// LoadDeleted reads the deleted file. Every returned record is tombstoned.
func (s *CSVStore) LoadDeleted() ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, _, err := s.read(s.deletedPath)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i] = records[i].Tombstoned()
	}
	return records, nil
}

// Clear removes both files. Missing files are already clear.
func (s *CSVStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(removeIfExists(s.path), removeIfExists(s.deletedPath))
}

// Location returns the active file path.
func (s *CSVStore) Location() string {
	return s.path
}

// DeletedLocation returns the deleted file path.
func (s *CSVStore) DeletedLocation() string {
	return s.deletedPath
}

// read parses a history file. rows is the number of data rows, or -1 when the
// file does not exist or has no header yet. Rows that do not decode into a
// record are counted but skipped.
func (s *CSVStore) read(path string) (records []domain.Record, rows int, err error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, -1, nil
		}
		return nil, 0, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, -1, nil
		}
		return nil, 0, fmt.Errorf("read header of %s: %w", path, err)
	}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, rows, fmt.Errorf("read %s: %w", path, err)
		}
		rows++
		if len(row) == 0 {
			continue
		}
		rec, err := domain.ParseRecord(row[len(row)-1])
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping history row", map[string]interface{}{"file": path, "row": rows, "error": err.Error()})
			}
			continue
		}
		records = append(records, rec)
	}
	return records, rows, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

var _ ports.HistoryStore = (*CSVStore)(nil)
