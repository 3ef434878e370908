package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/pkg/logger"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreActiveRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	require.NoError(t, store.SaveActive(sampleRecords()))

	loaded, err := store.LoadActive()
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), loaded)

	require.NoError(t, store.SaveActive(sampleRecords()[1:]))
	loaded, err = store.LoadActive()
	require.NoError(t, err)
	assert.Equal(t, sampleRecords()[1:], loaded)
}

func TestSQLiteStoreDeletedRowsStaySeparate(t *testing.T) {
	store := newTestSQLiteStore(t)
	records := sampleRecords()
	require.NoError(t, store.SaveActive(records[1:]))
	require.NoError(t, store.AppendDeleted(records[0].Tombstoned()))

	// rewriting the active set must not touch tombstones
	require.NoError(t, store.SaveActive(nil))

	active, err := store.LoadActive()
	require.NoError(t, err)
	assert.Empty(t, active)

	deleted, err := store.LoadDeleted()
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.True(t, deleted[0].Deleted)
	assert.Equal(t, "2 add 2 = 4", deleted[0].String())
}

func TestSQLiteStoreClear(t *testing.T) {
	store := newTestSQLiteStore(t)
	require.NoError(t, store.SaveActive(sampleRecords()))
	require.NoError(t, store.AppendDeleted(sampleRecords()[0]))
	require.NoError(t, store.Clear())

	active, err := store.LoadActive()
	require.NoError(t, err)
	deleted, err := store.LoadDeleted()
	require.NoError(t, err)
	assert.Empty(t, active)
	assert.Empty(t, deleted)
}

func TestNewStoreSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.HistorySettings{
		File:        filepath.Join(dir, "history.csv"),
		DeletedFile: filepath.Join(dir, "deleted.csv"),
		Database:    filepath.Join(dir, "history.db"),
	}
	log := logger.NewStd(false)

	store, err := NewStore(cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &CSVStore{}, store)

	cfg.Backend = domain.BackendSQLite
	store, err = NewStore(cfg, log)
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, store)
	_ = store.(*SQLiteStore).Close()

	cfg.Backend = "mongo"
	_, err = NewStore(cfg, log)
	assert.Error(t, err)
}
