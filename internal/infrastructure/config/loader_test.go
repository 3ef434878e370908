package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/calc-go/internal/domain"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BackendCSV, cfg.History.Backend)
	assert.Equal(t, "calculation_history.csv", cfg.History.File)
	assert.Equal(t, "deleted_history.csv", cfg.History.DeletedFile)
	assert.Equal(t, int32(28), cfg.Calculator.DivisionPrecision)
	assert.Equal(t, "app.log", cfg.Logging.File)
	assert.False(t, cfg.History.LoadOnStart)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config should be written")
}

func TestLoadHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  backend: sqlite\n  load_on_start: true\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BackendSQLite, cfg.History.Backend)
	assert.True(t, cfg.History.LoadOnStart)
	assert.Equal(t, "calculation_history.db", cfg.History.Database)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown backend", yaml: "history:\n  backend: postgres\n"},
		{name: "same files", yaml: "history:\n  file: h.csv\n  deleted_file: h.csv\n"},
		{name: "bad level", yaml: "logging:\n  level: loud\n"},
		{name: "negative precision", yaml: "calculator:\n  division_precision: -1\n"},
		{name: "not yaml", yaml: "history: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
			_, err := NewFileLoader(path).Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestResolvePathHonoursEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(ConfigEnvVar, path)
	assert.Equal(t, path, NewFileLoader("").Path())
	assert.Equal(t, "/explicit.yaml", NewFileLoader("/explicit.yaml").Path())
}

func TestResetBacksUpExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))

	cfg, backup, err := NewFileLoader(path).Reset()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NotEmpty(t, backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "debug"))
}
