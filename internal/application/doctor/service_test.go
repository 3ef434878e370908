package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/infrastructure/history"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubCommands []string

func (s stubCommands) Names() []string { return s }

func statusByName(report domain.HealthReport) map[string]domain.HealthStatus {
	out := map[string]domain.HealthStatus{}
	for _, c := range report.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestDoctorHealthyEnvironment(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.Config{
		ConfigFormatVersion: "1",
		History: domain.HistorySettings{
			Backend:     domain.BackendCSV,
			File:        filepath.Join(dir, "history.csv"),
			DeletedFile: filepath.Join(dir, "deleted.csv"),
		},
	}
	store := history.NewCSVStore(cfg.History.File, cfg.History.DeletedFile)
	require.NoError(t, store.SaveActive([]domain.Record{{A: "1", B: "1", Operation: domain.OpAdd, Result: "2"}}))

	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: cfg},
		HistoryStore:   store,
		Commands:       stubCommands{"menu", "greet"},
		LogPath:        filepath.Join(dir, "app.log"),
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	statuses := statusByName(report)
	for _, name := range []string{"Config file", "History directory", "History store", "Plugins", "Log file"} {
		assert.Equal(t, domain.HealthOK, statuses[name], name)
	}
}

func TestDoctorConfigFailureStopsEarly(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfigProvider{err: errors.New("bad yaml")}}

	report, err := svc.Run(context.Background())
	assert.Error(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, domain.HealthError, report.Checks[0].Status)
}

func TestDoctorWarnsOnMissingPieces(t *testing.T) {
	cfg := domain.Config{History: domain.HistorySettings{File: filepath.Join(t.TempDir(), "missing", "h.csv")}}
	svc := &Service{ConfigProvider: stubConfigProvider{cfg: cfg}}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	statuses := statusByName(report)
	assert.Equal(t, domain.HealthWarn, statuses["History directory"])
	assert.Equal(t, domain.HealthWarn, statuses["History store"])
	assert.Equal(t, domain.HealthWarn, statuses["Plugins"])
	assert.Equal(t, domain.HealthWarn, statuses["Log file"])
}
