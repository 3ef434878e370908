package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/ports"
)

// CommandLister exposes the registered plugin names.
type CommandLister interface {
	Names() []string
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	HistoryStore   ports.HistoryStore
	Commands       CommandLister
	LogPath        string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))

	checks = append(checks, writableCheck("History directory", historyPath(cfg.History)))

	if s.HistoryStore != nil {
		if records, err := s.HistoryStore.LoadActive(); err != nil {
			checks = append(checks, fail("History store", err.Error()))
		} else {
			active := domain.ActiveRecords(records)
			checks = append(checks, ok("History store", fmt.Sprintf("%s: %d active records", s.HistoryStore.Location(), len(active))))
		}
	} else {
		checks = append(checks, warn("History store", "history store not initialized"))
	}

	if s.Commands != nil && len(s.Commands.Names()) > 0 {
		checks = append(checks, ok("Plugins", fmt.Sprintf("%d registered", len(s.Commands.Names()))))
	} else {
		checks = append(checks, warn("Plugins", "no commands registered"))
	}

	if s.LogPath != "" {
		checks = append(checks, writableCheck("Log file", s.LogPath))
	} else {
		checks = append(checks, warn("Log file", "logging to stderr"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func historyPath(h domain.HistorySettings) string {
	if h.Backend == domain.BackendSQLite {
		return h.Database
	}
	return h.File
}

// writableCheck verifies a file can be created next to path.
func writableCheck(name, path string) domain.HealthCheck {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return warn(name, fmt.Sprintf("%s does not exist yet", dir))
		}
		return fail(name, err.Error())
	}
	if !info.IsDir() {
		return fail(name, fmt.Sprintf("%s is not a directory", dir))
	}
	tmp, err := os.CreateTemp(dir, ".calc-doctor-*")
	if err != nil {
		return fail(name, fmt.Sprintf("%s not writable: %v", dir, err))
	}
	tmp.Close()
	os.Remove(tmp.Name())
	return ok(name, fmt.Sprintf("%s writable", path))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
