package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/calc-go/assets"
	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/pkg/filesystem"
	"github.com/doeshing/calc-go/internal/ports"
)

// ConfigEnvVar overrides the config file location.
const ConfigEnvVar = "CALC_CONFIG"

// FileLoader loads YAML configuration from ~/.calc/config.yaml (overridable via CALC_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err := DefaultConfig()
			if err != nil {
				return domain.Config{}, err
			}
			if err := l.Save(cfg); err != nil {
				return domain.Config{}, fmt.Errorf("write default config: %w", err)
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg = hydrateDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return domain.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(ConfigEnvVar); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".calc", "config.yaml")
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes the given config back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Reset backs up the current file, if any, and rewrites the defaults.
func (l *FileLoader) Reset() (domain.Config, string, error) {
	var backup string
	if _, err := os.Stat(l.resolvePath()); err == nil {
		if backup, err = l.Backup(); err != nil {
			return domain.Config{}, "", fmt.Errorf("backup config: %w", err)
		}
	}
	cfg, err := DefaultConfig()
	if err != nil {
		return domain.Config{}, "", err
	}
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, "", err
	}
	return cfg, backup, nil
}

// Backup copies the current config file to a timestamped backup.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	dest := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(dest, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return dest, nil
}

// DefaultConfig decodes the embedded default configuration.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.BackendCSV
	}
	if cfg.History.File == "" {
		cfg.History.File = domain.DefaultHistoryFile
	}
	if cfg.History.DeletedFile == "" {
		cfg.History.DeletedFile = domain.DefaultDeletedHistoryFile
	}
	if cfg.History.Database == "" {
		cfg.History.Database = domain.DefaultHistoryDatabase
	}
	if cfg.Calculator.DivisionPrecision == 0 {
		cfg.Calculator.DivisionPrecision = domain.DefaultDivisionPrecision
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = domain.DefaultLogFile
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = domain.DefaultLogLevel
	}
	cfg.History.File = filesystem.ExpandPath(cfg.History.File)
	cfg.History.DeletedFile = filesystem.ExpandPath(cfg.History.DeletedFile)
	cfg.History.Database = filesystem.ExpandPath(cfg.History.Database)
	cfg.Logging.File = filesystem.ExpandPath(cfg.Logging.File)
	if cfg.Metrics.Textfile != "" {
		cfg.Metrics.Textfile = filesystem.ExpandPath(cfg.Metrics.Textfile)
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
