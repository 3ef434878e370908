package domain

// Config mirrors ~/.calc/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	History             HistorySettings    `yaml:"history"`
	Calculator          CalculatorSettings `yaml:"calculator"`
	Logging             LoggingSettings    `yaml:"logging"`
	Metrics             MetricsSettings    `yaml:"metrics"`
}

// HistoryBackend selects the ledger persistence adapter.
type HistoryBackend string

const (
	BackendCSV    HistoryBackend = "csv"
	BackendSQLite HistoryBackend = "sqlite"
)

// HistorySettings configures where the ledger is persisted.
type HistorySettings struct {
	Backend     HistoryBackend `yaml:"backend"`
	File        string         `yaml:"file"`
	DeletedFile string         `yaml:"deleted_file"`
	Database    string         `yaml:"database"`
	LoadOnStart bool           `yaml:"load_on_start"`
}

// CalculatorSettings tunes decimal arithmetic.
type CalculatorSettings struct {
	DivisionPrecision int32 `yaml:"division_precision"`
}

// LoggingSettings configures the log file.
type LoggingSettings struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// MetricsSettings configures the Prometheus textfile export.
type MetricsSettings struct {
	Textfile string `yaml:"textfile"`
}
