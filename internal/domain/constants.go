package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for history and log files (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for the config file (rw-------)
	SecureFilePermissions = 0o600
)

// History file layout
const (
	// ActiveHistoryHeader is the column header of the active history file
	ActiveHistoryHeader = "Calculation"
	// DeletedHistoryHeader is the column header of the deleted history file
	DeletedHistoryHeader = "Deleted Calculations"
	// DefaultHistoryFile is the default active history file
	DefaultHistoryFile = "calculation_history.csv"
	// DefaultDeletedHistoryFile is the default deleted history file
	DefaultDeletedHistoryFile = "deleted_history.csv"
	// DefaultHistoryDatabase is the default SQLite database file
	DefaultHistoryDatabase = "calculation_history.db"
)

// Calculator defaults
const (
	// DefaultDivisionPrecision matches the 28 significant digits of a standard decimal context
	DefaultDivisionPrecision = 28
)

// Calculation outcomes, used as metric labels
const (
	OutcomeOK               = "ok"
	OutcomeInvalidNumber    = "invalid_number"
	OutcomeUnknownOperation = "unknown_operation"
	OutcomeDivisionByZero   = "division_by_zero"
	OutcomeError            = "error"

	// OperationLabelInvalid replaces unrecognized operation tags in metric labels
	OperationLabelInvalid = "invalid"
)

// Logging defaults
const (
	// DefaultLogFile is used when neither CALC_LOG_FILE nor logging.file is set
	DefaultLogFile = "app.log"
	// DefaultLogLevel is the minimum level written to the log file
	DefaultLogLevel = "info"
	// LogFileEnvVar overrides the log file path
	LogFileEnvVar = "CALC_LOG_FILE"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// LogTimestampFormat is used for log file lines
	LogTimestampFormat = "2006-01-02 15:04:05.000"
)
