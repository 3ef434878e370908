package commands

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrLedgerUnavailable        = "history ledger unavailable"
	ErrRegistryUnavailable      = "command registry unavailable"
	ErrDiagnosticsFailed        = "one or more checks failed"
)

// Success messages
const (
	MsgHistoryCleared = "History cleared."
	MsgNoHistory      = "No calculations in history."
)

// Output formats
const (
	// ResultFormat is printed after a successful one-shot calculation
	ResultFormat = "The result of the calculation is %s\n"
)
