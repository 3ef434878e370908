package logger

import (
	"io"
	"log"
	"os"
)

// StdLogger prints entries through Go's log package. It is silent unless
// verbose, which makes it the quiet default for tests and the CALC_DEBUG
// console mirror of a FileLogger.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return NewStdWriter(os.Stderr, verbose)
}

// NewStdWriter creates a StdLogger writing to w.
func NewStdWriter(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose, out: log.New(w, "", log.Ltime)}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.emit(LevelDebug, "", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.emit(LevelInfo, "", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.emit(LevelWarn, "", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.emit(LevelError, "", msg, withError(err, fields))
}

func (l *StdLogger) emit(level Level, component, msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	if component != "" {
		component = component + ": "
	}
	l.out.Printf("[%s] %s%s%s", level, component, msg, formatFields(fields))
}
