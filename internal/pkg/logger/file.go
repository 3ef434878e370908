package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/calc-go/internal/domain"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel maps a config string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// sink is shared by every component logger created from the same file.
type sink struct {
	mu        sync.Mutex
	out       *log.Logger
	file      *os.File
	mirror    *StdLogger
	closeOnce sync.Once
}

// FileLogger writes line-oriented entries to a log file. Every line carries a
// timestamp, the level, the component name and a per-process session id.
type FileLogger struct {
	sink      *sink
	sessionID string
	component string
	level     Level
	path      string
}

// ResolvePath picks the log file: CALC_LOG_FILE wins over the configured path,
// which wins over app.log.
func ResolvePath(configured string) string {
	if env := strings.TrimSpace(os.Getenv(domain.LogFileEnvVar)); env != "" {
		return env
	}
	if configured != "" {
		return configured
	}
	return domain.DefaultLogFile
}

// NewFile opens (or creates) path in append mode.
//
// If the file cannot be opened, it returns a fallback logger that writes to
// stderr along with the error, so callers can keep going and report it.
func NewFile(path string, level Level, component string) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return newFallback(level, component, err), err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.FilePermissions)
	if err != nil {
		return newFallback(level, component, err), fmt.Errorf("open log file: %w", err)
	}
	return &FileLogger{
		sink:      &sink{out: log.New(file, "", 0), file: file},
		sessionID: uuid.NewString(),
		component: component,
		level:     level,
		path:      path,
	}, nil
}

// NewWriter builds a logger over an arbitrary writer.
func NewWriter(w io.Writer, level Level, component string) *FileLogger {
	return &FileLogger{
		sink:      &sink{out: log.New(w, "", 0)},
		sessionID: uuid.NewString(),
		component: component,
		level:     level,
	}
}

func newFallback(level Level, component string, cause error) *FileLogger {
	l := NewWriter(os.Stderr, level, component)
	l.write(LevelWarn, "file logging unavailable, falling back to stderr", map[string]interface{}{"error": cause.Error()})
	return l
}

// Named returns a logger for another component sharing the same destination.
func (l *FileLogger) Named(component string) *FileLogger {
	clone := *l
	clone.component = component
	return &clone
}

func (l *FileLogger) Debug(msg string, fields map[string]interface{}) {
	l.write(LevelDebug, msg, fields)
}

func (l *FileLogger) Info(msg string, fields map[string]interface{}) {
	l.write(LevelInfo, msg, fields)
}

func (l *FileLogger) Warn(msg string, fields map[string]interface{}) {
	l.write(LevelWarn, msg, fields)
}

func (l *FileLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.write(LevelError, msg, withError(err, fields))
}

// Mirror copies every entry that passes the level filter to std. The mirror is
// shared with all Named loggers.
func (l *FileLogger) Mirror(std *StdLogger) *FileLogger {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.mirror = std
	return l
}

func withError(err error, fields map[string]interface{}) map[string]interface{} {
	if err == nil {
		return fields
	}
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["error"] = err.Error()
	return merged
}

func (l *FileLogger) write(level Level, msg string, fields map[string]interface{}) {
	if level < l.level {
		return
	}
	entry := fmt.Sprintf("[%s] [%s] [%s] [%s] %s%s",
		time.Now().Format(domain.LogTimestampFormat),
		l.sessionID[:8],
		l.component,
		level,
		msg,
		formatFields(fields))

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.out.Println(entry)
	if l.sink.mirror != nil {
		l.sink.mirror.emit(level, l.component, msg, fields)
	}
}

func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

// SessionID returns the id stamped on every line.
func (l *FileLogger) SessionID() string {
	return l.sessionID
}

// Path returns the log file path, or "" when logging to a writer.
func (l *FileLogger) Path() string {
	return l.path
}

// Close closes the log file. Safe to call multiple times.
func (l *FileLogger) Close() error {
	var err error
	l.sink.closeOnce.Do(func() {
		if l.sink.file != nil {
			err = l.sink.file.Close()
		}
	})
	return err
}
