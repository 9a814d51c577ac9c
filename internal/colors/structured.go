package colors

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	traceMu      sync.Mutex
	traceEnabled atomic.Bool
	traceNow     = time.Now
)

func init() {
	traceEnabled.Store(true)
}

// TraceLevel is the severity of a trace record.
type TraceLevel string

const (
	LevelDebug TraceLevel = "debug"
	LevelInfo  TraceLevel = "info"
	LevelWarn  TraceLevel = "warn"
	LevelError TraceLevel = "error"
)

// Trace is one machine-readable record written to stderr in debug mode.
// Server and Channel name the buffer the action touched, when there is one.
type Trace struct {
	Component string                 `json:"component"`
	Action    string                 `json:"action"`
	Status    string                 `json:"status"`
	Server    string                 `json:"server,omitempty"`
	Channel   string                 `json:"channel,omitempty"`
	Err       error                  `json:"-"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

type traceRecord struct {
	Timestamp string     `json:"timestamp"`
	Level     TraceLevel `json:"level"`
	Trace
	Error string `json:"error,omitempty"`
}

// DisableStructuredLogging suppresses trace output, e.g. while the TUI owns the terminal.
func DisableStructuredLogging() {
	traceEnabled.Store(false)
}

// EnableStructuredLogging resumes trace output.
func EnableStructuredLogging() {
	traceEnabled.Store(true)
}

// Emit writes tr as a JSON line when debug mode is on and tracing is enabled.
// Callers redact sensitive fields first.
func Emit(level TraceLevel, tr Trace) {
	if !debugEnabled || !traceEnabled.Load() {
		return
	}

	rec := traceRecord{
		Timestamp: traceNow().UTC().Format(time.RFC3339),
		Level:     level,
		Trace:     tr,
	}
	if tr.Err != nil {
		rec.Error = tr.Err.Error()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		errorFallback(fmt.Sprintf("failed to marshal trace: %v", err))
		return
	}

	traceMu.Lock()
	defer traceMu.Unlock()
	if _, err := fmt.Fprintf(stderr, "%s\n", data); err != nil {
		errorFallback(fmt.Sprintf("failed to write trace: %v", err))
	}
}

// TraceInfo emits tr at info level.
func TraceInfo(tr Trace) { Emit(LevelInfo, tr) }

// TraceError emits tr at error level.
func TraceError(tr Trace) { Emit(LevelError, tr) }
