package colors

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// captureOutput swaps the console writers for buffers while fn runs.
func captureOutput(t *testing.T, fn func()) (out, errOut string) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	oldStdout, oldStderr := stdout, stderr
	stdout, stderr = &outBuf, &errBuf
	defer func() { stdout, stderr = oldStdout, oldStderr }()

	fn()
	return outBuf.String(), errBuf.String()
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	_, errOut := captureOutput(t, fn)
	return errOut
}

func TestEmitIsGatedByDebugMode(t *testing.T) {
	EnableStructuredLogging()
	defer EnableStructuredLogging()
	SetDebug(false)
	defer SetDebug(false)
	prevNow := traceNow
	traceNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { traceNow = prevNow }()

	output := captureStderr(t, func() {
		Emit(LevelDebug, Trace{Component: "store", Action: "append", Status: "skipped"})
	})
	assert.Empty(t, output)

	SetDebug(true)
	output = captureStderr(t, func() {
		Emit(LevelDebug, Trace{
			Component: "store",
			Action:    "append",
			Status:    "failed",
			Server:    "Libera",
			Channel:   "#go-nuts",
			Err:       errors.New("boom"),
			Fields:    map[string]interface{}{"lines": 3},
		})
	})

	assert.Contains(t, output, `"timestamp":"2026-01-02T03:04:05Z"`)
	assert.Contains(t, output, `"level":"debug"`)
	assert.Contains(t, output, `"server":"Libera"`)
	assert.Contains(t, output, `"channel":"#go-nuts"`)
	assert.Contains(t, output, `"error":"boom"`)
	assert.Contains(t, output, `"lines":3`)
}

func TestTraceOmitsEmptyBuffer(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	output := captureStderr(t, func() {
		TraceInfo(Trace{Component: "startup", Action: "main", Status: "started"})
	})

	assert.Contains(t, output, `"level":"info"`)
	assert.NotContains(t, output, `"server"`)
	assert.NotContains(t, output, `"error"`)
}

func TestStructuredLoggingCanBeDisabled(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)
	DisableStructuredLogging()
	defer EnableStructuredLogging()

	output := captureStderr(t, func() {
		TraceError(Trace{Component: "tui", Action: "run", Status: "failed"})
	})

	assert.Empty(t, output)
}
