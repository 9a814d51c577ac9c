package colors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	entries []string
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.entries = append(r.entries, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.entries = append(r.entries, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.entries = append(r.entries, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.entries = append(r.entries, "error:"+msg) }

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("closed") }

func TestConsoleOutput(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(...string)
		toStdout  bool
		wantParts []string
	}{
		{"error", Error, false, []string{"Error:", Red, "something went wrong"}},
		{"warning", Warning, false, []string{"Warning:", Yellow, "something went wrong"}},
		{"success", Success, true, []string{checkmark, Green, "something went wrong"}},
		{"info", Info, true, []string{Blue, "something went wrong"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := captureOutput(t, func() {
				tt.fn("something", "went wrong")
			})
			got := errOut
			if tt.toStdout {
				got = out
			}
			for _, part := range tt.wantParts {
				assert.Contains(t, got, part)
			}
		})
	}
}

func TestDebugOnlyWhenEnabled(t *testing.T) {
	SetDebug(false)
	defer SetDebug(false)

	errOut := captureStderr(t, func() { Debug("hidden") })
	assert.Empty(t, errOut)

	SetDebug(true)
	errOut = captureStderr(t, func() { Debug("shown") })
	assert.Contains(t, errOut, "Debug:")
	assert.Contains(t, errOut, "shown")
}

func TestMessagesAreMirroredToLogger(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	captureOutput(t, func() {
		Error("e")
		Warning("w")
		Info("i")
		Success("s")
	})

	require.Equal(t, []string{"error:e", "warn:w", "info:i", "info:s"}, rec.entries)
}

func TestQuietKeepsOnlyErrors(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)
	SetQuiet(true)
	defer SetQuiet(false)

	out, errOut := captureOutput(t, func() {
		Error("e")
		Warning("w")
		Info("i")
		Success("s")
	})

	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error:")
	assert.NotContains(t, errOut, "Warning:")
	require.Equal(t, []string{"error:e", "warn:w", "info:i", "info:s"}, rec.entries)

	SetDebug(true)
	defer SetDebug(false)
	out, _ = captureOutput(t, func() { Info("debug wins") })
	assert.Contains(t, out, "debug wins")
}

func TestWriteFailureIsReported(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	captureStderr(t, func() {
		stdout = failingWriter{}
		Info("lost")
	})

	assert.Contains(t, rec.entries, "warn:failed to print info message: closed")
}
