package errors

import (
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOutput struct {
	mu    sync.Mutex
	calls []string
	// onError runs inside Error, to exercise re-entrant reporting.
	onError func()
}

func (r *recordingOutput) record(kind string, msgs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, kind+":"+msgs[0])
}

func (r *recordingOutput) Error(msgs ...string) {
	r.record("error", msgs)
	if r.onError != nil {
		fn := r.onError
		r.onError = nil
		fn()
	}
}
func (r *recordingOutput) Warning(msgs ...string) { r.record("warning", msgs) }
func (r *recordingOutput) Info(msgs ...string)    { r.record("info", msgs) }
func (r *recordingOutput) Success(msgs ...string) { r.record("success", msgs) }

func TestCLIHandlerForwards(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	h.Error("e")
	h.Warning("w")
	h.Info("i")
	h.Success("s")

	assert.Equal(t, []string{"error:e", "warning:w", "info:i", "success:s"}, out.calls)
}

func TestCLIHandlerNestedError(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)
	out.onError = func() { h.Error("nested") }

	h.Error("outer")

	assert.Equal(t, []string{"error:outer", "error:nested"}, out.calls)
	assert.False(t, h.inHandling)
}

func TestNewDefaultCLIHandler(t *testing.T) {
	h := NewDefaultCLIHandler()
	require.NotNil(t, h)
	assert.IsType(t, colorsOutput{}, h.out)
}

func TestReport(t *testing.T) {
	h := NewTUIHandler(nil)

	assert.False(t, Report(h, nil))
	assert.True(t, Report(h, stderrors.New("unknown server")))

	msg, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "unknown server", msg.Text)
	assert.Equal(t, MessageTypeError, msg.Type)
}

func TestTUIHandlerHistory(t *testing.T) {
	var seen []Message
	h := NewTUIHandler(func(m Message) { seen = append(seen, m) })
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	_, ok := h.Latest()
	assert.False(t, ok)

	h.Info("joined #go-nuts")
	h.Warning("draft discarded")
	h.Success("saved")

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, Message{Text: "saved", Type: MessageTypeSuccess, Timestamp: fixed}, latest)
	assert.Len(t, h.All(), 3)
	assert.Len(t, seen, 3)

	h.Clear()
	assert.Empty(t, h.All())
}

func TestTUIHandlerLimit(t *testing.T) {
	h := NewTUIHandler(nil)
	h.limit = 2

	h.Error("a")
	h.Error("b")
	h.Error("c")

	all := h.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Text)
	assert.Equal(t, "c", all[1].Text)
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "error", MessageTypeError.String())
	assert.Equal(t, "warning", MessageTypeWarning.String())
	assert.Equal(t, "info", MessageTypeInfo.String())
	assert.Equal(t, "success", MessageTypeSuccess.String())
}
