// Package errors routes user-facing messages to the CLI or the TUI status line.
package errors

import (
	"sync"

	"github.com/cristianoliveira/chatbuf/internal/colors"
)

// Handler receives user-facing messages. The CLI prints them; the TUI
// keeps them for the status line.
type Handler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console printer behind a CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages to the terminal.
type CLIHandler struct {
	out        ColorOutput
	mu         sync.Mutex
	inHandling bool
}

// NewCLIHandler returns a handler printing through out.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{out: out}
}

// NewDefaultCLIHandler returns a handler printing through the colors package.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(colorsOutput{})
}

// Error prints msg. A nested call made while an error is being printed
// bypasses the guard so it cannot recurse.
func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.out.Error(msg)
		return
	}
	h.inHandling = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()
	h.out.Error(msg)
}

func (h *CLIHandler) Warning(msg string) { h.out.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.out.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.out.Success(msg) }

// Report sends err to h. A nil error is ignored.
func Report(h Handler, err error) bool {
	if err == nil {
		return false
	}
	h.Error(err.Error())
	return true
}

type colorsOutput struct{}

func (colorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (colorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (colorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (colorsOutput) Success(msgs ...string) { colors.Success(msgs...) }
