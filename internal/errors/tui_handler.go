package errors

import (
	"sync"
	"time"
)

// DefaultHistory is how many messages a TUIHandler keeps.
const DefaultHistory = 50

// MessageType classifies a status line message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeSuccess:
		return "success"
	default:
		return "info"
	}
}

// Message is one entry in the TUI message history.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// TUIHandler stores messages for the status line instead of printing,
// since writing to the terminal would corrupt the bubbletea screen.
type TUIHandler struct {
	mu        sync.RWMutex
	messages  []Message
	limit     int
	onMessage func(Message)
	now       func() time.Time
}

// NewTUIHandler returns a handler calling onMessage (if non-nil) for every
// message it records.
func NewTUIHandler(onMessage func(Message)) *TUIHandler {
	return &TUIHandler{
		limit:     DefaultHistory,
		onMessage: onMessage,
		now:       time.Now,
	}
}

func (h *TUIHandler) Error(msg string)   { h.add(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.add(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.add(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.add(msg, MessageTypeSuccess) }

func (h *TUIHandler) add(text string, typ MessageType) {
	h.mu.Lock()
	msg := Message{Text: text, Type: typ, Timestamp: h.now()}
	h.messages = append(h.messages, msg)
	if over := len(h.messages) - h.limit; over > 0 {
		h.messages = append([]Message(nil), h.messages[over:]...)
	}
	cb := h.onMessage
	h.mu.Unlock()

	if cb != nil {
		cb(msg)
	}
}

// Latest returns the most recent message.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// All returns a copy of the retained history, oldest first.
func (h *TUIHandler) All() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Message(nil), h.messages...)
}

// Clear drops the history.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
