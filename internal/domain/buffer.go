package domain

import "fmt"

// Nicks used for lines authored by the client itself.
const (
	NoticeNick  = "NOTICE"
	WelcomeNick = "WELCOME"
	ErrorNick   = "ERROR"
)

// errorBufferText is shown when a selection does not resolve to a buffer.
const errorBufferText = "You are not in a valid buffer."

// Line is one displayed chat message.
type Line struct {
	Nick string `json:"nick"`
	Text string `json:"text"`
}

// String renders the line as "<nick> text".
func (l Line) String() string {
	return fmt.Sprintf("<%s> %s", l.Nick, l.Text)
}

// Buffer holds the scrollback of one channel or server buffer, oldest line
// first, together with the unsent draft typed into it.
type Buffer struct {
	Lines   []Line `json:"lines"`
	NewLine string `json:"new_line"`
}

// NewBuffer returns an empty buffer.
func NewBuffer() Buffer {
	return Buffer{Lines: []Line{}}
}

// ErrorBuffer returns the fallback buffer used whenever a lookup fails.
func ErrorBuffer() Buffer {
	return Buffer{
		Lines:   []Line{{Nick: NoticeNick, Text: errorBufferText}},
		NewLine: "",
	}
}

// InitialServerBuffer returns the buffer of a freshly connected server.
func InitialServerBuffer(server ServerName) Buffer {
	return Buffer{
		Lines:   []Line{{Nick: WelcomeNick, Text: fmt.Sprintf("WELCOME TO %s SERVER.", server)}},
		NewLine: "",
	}
}

// Len returns the number of lines.
func (b Buffer) Len() int {
	return len(b.Lines)
}

// Last returns the newest line and true, or a zero Line and false when empty.
func (b Buffer) Last() (Line, bool) {
	if len(b.Lines) == 0 {
		return Line{}, false
	}
	return b.Lines[len(b.Lines)-1], true
}

// Equal reports whether two buffers hold the same lines and draft.
func (b Buffer) Equal(other Buffer) bool {
	if b.NewLine != other.NewLine || len(b.Lines) != len(other.Lines) {
		return false
	}
	for i := range b.Lines {
		if b.Lines[i] != other.Lines[i] {
			return false
		}
	}
	return true
}

// withLine returns a copy of b with line appended. When limit is positive
// the oldest lines are dropped so at most limit remain.
func (b Buffer) withLine(line Line, limit int) Buffer {
	lines := make([]Line, 0, len(b.Lines)+1)
	lines = append(lines, b.Lines...)
	lines = append(lines, line)
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return Buffer{Lines: lines, NewLine: b.NewLine}
}

// withDraft returns a copy of b with the draft replaced.
func (b Buffer) withDraft(text string) Buffer {
	return Buffer{Lines: b.Lines, NewLine: text}
}

// ServerInfo is the per-server state: the user's nick, the draft of the
// "channel to join" input and the server's own buffer.
type ServerInfo struct {
	Nick           string `json:"nick"`
	NewChannelName string `json:"new_channel_name"`
	ServerBuffer   Buffer `json:"server_buffer"`
}

// NewServerInfo returns the state of a freshly connected server.
func NewServerInfo(server ServerName, nick string) ServerInfo {
	return ServerInfo{
		Nick:           nick,
		NewChannelName: "",
		ServerBuffer:   InitialServerBuffer(server),
	}
}

// errorServerInfo is returned for servers missing from the snapshot.
func errorServerInfo() ServerInfo {
	return ServerInfo{
		Nick:           ErrorNick,
		NewChannelName: "",
		ServerBuffer:   ErrorBuffer(),
	}
}
