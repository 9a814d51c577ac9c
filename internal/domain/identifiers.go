// Package domain provides the chat state model: servers, channel buffers,
// drafts and the current selection, plus total accessors that resolve a
// selection into concrete data.
package domain

// ServerName identifies a connected server.
type ServerName string

// ChannelName identifies a channel on a server. The reserved value
// ServerBufferKey selects the server's own buffer instead of a channel.
type ChannelName string

// ServerBufferKey is the reserved channel name that selects a server buffer.
// It must be identical on the read and write sides.
const ServerBufferKey ChannelName = "Server Buffer"

// String returns the server name as a plain string.
func (s ServerName) String() string {
	return string(s)
}

// String returns the channel name as a plain string.
func (c ChannelName) String() string {
	return string(c)
}

// IsServerBuffer reports whether c is the server buffer sentinel.
func (c ChannelName) IsServerBuffer() bool {
	return c == ServerBufferKey
}

// NamePair is the composite key of a channel buffer.
//
// When used as a BufferMap key, Channel is never ServerBufferKey: server
// buffers live in ServerInfo, not in the channel map.
type NamePair struct {
	Server  ServerName
	Channel ChannelName
}

// NewNamePair builds a NamePair from plain strings.
func NewNamePair(server, channel string) NamePair {
	return NamePair{Server: ServerName(server), Channel: ChannelName(channel)}
}

// IsServerBuffer reports whether the pair selects the server buffer.
func (p NamePair) IsServerBuffer() bool {
	return p.Channel.IsServerBuffer()
}

// Selector returns the tagged form of the pair's channel component.
func (p NamePair) Selector() BufferSelector {
	return ParseSelector(p.Channel)
}

// selectorKind tags a BufferSelector variant.
type selectorKind int

const (
	selectServerBuffer selectorKind = iota
	selectChannel
)

// BufferSelector names a buffer within one server: either a channel or the
// server buffer. The zero value selects the server buffer.
type BufferSelector struct {
	kind    selectorKind
	channel ChannelName
}

// ChannelSelector selects the buffer of a regular channel.
func ChannelSelector(name ChannelName) BufferSelector {
	return BufferSelector{kind: selectChannel, channel: name}
}

// ServerBufferSelector selects the server buffer.
func ServerBufferSelector() BufferSelector {
	return BufferSelector{kind: selectServerBuffer}
}

// ParseSelector maps a channel name, possibly the sentinel, to a selector.
func ParseSelector(name ChannelName) BufferSelector {
	if name.IsServerBuffer() {
		return ServerBufferSelector()
	}
	return ChannelSelector(name)
}

// IsServerBuffer reports whether the selector names the server buffer.
func (s BufferSelector) IsServerBuffer() bool {
	return s.kind == selectServerBuffer
}

// Channel returns the selected channel and true, or "" and false for the
// server buffer.
func (s BufferSelector) Channel() (ChannelName, bool) {
	if s.kind != selectChannel {
		return "", false
	}
	return s.channel, true
}

// ChannelName returns the selector in its string-encoded form, with the
// server buffer encoded as ServerBufferKey.
func (s BufferSelector) ChannelName() ChannelName {
	if s.kind == selectServerBuffer {
		return ServerBufferKey
	}
	return s.channel
}

// String returns a human readable label.
func (s BufferSelector) String() string {
	return s.ChannelName().String()
}
