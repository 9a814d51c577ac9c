package domain

import (
	"fmt"
	"strings"
)

// ValidateChannelName rejects names that cannot key a channel buffer.
func ValidateChannelName(channel ChannelName) error {
	if strings.TrimSpace(string(channel)) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidChannelName)
	}
	if channel.IsServerBuffer() {
		return fmt.Errorf("%w: %q", ErrReservedChannelName, channel)
	}
	return nil
}

// ConnectServer returns a snapshot with server added and its initial
// server buffer. Connecting an already connected server is a no-op.
func (m Model) ConnectServer(server ServerName, nick string) (Model, error) {
	if strings.TrimSpace(string(server)) == "" {
		return m, ErrInvalidServerName
	}
	if m.HasServer(server) {
		return m, nil
	}
	out := m.clone()
	out.ServerInfoMap[server] = NewServerInfo(server, nick)
	return out, nil
}

// DisconnectServer returns a snapshot without server and its channel
// buffers. The selection is kept even when it now dangles.
func (m Model) DisconnectServer(server ServerName) (Model, error) {
	if !m.HasServer(server) {
		return m, fmt.Errorf("%w: %s", ErrUnknownServer, server)
	}
	out := m.clone()
	delete(out.ServerInfoMap, server)
	for key := range out.BufferMap {
		if key.Server == server {
			delete(out.BufferMap, key)
		}
	}
	return out, nil
}

// JoinChannel returns a snapshot with an empty buffer for channel on
// server, creating it only if absent, and clears the server's
// "channel to join" draft.
func (m Model) JoinChannel(server ServerName, channel ChannelName) (Model, error) {
	if err := ValidateChannelName(channel); err != nil {
		return m, err
	}
	info, ok := m.ServerInfoMap[server]
	if !ok {
		return m, fmt.Errorf("%w: %s", ErrUnknownServer, server)
	}
	out := m.clone()
	key := NamePair{Server: server, Channel: channel}
	if _, exists := out.BufferMap[key]; !exists {
		out.BufferMap[key] = NewBuffer()
	}
	info.NewChannelName = ""
	out.ServerInfoMap[server] = info
	return out, nil
}

// PartChannel returns a snapshot without the buffer of channel on server.
func (m Model) PartChannel(server ServerName, channel ChannelName) (Model, error) {
	key := NamePair{Server: server, Channel: channel}
	if _, ok := m.BufferMap[key]; !ok {
		return m, fmt.Errorf("%w: %s/%s", ErrUnknownChannel, server, channel)
	}
	out := m.clone()
	delete(out.BufferMap, key)
	return out, nil
}

// AppendLine returns a snapshot with line appended to the buffer selected
// by pair. See AppendLineLimit.
func (m Model) AppendLine(pair NamePair, line Line) (Model, error) {
	return m.AppendLineLimit(pair, line, 0)
}

// AppendLineLimit appends line to the server buffer when pair selects it,
// otherwise to the channel buffer, which is created if missing. A positive
// limit caps the buffer length by dropping the oldest lines.
func (m Model) AppendLineLimit(pair NamePair, line Line, limit int) (Model, error) {
	info, ok := m.ServerInfoMap[pair.Server]
	if !ok {
		return m, fmt.Errorf("%w: %s", ErrUnknownServer, pair.Server)
	}
	out := m.clone()
	if pair.IsServerBuffer() {
		info.ServerBuffer = info.ServerBuffer.withLine(line, limit)
		out.ServerInfoMap[pair.Server] = info
		return out, nil
	}
	if err := ValidateChannelName(pair.Channel); err != nil {
		return m, err
	}
	buf, exists := out.BufferMap[pair]
	if !exists {
		buf = NewBuffer()
	}
	out.BufferMap[pair] = buf.withLine(line, limit)
	return out, nil
}

// SetDraft returns a snapshot with the unsent draft of the selected buffer
// replaced by text.
func (m Model) SetDraft(pair NamePair, text string) (Model, error) {
	info, ok := m.ServerInfoMap[pair.Server]
	if !ok {
		return m, fmt.Errorf("%w: %s", ErrUnknownServer, pair.Server)
	}
	out := m.clone()
	if pair.IsServerBuffer() {
		info.ServerBuffer = info.ServerBuffer.withDraft(text)
		out.ServerInfoMap[pair.Server] = info
		return out, nil
	}
	buf, exists := out.BufferMap[pair]
	if !exists {
		return m, fmt.Errorf("%w: %s/%s", ErrUnknownChannel, pair.Server, pair.Channel)
	}
	out.BufferMap[pair] = buf.withDraft(text)
	return out, nil
}

// SetNewChannelName returns a snapshot with the "channel to join" draft of
// server replaced by text.
func (m Model) SetNewChannelName(server ServerName, text string) (Model, error) {
	info, ok := m.ServerInfoMap[server]
	if !ok {
		return m, fmt.Errorf("%w: %s", ErrUnknownServer, server)
	}
	out := m.clone()
	info.NewChannelName = text
	out.ServerInfoMap[server] = info
	return out, nil
}

// SetNick returns a snapshot with the user's nick on server replaced.
func (m Model) SetNick(server ServerName, nick string) (Model, error) {
	info, ok := m.ServerInfoMap[server]
	if !ok {
		return m, fmt.Errorf("%w: %s", ErrUnknownServer, server)
	}
	if strings.TrimSpace(nick) == "" {
		return m, fmt.Errorf("invalid nick: %q", nick)
	}
	out := m.clone()
	info.Nick = nick
	out.ServerInfoMap[server] = info
	return out, nil
}

// Select returns a snapshot with the selection moved to (server, channel).
// The target does not need to exist.
func (m Model) Select(server ServerName, channel ChannelName) Model {
	out := m
	out.CurrentServerName = server
	out.CurrentChannelName = channel
	return out
}

// SelectPair is Select for a NamePair.
func (m Model) SelectPair(pair NamePair) Model {
	return m.Select(pair.Server, pair.Channel)
}

// SelectOffset moves the selection by delta positions through Selections,
// wrapping around. A dangling selection moves to the first buffer.
func (m Model) SelectOffset(delta int) Model {
	all := m.Selections()
	if len(all) == 0 {
		return m
	}
	current := m.CurrentSelection()
	idx := -1
	for i, pair := range all {
		if pair == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return m.SelectPair(all[0])
	}
	n := len(all)
	next := ((idx+delta)%n + n) % n
	return m.SelectPair(all[next])
}
