package domain

import (
	"fmt"
	"maps"
	"slices"
)

// Model is an immutable snapshot of the client state.
//
// Snapshots are replaced, never edited: every transition in update.go
// returns a new Model and leaves the receiver and its maps untouched, so a
// Model can be shared with concurrent readers.
type Model struct {
	// BufferMap holds channel buffers. It never contains server buffers.
	BufferMap map[NamePair]Buffer
	// ServerInfoMap holds one entry per connected server.
	ServerInfoMap map[ServerName]ServerInfo
	// CurrentServerName and CurrentChannelName select the displayed buffer.
	// The selection may reference entries that do not exist.
	CurrentServerName  ServerName
	CurrentChannelName ChannelName
}

// NewModel returns an empty snapshot with no selection.
func NewModel() Model {
	return Model{
		BufferMap:     make(map[NamePair]Buffer),
		ServerInfoMap: make(map[ServerName]ServerInfo),
	}
}

// clone returns a shallow copy with its own maps. Buffers and lines are
// shared; they are never modified in place.
func (m Model) clone() Model {
	out := m
	out.BufferMap = maps.Clone(m.BufferMap)
	if out.BufferMap == nil {
		out.BufferMap = make(map[NamePair]Buffer)
	}
	out.ServerInfoMap = maps.Clone(m.ServerInfoMap)
	if out.ServerInfoMap == nil {
		out.ServerInfoMap = make(map[ServerName]ServerInfo)
	}
	return out
}

// Servers returns the connected server names, sorted.
func (m Model) Servers() []ServerName {
	servers := slices.Collect(maps.Keys(m.ServerInfoMap))
	slices.Sort(servers)
	return servers
}

// Channels returns the channels with a buffer on server, sorted.
func (m Model) Channels(server ServerName) []ChannelName {
	var channels []ChannelName
	for key := range m.BufferMap {
		if key.Server == server {
			channels = append(channels, key.Channel)
		}
	}
	slices.Sort(channels)
	return channels
}

// Selections returns every selectable buffer in display order: for each
// server, its server buffer followed by its channels.
func (m Model) Selections() []NamePair {
	var out []NamePair
	for _, server := range m.Servers() {
		out = append(out, NamePair{Server: server, Channel: ServerBufferKey})
		for _, channel := range m.Channels(server) {
			out = append(out, NamePair{Server: server, Channel: channel})
		}
	}
	return out
}

// HasServer reports whether server is connected.
func (m Model) HasServer(server ServerName) bool {
	_, ok := m.ServerInfoMap[server]
	return ok
}

// HasBuffer reports whether the pair resolves to a stored buffer, either a
// channel buffer or the server buffer of a connected server.
func (m Model) HasBuffer(pair NamePair) bool {
	if pair.IsServerBuffer() {
		return m.HasServer(pair.Server)
	}
	_, ok := m.BufferMap[pair]
	return ok
}

// Validate checks the structural invariants of the snapshot: no channel
// buffer is keyed by the server buffer sentinel, and every channel buffer
// belongs to a connected server. A dangling selection is allowed.
func (m Model) Validate() error {
	for key := range m.BufferMap {
		if key.Channel.IsServerBuffer() {
			return fmt.Errorf("%w: buffer key %s/%q", ErrReservedChannelName, key.Server, key.Channel)
		}
		if key.Channel == "" {
			return fmt.Errorf("%w: buffer key %s has an empty channel", ErrInvalidChannelName, key.Server)
		}
		if !m.HasServer(key.Server) {
			return fmt.Errorf("%w: buffer %s/%s", ErrUnknownServer, key.Server, key.Channel)
		}
	}
	return nil
}
