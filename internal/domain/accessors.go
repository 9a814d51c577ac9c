package domain

// The accessors below are total: they never fail and never panic, whatever
// the snapshot contains. Missing data resolves to ErrorBuffer or to a
// synthetic ServerInfo with the ERROR nick, so a renderer can always show
// something for any selection, including one made mid-update.

// GetServerInfo returns the entry for server, or a synthetic ServerInfo
// with nick ERROR and ErrorBuffer as its server buffer.
func (m Model) GetServerInfo(server ServerName) ServerInfo {
	if info, ok := m.ServerInfoMap[server]; ok {
		return info
	}
	return errorServerInfo()
}

// GetBuffer resolves a (server, channel) pair to a buffer. The server
// buffer sentinel is routed to GetServerBuffer and never looked up in
// BufferMap; any other missing pair yields ErrorBuffer.
func (m Model) GetBuffer(pair NamePair) Buffer {
	if pair.IsServerBuffer() {
		return m.GetServerBuffer(pair.Server)
	}
	if buf, ok := m.BufferMap[pair]; ok {
		return buf
	}
	return ErrorBuffer()
}

// GetBufferBySelector resolves a tagged selector on server.
func (m Model) GetBufferBySelector(server ServerName, sel BufferSelector) Buffer {
	channel, ok := sel.Channel()
	if !ok {
		return m.GetServerBuffer(server)
	}
	if buf, ok := m.BufferMap[NamePair{Server: server, Channel: channel}]; ok {
		return buf
	}
	return ErrorBuffer()
}

// GetServerBuffer returns the server buffer of server, or ErrorBuffer for
// unknown servers.
func (m Model) GetServerBuffer(server ServerName) Buffer {
	return m.GetServerInfo(server).ServerBuffer
}

// GetNick returns the user's nick on server, or ERROR for unknown servers.
func (m Model) GetNick(server ServerName) string {
	return m.GetServerInfo(server).Nick
}

// GetNewChannelName returns the "channel to join" draft for server, or ""
// for unknown servers.
func (m Model) GetNewChannelName(server ServerName) string {
	return m.GetServerInfo(server).NewChannelName
}

// CurrentSelection returns the selection as a pair.
func (m Model) CurrentSelection() NamePair {
	return NamePair{Server: m.CurrentServerName, Channel: m.CurrentChannelName}
}

// CurrentBuffer resolves the current selection.
func (m Model) CurrentBuffer() Buffer {
	return m.GetBuffer(m.CurrentSelection())
}

// CurrentServerInfo resolves the server of the current selection.
func (m Model) CurrentServerInfo() ServerInfo {
	return m.GetServerInfo(m.CurrentServerName)
}

// CurrentNick returns the user's nick on the selected server.
func (m Model) CurrentNick() string {
	return m.GetNick(m.CurrentServerName)
}
