package domain

// DefaultModel returns a fresh sample snapshot with two servers, a few
// channels and the selection on the first channel. Each call builds new
// maps, so callers may freely derive snapshots from it.
func DefaultModel() Model {
	const (
		libera ServerName = "Libera"
		oftc   ServerName = "OFTC"
	)

	m := NewModel()
	m.ServerInfoMap[libera] = NewServerInfo(libera, "gopher")
	m.ServerInfoMap[oftc] = ServerInfo{
		Nick:           "gopher_",
		NewChannelName: "#debian",
		ServerBuffer:   InitialServerBuffer(oftc),
	}

	m.BufferMap[NamePair{Server: libera, Channel: "#go-nuts"}] = Buffer{
		Lines: []Line{
			{Nick: "rob", Text: "Don't communicate by sharing memory."},
			{Nick: "ken", Text: "Share memory by communicating."},
			{Nick: "gopher", Text: "https://go.dev/doc/effective_go"},
		},
		NewLine: "",
	}
	m.BufferMap[NamePair{Server: libera, Channel: "#chatbuf"}] = Buffer{
		Lines:   []Line{{Nick: "ChanServ", Text: "Welcome to #chatbuf."}},
		NewLine: "hello everyone",
	}
	m.BufferMap[NamePair{Server: oftc, Channel: "#oftc"}] = NewBuffer()

	m.CurrentServerName = libera
	m.CurrentChannelName = "#go-nuts"
	return m
}

// ModelFromServers returns a snapshot with one entry per server, each with
// its initial server buffer, and the selection on the first server's buffer.
func ModelFromServers(nick string, servers []string) Model {
	m := NewModel()
	for _, s := range servers {
		name := ServerName(s)
		if name == "" || m.HasServer(name) {
			continue
		}
		m.ServerInfoMap[name] = NewServerInfo(name, nick)
		if m.CurrentServerName == "" {
			m.CurrentServerName = name
			m.CurrentChannelName = ServerBufferKey
		}
	}
	return m
}
