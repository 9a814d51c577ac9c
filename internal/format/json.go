package format

import (
	"encoding/json"
	"io"

	"github.com/cristianoliveira/chatbuf/internal/domain"
)

// JSONFormatter writes indented JSON documents.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonBuffer struct {
	Server       domain.ServerName  `json:"server"`
	Channel      domain.ChannelName `json:"channel"`
	ServerBuffer bool               `json:"server_buffer"`
	Lines        []domain.Line      `json:"lines"`
	Draft        string             `json:"draft"`
}

type jsonBufferEntry struct {
	Channel      domain.ChannelName `json:"channel"`
	ServerBuffer bool               `json:"server_buffer"`
	Lines        int                `json:"lines"`
	Current      bool               `json:"current"`
}

type jsonServer struct {
	Name    domain.ServerName `json:"name"`
	Nick    string            `json:"nick"`
	Buffers []jsonBufferEntry `json:"buffers"`
}

// FormatBuffer writes the buffer as a single JSON object.
func (f *JSONFormatter) FormatBuffer(pair domain.NamePair, buf domain.Buffer, w io.Writer) error {
	lines := buf.Lines
	if lines == nil {
		lines = []domain.Line{}
	}
	return encode(w, jsonBuffer{
		Server:       pair.Server,
		Channel:      pair.Channel,
		ServerBuffer: pair.IsServerBuffer(),
		Lines:        lines,
		Draft:        buf.NewLine,
	})
}

// FormatServers writes a JSON array of servers.
func (f *JSONFormatter) FormatServers(m domain.Model, w io.Writer) error {
	current := m.CurrentSelection()
	servers := make([]jsonServer, 0, len(m.ServerInfoMap))
	for _, server := range m.Servers() {
		js := jsonServer{Name: server, Nick: m.GetNick(server)}
		for _, entry := range serverEntries(m, server) {
			js.Buffers = append(js.Buffers, jsonBufferEntry{
				Channel:      entry.pair.Channel,
				ServerBuffer: entry.pair.IsServerBuffer(),
				Lines:        entry.lines,
				Current:      entry.pair == current,
			})
		}
		servers = append(servers, js)
	}
	return encode(w, servers)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
