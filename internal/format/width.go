package format

import (
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/mattn/go-runewidth"
)

// serverEntry is one buffer row of a server listing.
type serverEntry struct {
	pair  domain.NamePair
	lines int
	// width is the display width of the widest buffer name on the server.
	width int
}

// serverEntries lists the server buffer followed by the channels of server.
func serverEntries(m domain.Model, server domain.ServerName) []serverEntry {
	pairs := []domain.NamePair{{Server: server, Channel: domain.ServerBufferKey}}
	for _, channel := range m.Channels(server) {
		pairs = append(pairs, domain.NamePair{Server: server, Channel: channel})
	}

	width := 0
	for _, p := range pairs {
		width = max(width, runewidth.StringWidth(string(p.Channel)))
	}

	entries := make([]serverEntry, len(pairs))
	for i, p := range pairs {
		entries[i] = serverEntry{pair: p, lines: m.GetBuffer(p).Len(), width: width}
	}
	return entries
}

// padRight pads s with spaces to display width w. Wide runes count twice.
func padRight(s string, w int) string {
	return runewidth.FillRight(s, w)
}

// nickColumnWidth is the display width of the widest nick in lines.
func nickColumnWidth(lines []domain.Line) int {
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l.Nick))
	}
	return width
}
