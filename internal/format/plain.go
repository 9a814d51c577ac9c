package format

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/chatbuf/internal/domain"
)

const (
	currentMarker = ">"
	otherMarker   = " "
)

// PlainFormatter writes unstyled text.
type PlainFormatter struct{}

// NewPlainFormatter creates a new PlainFormatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// FormatBuffer writes a header, one "<nick> text" line per message and
// the draft, if any.
func (f *PlainFormatter) FormatBuffer(pair domain.NamePair, buf domain.Buffer, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "== %s ==\n", Selection(pair)); err != nil {
		return err
	}
	for _, line := range buf.Lines {
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	if buf.NewLine != "" {
		if _, err := fmt.Fprintf(w, "[draft] %s\n", buf.NewLine); err != nil {
			return err
		}
	}
	return nil
}

// FormatServers writes one block per server.
func (f *PlainFormatter) FormatServers(m domain.Model, w io.Writer) error {
	current := m.CurrentSelection()
	for _, server := range m.Servers() {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", server, m.GetNick(server)); err != nil {
			return err
		}
		for _, entry := range serverEntries(m, server) {
			marker := otherMarker
			if entry.pair == current {
				marker = currentMarker
			}
			if _, err := fmt.Fprintf(w, "%s %s%s\n", marker, padRight(string(entry.pair.Channel), entry.width), countSuffix(entry.lines)); err != nil {
				return err
			}
		}
	}
	return nil
}

func countSuffix(n int) string {
	return fmt.Sprintf("  %d", n)
}
