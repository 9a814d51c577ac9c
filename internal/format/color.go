package format

import (
	"fmt"
	"hash/fnv"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/mattn/go-runewidth"
)

// nickPalette holds the ANSI colors nicks are hashed onto.
var nickPalette = []lipgloss.Color{"1", "2", "3", "4", "5", "6", "9", "10", "11", "12", "13", "14"}

// ColorFormatter styles output with lipgloss. Colors are only emitted when
// the destination writer is a color-capable terminal.
type ColorFormatter struct{}

// NewColorFormatter creates a new ColorFormatter.
func NewColorFormatter() *ColorFormatter {
	return &ColorFormatter{}
}

type colorStyles struct {
	header  lipgloss.Style
	draft   lipgloss.Style
	notice  lipgloss.Style
	current lipgloss.Style
	dim     lipgloss.Style
	r       *lipgloss.Renderer
}

func newColorStyles(w io.Writer) colorStyles {
	r := lipgloss.NewRenderer(w)
	return colorStyles{
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		draft:   r.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		notice:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		current: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("241")),
		r:       r,
	}
}

// nickStyle returns the stable color for nick. Client-authored nicks
// share the notice style.
func (s colorStyles) nickStyle(nick string) lipgloss.Style {
	switch nick {
	case domain.NoticeNick, domain.WelcomeNick, domain.ErrorNick:
		return s.notice
	}
	return s.r.NewStyle().Foreground(NickColor(nick))
}

// NickColor returns the color nick is always drawn in.
func NickColor(nick string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(nick))
	return nickPalette[h.Sum32()%uint32(len(nickPalette))]
}

// FormatBuffer writes the buffer with nicks right-aligned in a column.
func (f *ColorFormatter) FormatBuffer(pair domain.NamePair, buf domain.Buffer, w io.Writer) error {
	st := newColorStyles(w)
	if _, err := fmt.Fprintln(w, st.header.Render(Selection(pair))); err != nil {
		return err
	}

	width := nickColumnWidth(buf.Lines)
	for _, line := range buf.Lines {
		nick := runewidth.FillLeft(line.Nick, width)
		if _, err := fmt.Fprintf(w, "%s %s\n", st.nickStyle(line.Nick).Render("<"+nick+">"), line.Text); err != nil {
			return err
		}
	}
	if buf.NewLine != "" {
		if _, err := fmt.Fprintln(w, st.draft.Render("draft: "+buf.NewLine)); err != nil {
			return err
		}
	}
	return nil
}

// FormatServers writes the server tree with the current buffer highlighted.
func (f *ColorFormatter) FormatServers(m domain.Model, w io.Writer) error {
	st := newColorStyles(w)
	current := m.CurrentSelection()
	for _, server := range m.Servers() {
		header := st.header.Render(string(server)) + " " + st.dim.Render(m.GetNick(server))
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		for _, entry := range serverEntries(m, server) {
			name := padRight(string(entry.pair.Channel), entry.width)
			row := otherMarker + " " + name
			if entry.pair == current {
				row = st.current.Render(currentMarker + " " + name)
			}
			if _, err := fmt.Fprintln(w, row+st.dim.Render(countSuffix(entry.lines))); err != nil {
				return err
			}
		}
	}
	return nil
}
