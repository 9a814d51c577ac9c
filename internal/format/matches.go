package format

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/search"
	"github.com/mattn/go-runewidth"
)

// FormatMatches writes one "server / channel: <nick> text" line per match.
func (f *PlainFormatter) FormatMatches(matches []search.Match, w io.Writer) error {
	for _, match := range matches {
		if _, err := fmt.Fprintf(w, "%s: %s\n", Selection(match.Pair), match.Line); err != nil {
			return err
		}
	}
	return nil
}

// FormatMatches groups matches under a header per buffer.
func (f *ColorFormatter) FormatMatches(matches []search.Match, w io.Writer) error {
	st := newColorStyles(w)
	lines := make([]domain.Line, len(matches))
	for i, match := range matches {
		lines[i] = match.Line
	}
	width := nickColumnWidth(lines)

	var last domain.NamePair
	for i, match := range matches {
		if i == 0 || match.Pair != last {
			if _, err := fmt.Fprintln(w, st.header.Render(Selection(match.Pair))); err != nil {
				return err
			}
			last = match.Pair
		}
		nick := runewidth.FillLeft(match.Line.Nick, width)
		if _, err := fmt.Fprintf(w, "%s %s\n", st.nickStyle(match.Line.Nick).Render("<"+nick+">"), match.Line.Text); err != nil {
			return err
		}
	}
	return nil
}

type jsonMatch struct {
	Server  domain.ServerName  `json:"server"`
	Channel domain.ChannelName `json:"channel"`
	Index   int                `json:"index"`
	Nick    string             `json:"nick"`
	Text    string             `json:"text"`
}

// FormatMatches writes a JSON array of matches.
func (f *JSONFormatter) FormatMatches(matches []search.Match, w io.Writer) error {
	out := make([]jsonMatch, len(matches))
	for i, match := range matches {
		out[i] = jsonMatch{
			Server:  match.Pair.Server,
			Channel: match.Pair.Channel,
			Index:   match.Index,
			Nick:    match.Line.Nick,
			Text:    match.Line.Text,
		}
	}
	return encode(w, out)
}
