// Package format renders chat buffers and server listings for the CLI.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/search"
)

// Formatter writes buffers and server listings to a writer.
type Formatter interface {
	// FormatBuffer writes the buffer selected by pair.
	FormatBuffer(pair domain.NamePair, buf domain.Buffer, w io.Writer) error
	// FormatServers writes every server with its buffers, marking the
	// current selection.
	FormatServers(m domain.Model, w io.Writer) error
	// FormatMatches writes search results.
	FormatMatches(matches []search.Match, w io.Writer) error
}

// FormatterType names an output style.
type FormatterType string

const (
	// FormatterTypePlain writes "<nick> text" lines without styling.
	FormatterTypePlain FormatterType = "plain"
	// FormatterTypeColor styles nicks and headers with lipgloss.
	FormatterTypeColor FormatterType = "color"
	// FormatterTypeJSON writes one JSON document per call.
	FormatterTypeJSON FormatterType = "json"
)

// FormatterTypes lists the supported types.
var FormatterTypes = []FormatterType{FormatterTypePlain, FormatterTypeColor, FormatterTypeJSON}

// ParseFormatterType parses a --format value, case-insensitively.
func ParseFormatterType(s string) (FormatterType, error) {
	t := FormatterType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FormatterTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid format %q: must be one of plain, color, json", s)
}

// NewFormatter creates a formatter of the given type. Unknown types fall
// back to plain.
func NewFormatter(t FormatterType) Formatter {
	switch t {
	case FormatterTypeColor:
		return NewColorFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewPlainFormatter()
	}
}

// Selection renders a selection as "server / channel".
func Selection(pair domain.NamePair) string {
	return fmt.Sprintf("%s / %s", pair.Server, pair.Channel)
}
