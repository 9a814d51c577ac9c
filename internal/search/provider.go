// Package search matches chat lines against queries. Several strategies
// (substring, regex, token) share the Provider interface so the CLI and
// the TUI filter lines the same way.
package search

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/chatbuf/internal/domain"
)

// Field names a searchable part of a line.
const (
	FieldText = "text"
	FieldNick = "nick"
)

// Provider matches a single line against a query.
type Provider interface {
	// Match returns true if the line matches the query. An empty query
	// matches every line.
	Match(line domain.Line, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool
	Fields          []string
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: false,
		Fields:          []string{FieldText, FieldNick},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValues returns the values of the configured fields of line.
func fieldValues(line domain.Line, fields []string) []string {
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		switch field {
		case FieldText:
			values = append(values, line.Text)
		case FieldNick:
			values = append(values, line.Nick)
		}
	}
	return values
}

// Kind selects a provider by name.
type Kind string

const (
	KindSubstring Kind = "substring"
	KindRegex     Kind = "regex"
	KindToken     Kind = "token"
)

// NewProvider returns the provider for kind.
func NewProvider(kind Kind, opts ...Option) (Provider, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case KindSubstring, "":
		return NewSubstringProvider(opts...), nil
	case KindRegex:
		return NewRegexProvider(opts...), nil
	case KindToken:
		return NewTokenProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search mode %q (valid: substring, regex, token)", kind)
	}
}
