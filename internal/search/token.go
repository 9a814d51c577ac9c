package search

import (
	"strings"

	"github.com/cristianoliveira/chatbuf/internal/domain"
)

const fromPrefix = "from:"

// TokenProvider splits the query on whitespace. Every token must match
// at least one field. A "from:<nick>" token instead requires the line's
// nick to equal <nick>.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{opts: applyOptions(opts)}
}

// Match returns true if the line passes every from: filter and every
// text token is found in some field.
func (p *TokenProvider) Match(line domain.Line, query string) bool {
	var tokens []string
	for _, token := range strings.Fields(query) {
		if nick, ok := strings.CutPrefix(token, fromPrefix); ok && nick != "" {
			if !p.equal(line.Nick, nick) {
				return false
			}
			continue
		}
		tokens = append(tokens, token)
	}

	values := fieldValues(line, p.opts.Fields)
	for _, token := range tokens {
		if !p.containedIn(values, token) {
			return false
		}
	}
	return true
}

func (p *TokenProvider) equal(a, b string) bool {
	if p.opts.CaseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (p *TokenProvider) containedIn(values []string, token string) bool {
	if p.opts.CaseInsensitive {
		token = strings.ToLower(token)
	}
	for _, value := range values {
		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return string(KindToken)
}
