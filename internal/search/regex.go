package search

import (
	"regexp"
	"sync"

	"github.com/cristianoliveira/chatbuf/internal/domain"
)

// RegexProvider matches if any configured field matches the query as a
// regular expression. Compiled patterns are cached.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns true if any configured field matches the pattern.
// An invalid pattern matches nothing; use Compile to report it.
func (p *RegexProvider) Match(line domain.Line, query string) bool {
	if query == "" {
		return true
	}
	re, err := p.Compile(query)
	if err != nil {
		return false
	}
	for _, value := range fieldValues(line, p.opts.Fields) {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// Compile returns the compiled pattern, using the cache.
func (p *RegexProvider) Compile(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return string(KindRegex)
}
