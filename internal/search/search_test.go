package search

import (
	"testing"

	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	robLine = domain.Line{Nick: "rob", Text: "Don't communicate by sharing memory."}
	kenLine = domain.Line{Nick: "ken", Text: "Share memory by communicating."}
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.CaseInsensitive)
	assert.Equal(t, []string{FieldText, FieldNick}, opts.Fields)

	WithCaseInsensitive(true)(&opts)
	WithFields([]string{FieldNick})(&opts)
	assert.True(t, opts.CaseInsensitive)
	assert.Equal(t, []string{FieldNick}, opts.Fields)
}

func TestSubstringProvider(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		line  domain.Line
		query string
		want  bool
	}{
		{"empty query", nil, robLine, "", true},
		{"text match", nil, robLine, "sharing", true},
		{"nick match", nil, kenLine, "ken", true},
		{"case sensitive miss", nil, kenLine, "share memory", false},
		{"case insensitive hit", []Option{WithCaseInsensitive(true)}, kenLine, "SHARE memory", true},
		{"field restricted", []Option{WithFields([]string{FieldText})}, kenLine, "ken", false},
		{"no match", nil, robLine, "channels", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSubstringProvider(tt.opts...)
			assert.Equal(t, tt.want, p.Match(tt.line, tt.query))
		})
	}
}

func TestRegexProvider(t *testing.T) {
	p := NewRegexProvider()
	assert.True(t, p.Match(robLine, `^Don't`))
	assert.False(t, p.Match(kenLine, `^share`))
	assert.False(t, p.Match(kenLine, `([`), "invalid pattern matches nothing")
	assert.Equal(t, "regex", p.Name())

	ci := NewRegexProvider(WithCaseInsensitive(true)).(*RegexProvider)
	assert.True(t, ci.Match(kenLine, `^share`))
	_, err := ci.Compile(`([`)
	assert.Error(t, err)

	first, err := ci.Compile(`mem.ry`)
	require.NoError(t, err)
	second, err := ci.Compile(`mem.ry`)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestTokenProvider(t *testing.T) {
	p := NewTokenProvider(WithCaseInsensitive(true))

	assert.True(t, p.Match(robLine, ""))
	assert.True(t, p.Match(robLine, "memory sharing"))
	assert.False(t, p.Match(robLine, "memory channels"))
	assert.True(t, p.Match(kenLine, "from:KEN memory"))
	assert.False(t, p.Match(robLine, "from:ken memory"))
	assert.True(t, p.Match(robLine, "from:"), "bare from: is a plain token")
	assert.False(t, p.Match(kenLine, "from:"))
}

func TestNewProvider(t *testing.T) {
	for _, kind := range []Kind{"", KindSubstring, KindRegex, KindToken, "REGEX"} {
		p, err := NewProvider(kind)
		require.NoError(t, err, kind)
		assert.NotEmpty(t, p.Name())
	}
	_, err := NewProvider("fuzzy")
	assert.ErrorContains(t, err, "unknown search mode")
}

func TestModel(t *testing.T) {
	m := domain.DefaultModel()
	p := NewSubstringProvider(WithCaseInsensitive(true))

	matches := Model(m, p, "memory", Scope{}, 0)
	require.Len(t, matches, 2)
	assert.Equal(t, domain.NewNamePair("Libera", "#go-nuts"), matches[0].Pair)
	assert.Equal(t, 0, matches[0].Index)
	assert.Equal(t, kenLine, matches[1].Line)

	welcome := Model(m, p, "welcome", Scope{}, 0)
	require.Len(t, welcome, 3, "server buffers and channels are searched")
	assert.True(t, welcome[0].Pair.IsServerBuffer())

	scoped := Model(m, p, "welcome", Scope{Server: "OFTC"}, 0)
	require.Len(t, scoped, 1)
	assert.Equal(t, domain.ServerName("OFTC"), scoped[0].Pair.Server)

	channel := Model(m, p, "welcome", Scope{Server: "Libera", Channel: "#chatbuf"}, 0)
	require.Len(t, channel, 1)

	limited := Model(m, p, "memory", Scope{}, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, kenLine, limited[0].Line)
}

func TestModelUsesProvider(t *testing.T) {
	p := &MockProvider{}
	p.On("Match", mock.Anything, "q").Return(func(line domain.Line, _ string) bool {
		return line.Nick == "ken"
	})

	matches := Model(domain.DefaultModel(), p, "q", Scope{Channel: "#go-nuts"}, 0)
	require.Len(t, matches, 1)
	assert.Equal(t, kenLine, matches[0].Line)
	p.AssertNumberOfCalls(t, "Match", 3)
}
