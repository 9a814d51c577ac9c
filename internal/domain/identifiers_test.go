package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		name        string
		input       ChannelName
		wantServer  bool
		wantChannel ChannelName
	}{
		{"sentinel", ServerBufferKey, true, ""},
		{"channel", "#go-nuts", false, "#go-nuts"},
		{"query", "alice", false, "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := ParseSelector(tt.input)
			assert.Equal(t, tt.wantServer, sel.IsServerBuffer())
			channel, ok := sel.Channel()
			assert.Equal(t, !tt.wantServer, ok)
			assert.Equal(t, tt.wantChannel, channel)
			assert.Equal(t, tt.input, sel.ChannelName())
		})
	}
}

func TestBufferSelectorZeroValueIsServerBuffer(t *testing.T) {
	var sel BufferSelector
	assert.True(t, sel.IsServerBuffer())
	assert.Equal(t, ServerBufferKey.String(), sel.String())
}

func TestNamePair(t *testing.T) {
	pair := NewNamePair("S", "Server Buffer")
	assert.True(t, pair.IsServerBuffer())
	assert.True(t, pair.Selector().IsServerBuffer())

	pair = NewNamePair("S", "#a")
	assert.False(t, pair.IsServerBuffer())
	assert.Equal(t, ChannelSelector("#a"), pair.Selector())
}

func TestValidateChannelName(t *testing.T) {
	assert.NoError(t, ValidateChannelName("#a"))
	assert.ErrorIs(t, ValidateChannelName(ServerBufferKey), ErrReservedChannelName)
	assert.ErrorIs(t, ValidateChannelName(""), ErrInvalidChannelName)
}

func TestSentinelConstructors(t *testing.T) {
	errBuf := ErrorBuffer()
	assert.Len(t, errBuf.Lines, 1)
	assert.Equal(t, NoticeNick, errBuf.Lines[0].Nick)
	assert.Contains(t, errBuf.Lines[0].Text, "not in a valid buffer")
	assert.Equal(t, "", errBuf.NewLine)

	welcome := InitialServerBuffer("irc.example.org")
	assert.Equal(t, []Line{{Nick: WelcomeNick, Text: "WELCOME TO irc.example.org SERVER."}}, welcome.Lines)
	assert.Equal(t, "<WELCOME> WELCOME TO irc.example.org SERVER.", welcome.Lines[0].String())
}

func TestDefaultModelIsFresh(t *testing.T) {
	a := DefaultModel()
	b := DefaultModel()

	delete(a.ServerInfoMap, "Libera")

	assert.True(t, b.HasServer("Libera"))
	assert.NoError(t, b.Validate())
}

func TestModelFromServers(t *testing.T) {
	m := ModelFromServers("me", []string{"b", "", "a", "b"})

	assert.Equal(t, []ServerName{"a", "b"}, m.Servers())
	assert.Equal(t, NamePair{Server: "b", Channel: ServerBufferKey}, m.CurrentSelection())
	assert.Equal(t, "WELCOME TO b SERVER.", m.CurrentBuffer().Lines[0].Text)
	assert.Equal(t, "me", m.CurrentNick())
}
