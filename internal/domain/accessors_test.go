package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleChannelModel() Model {
	m := NewModel()
	m.BufferMap[NewNamePair("S", "#a")] = Buffer{Lines: []Line{}, NewLine: ""}
	return m
}

func TestGetBuffer_ExistingChannel(t *testing.T) {
	m := singleChannelModel()

	got := m.GetBuffer(NewNamePair("S", "#a"))

	assert.True(t, got.Equal(Buffer{Lines: []Line{}, NewLine: ""}))
	assert.Empty(t, got.Lines)
}

func TestGetBuffer_MissingChannelReturnsErrorBuffer(t *testing.T) {
	m := singleChannelModel()

	got := m.GetBuffer(NewNamePair("S", "#nonexistent"))

	assert.Equal(t, ErrorBuffer(), got)
}

func TestGetBuffer_ServerBufferSentinel(t *testing.T) {
	m := NewModel()
	m.ServerInfoMap["S"] = ServerInfo{Nick: "Nick", NewChannelName: "", ServerBuffer: InitialServerBuffer("S")}

	got := m.GetBuffer(NamePair{Server: "S", Channel: ServerBufferKey})

	require.Len(t, got.Lines, 1)
	assert.Equal(t, "WELCOME TO S SERVER.", got.Lines[0].Text)
	assert.Equal(t, WelcomeNick, got.Lines[0].Nick)
}

func TestGetBuffer_SentinelNeverConsultsBufferMap(t *testing.T) {
	m := NewModel()
	m.ServerInfoMap["S"] = NewServerInfo("S", "me")
	// A key that breaks the isolation invariant must still be ignored.
	m.BufferMap[NamePair{Server: "S", Channel: ServerBufferKey}] = Buffer{
		Lines: []Line{{Nick: "x", Text: "collision"}},
	}

	got := m.GetBuffer(NamePair{Server: "S", Channel: ServerBufferKey})

	assert.Equal(t, m.GetServerInfo("S").ServerBuffer, got)
	assert.Error(t, m.Validate())
}

func TestGetBuffer_Totality(t *testing.T) {
	models := map[string]Model{
		"zero":    {},
		"empty":   NewModel(),
		"default": DefaultModel(),
	}
	pairs := []NamePair{
		{},
		NewNamePair("", "#a"),
		NewNamePair("Libera", "#go-nuts"),
		NewNamePair("Libera", "#missing"),
		NewNamePair("Unknown", "#go-nuts"),
		{Server: "Unknown", Channel: ServerBufferKey},
		{Server: "Libera", Channel: ServerBufferKey},
	}
	for name, m := range models {
		for _, pair := range pairs {
			t.Run(name+"/"+string(pair.Server)+"/"+string(pair.Channel), func(t *testing.T) {
				require.NotPanics(t, func() {
					buf := m.GetBuffer(pair)
					assert.NotNil(t, buf.Lines)
				})
			})
		}
	}
}

func TestGetServerInfo_Fallback(t *testing.T) {
	for _, m := range []Model{{}, NewModel(), DefaultModel()} {
		info := m.GetServerInfo("Unknown")

		assert.Equal(t, ErrorNick, info.Nick)
		assert.Equal(t, "", info.NewChannelName)
		require.Len(t, info.ServerBuffer.Lines, 1)
		assert.Equal(t, NoticeNick, info.ServerBuffer.Lines[0].Nick)
	}
}

func TestGetServerBuffer_UnknownServerIsErrorBuffer(t *testing.T) {
	m := DefaultModel()

	assert.Equal(t, ErrorBuffer(), m.GetServerBuffer("Unknown"))
	assert.Equal(t, InitialServerBuffer("Libera"), m.GetServerBuffer("Libera"))
}

func TestGetNickAndNewChannelName(t *testing.T) {
	m := DefaultModel()

	tests := []struct {
		name        string
		server      ServerName
		wantNick    string
		wantChannel string
	}{
		{"known server", "Libera", "gopher", ""},
		{"known server with draft", "OFTC", "gopher_", "#debian"},
		{"unknown server", "Unknown", "ERROR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantNick, m.GetNick(tt.server))
			assert.Equal(t, tt.wantChannel, m.GetNewChannelName(tt.server))
		})
	}
}

func TestGetBufferBySelector(t *testing.T) {
	m := DefaultModel()

	assert.Equal(t, m.GetServerBuffer("Libera"), m.GetBufferBySelector("Libera", ServerBufferSelector()))
	assert.Equal(t, m.BufferMap[NewNamePair("Libera", "#go-nuts")], m.GetBufferBySelector("Libera", ChannelSelector("#go-nuts")))
	assert.Equal(t, ErrorBuffer(), m.GetBufferBySelector("Libera", ChannelSelector("#missing")))
	assert.Equal(t, ErrorBuffer(), m.GetBufferBySelector("Unknown", ServerBufferSelector()))
}

func TestAccessorsAreIdempotent(t *testing.T) {
	m := DefaultModel()
	pair := m.CurrentSelection()

	assert.Equal(t, m.GetBuffer(pair), m.GetBuffer(pair))
	assert.Equal(t, m.GetServerInfo("OFTC"), m.GetServerInfo("OFTC"))
	assert.Equal(t, m.GetNick("Unknown"), m.GetNick("Unknown"))
	assert.Equal(t, m.CurrentBuffer(), m.CurrentBuffer())
}

func TestCurrentBuffer(t *testing.T) {
	m := DefaultModel()

	assert.Equal(t, m.BufferMap[NewNamePair("Libera", "#go-nuts")], m.CurrentBuffer())
	assert.Equal(t, "gopher", m.CurrentNick())

	dangling := m.Select("Gone", "#nowhere")
	assert.Equal(t, ErrorBuffer(), dangling.CurrentBuffer())
	assert.Equal(t, ErrorNick, dangling.CurrentServerInfo().Nick)

	serverBuf := m.Select("OFTC", ServerBufferKey)
	assert.Equal(t, InitialServerBuffer("OFTC"), serverBuf.CurrentBuffer())
}
