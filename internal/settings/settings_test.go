package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "tui.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tui.toml")
	want := &Settings{ShowSidebar: false, SidebarWidth: 30, ShowHelp: true}

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sidebar_width = 30")
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.toml")
	require.NoError(t, os.WriteFile(path, []byte("show_help = false\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.False(t, s.ShowHelp)
	assert.True(t, s.ShowSidebar)
	assert.Equal(t, 24, s.SidebarWidth)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "show_help = \n", "failed to parse"},
		{"width", "sidebar_width = 2\n", "sidebar_width must be between"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(path)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.toml")
	assert.Error(t, Save(path, &Settings{SidebarWidth: 100}))
	assert.Error(t, Validate(nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPath(t *testing.T) {
	prevDir := config.Get("config_dir", "")
	prevOverride := config.Get("tui_settings_path", "")
	t.Cleanup(func() {
		config.Set("config_dir", prevDir)
		config.Set("tui_settings_path", prevOverride)
	})

	config.Set("config_dir", "/tmp/chatbuf-config")
	config.Set("tui_settings_path", "")
	assert.Equal(t, filepath.Join("/tmp/chatbuf-config", "tui.toml"), Path())

	config.Set("tui_settings_path", "/tmp/elsewhere.toml")
	assert.Equal(t, "/tmp/elsewhere.toml", Path())
}
