package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupConfigEnv isolates XDG directories and the .env lookup in a temp dir.
func setupConfigEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("CHATBUF_CONFIG_PATH", "")

	prev := dotenvPath
	dotenvPath = filepath.Join(tmp, ".env")
	t.Cleanup(func() { dotenvPath = prev })
	return tmp
}

func TestLoadAndGet(t *testing.T) {
	setupConfigEnv(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, 1000, GetInt("scrollback_limit", 0))
	require.True(t, GetBool("sample_data", false))
	require.Equal(t, "color", Get("output_format", ""))
}

func TestDerivedPaths(t *testing.T) {
	tmp := setupConfigEnv(t)
	Load()

	stateDir := Get("state_dir", "")
	require.Equal(t, filepath.Join(tmp, "state", "chatbuf"), stateDir)
	require.Equal(t, filepath.Join(stateDir, "chatbuf.db"), Get("db_path", ""))
}

func TestEnvOverridesFile(t *testing.T) {
	tmp := setupConfigEnv(t)

	configFile := filepath.Join(tmp, "custom.toml")
	content := `
nick = "filenick"
servers = ["Libera", "OFTC"]
scrollback_limit = 50
sample_data = false
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	t.Setenv("CHATBUF_CONFIG_PATH", configFile)
	t.Setenv("CHATBUF_SCROLLBACK_LIMIT", "75")

	Load()

	require.Equal(t, "filenick", Get("nick", ""))
	require.Equal(t, []string{"Libera", "OFTC"}, GetList("servers"))
	require.Equal(t, 75, GetInt("scrollback_limit", 0), "environment should override config file")
	require.False(t, GetBool("sample_data", true))
}

func TestDotenvDoesNotOverrideEnvironment(t *testing.T) {
	tmp := setupConfigEnv(t)
	dotenv := "CHATBUF_NICK=fromdotenv\nCHATBUF_SERVERS=Rizon\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte(dotenv), 0644))
	t.Setenv("CHATBUF_NICK", "fromenv")
	// Registered so the test cleanup restores it after godotenv sets it.
	t.Setenv("CHATBUF_SERVERS", "")
	require.NoError(t, os.Unsetenv("CHATBUF_SERVERS"))

	Load()

	require.Equal(t, "fromenv", Get("nick", ""))
	require.Equal(t, []string{"Rizon"}, GetList("servers"))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv("CHATBUF_SCROLLBACK_LIMIT", "-4")
	t.Setenv("CHATBUF_OUTPUT_FORMAT", "XML")
	t.Setenv("CHATBUF_DEBUG", "maybe")
	t.Setenv("CHATBUF_QUIET", "YES")

	Load()

	require.Equal(t, "1000", Get("scrollback_limit", ""))
	require.Equal(t, "color", Get("output_format", ""))
	require.Equal(t, "false", Get("debug", ""))
	require.Equal(t, "true", Get("quiet", ""))
}

func TestSampleConfigCreated(t *testing.T) {
	tmp := setupConfigEnv(t)
	Load()

	data, err := os.ReadFile(filepath.Join(tmp, "config", "chatbuf", "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "# chatbuf configuration")
	require.Contains(t, string(data), "# Lines kept per buffer.\nscrollback_limit = 1000")
	require.Contains(t, string(data), "hooks_async = false")
	require.NotContains(t, string(data), "state_dir")
}

func TestSampleConfigRoundTrips(t *testing.T) {
	setupConfigEnv(t)
	Load()
	// A second load reads the sample file back without changing any value.
	want := Get("hooks_max_async", "")
	Load()

	require.Equal(t, want, Get("hooks_max_async", ""))
	require.Equal(t, "warn", Get("hooks_failure_mode", ""))
}

func TestEveryKeyIsDeclared(t *testing.T) {
	setupConfigEnv(t)
	Load()

	mu.RLock()
	defer mu.RUnlock()
	for key := range config {
		_, ok := lookupOption(key)
		require.True(t, ok, "%s has no option entry", key)
	}
	for _, key := range []string{"db_path", "hooks_dir", "tui_settings_path"} {
		_, ok := lookupOption(key)
		require.True(t, ok, key)
	}
	require.Equal(t, "", config["tui_settings_path"])
}

func TestEmptyValueUsesDefault(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv("CHATBUF_SNAPSHOT_KEEP", "")

	Load()

	require.Equal(t, 20, GetInt("snapshot_keep", 0))
}

func TestGetListAndSet(t *testing.T) {
	setupConfigEnv(t)
	Load()

	require.Nil(t, GetList("servers"))
	Set("servers", " a, ,b ,")
	require.Equal(t, []string{"a", "b"}, GetList("servers"))
}

func TestCoerceConfigValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
		ok    bool
	}{
		{"string", "x", "x", true},
		{"int64", int64(7), "7", true},
		{"float", 1.5, "1.5", true},
		{"bool", true, "true", true},
		{"list", []interface{}{"a", int64(2)}, "a,2", true},
		{"map", map[string]interface{}{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceConfigValue(tt.value)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHookAndSearchKeys(t *testing.T) {
	tmp := setupConfigEnv(t)
	t.Setenv("CHATBUF_HOOKS_FAILURE_MODE", "explode")
	t.Setenv("CHATBUF_SEARCH_MODE", "Regex")
	t.Setenv("CHATBUF_HOOKS_ASYNC", "on")

	Load()

	require.Equal(t, filepath.Join(tmp, "config", "chatbuf", "hooks"), Get("hooks_dir", ""))
	require.Equal(t, "warn", Get("hooks_failure_mode", ""))
	require.Equal(t, "regex", Get("search_mode", ""))
	require.True(t, GetBool("hooks_async", false))
	require.Equal(t, 30, GetInt("hooks_async_timeout", 0))
	require.Equal(t, "compact", Get("status_format", ""))
}
