package cmd

import (
	"bytes"
	"testing"

	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintHelp(t *testing.T) {
	root := &cobra.Command{Use: "chatbuf", Short: "Test root", Version: "0.1.0"}
	root.AddCommand(
		&cobra.Command{Use: "version", Short: "Show version information"},
		&cobra.Command{Use: "show [server] [channel]", Short: "Print a buffer"},
		&cobra.Command{Use: "unlisted", Short: "Not in the overview"},
	)

	var buf bytes.Buffer
	PrintHelp(root, &buf)
	out := buf.String()

	assert.Contains(t, out, "chatbuf 0.1.0")
	assert.Contains(t, out, "Test root")
	assert.Contains(t, out, "show [server] [channel]")
	assert.NotContains(t, out, "unlisted")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("show [server]")), bytes.Index(buf.Bytes(), []byte("Show version")))
}

func TestApplyFlags(t *testing.T) {
	t.Cleanup(func() {
		config.Set("db_path", "")
		config.Set("output_format", "")
	})

	require.NoError(t, applyFlags("/tmp/x.db", "JSON"))
	assert.Equal(t, "/tmp/x.db", config.Get("db_path", ""))
	assert.Equal(t, "json", config.Get("output_format", ""))

	assert.Error(t, applyFlags("", "yaml"))
	assert.Equal(t, "json", config.Get("output_format", ""))

	require.NoError(t, applyFlags("", ""))
	assert.Equal(t, "/tmp/x.db", config.Get("db_path", ""))
}

func TestRootCommandFlags(t *testing.T) {
	assert.NotNil(t, RootCmd.PersistentFlags().Lookup("db"))
	assert.NotNil(t, RootCmd.PersistentFlags().Lookup("format"))
	assert.Equal(t, "chatbuf", RootCmd.Name())
}
