// Package logging provides structured file logging for chatbuf.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/chatbuf/internal/config"
)

// Config controls the file logger. Command and PID end up in the log file
// name and on every record.
type Config struct {
	Enabled  bool
	Level    string
	MaxFiles int
	Command  string
	PID      int
}

// DefaultConfig returns logging disabled at info level.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig reads the logging_* keys. debug=true forces the debug
// level and otherwise quiet=true forces error.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", cfg.Enabled)
	cfg.Level = config.Get("logging_level", cfg.Level)
	cfg.MaxFiles = config.GetInt("logging_max_files", cfg.MaxFiles)
	if config.GetBool("debug", false) {
		cfg.Level = "debug"
	} else if config.GetBool("quiet", false) {
		cfg.Level = "error"
	}
	return cfg
}

// LogDir returns state_dir/logs, falling back to a chatbuf directory under
// the system temp dir when the state dir cannot be written.
func LogDir() (string, error) {
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		dir := filepath.Join(stateDir, "logs")
		if writable(dir) {
			return dir, nil
		}
	}
	dir := filepath.Join(os.TempDir(), "chatbuf", "logs")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// writable creates dir if needed and probes it with a scratch file.
func writable(dir string) bool {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
