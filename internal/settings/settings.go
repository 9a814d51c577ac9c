// Package settings persists TUI preferences to tui.toml in the config
// directory.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/pelletier/go-toml/v2"
)

const (
	fileName = "tui.toml"

	// MinSidebarWidth and MaxSidebarWidth bound SidebarWidth.
	MinSidebarWidth = 8
	MaxSidebarWidth = 60
)

// Settings holds TUI user preferences.
type Settings struct {
	// ShowSidebar shows the buffer list next to the scrollback.
	ShowSidebar bool `toml:"show_sidebar"`
	// SidebarWidth is the widest the sidebar grows; it never takes more
	// than a third of the terminal.
	SidebarWidth int `toml:"sidebar_width"`
	// ShowHelp shows key bindings in the footer when no status is set.
	ShowHelp bool `toml:"show_help"`
}

// DefaultSettings returns settings with all default values.
func DefaultSettings() *Settings {
	return &Settings{
		ShowSidebar:  true,
		SidebarWidth: 24,
		ShowHelp:     true,
	}
}

// Path returns the settings file, honoring the tui_settings_path key.
func Path() string {
	if override := config.Get("tui_settings_path", ""); override != "" {
		return override
	}
	return filepath.Join(config.Get("config_dir", ""), fileName)
}

// Load reads settings from path. A missing file yields the defaults, and
// keys absent from the file keep their default value.
func Load(path string) (*Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to path, creating its directory.
func Save(path string, s *Settings) error {
	if err := Validate(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), config.FileModeDir); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, config.FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Validate checks that settings values are valid.
func Validate(s *Settings) error {
	if s == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	if s.SidebarWidth < MinSidebarWidth || s.SidebarWidth > MaxSidebarWidth {
		return fmt.Errorf("sidebar_width must be between %d and %d, got %d", MinSidebarWidth, MaxSidebarWidth, s.SidebarWidth)
	}
	return nil
}
