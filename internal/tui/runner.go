package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgramRunner runs a bubbletea program. Tests substitute it.
type ProgramRunner interface {
	Run(model tea.Model) error
}

// DefaultProgramRunner runs the program full screen.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program on the alternate screen.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
