package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/chatbuf/internal/storage/sqlite"
)

const statusClearDuration = 5 * time.Second

// snapshotChangedMsg reports that the store published a new snapshot.
type snapshotChangedMsg struct{}

// statusClearMsg clears the status line if it still shows the message
// recorded at the given time.
type statusClearMsg struct {
	at time.Time
}

type urlOpenedMsg struct {
	url string
	err error
}

type hookDoneMsg struct {
	err error
}

type savedMsg struct {
	rev sqlite.Revision
	err error
}

func clearStatusAfter(at time.Time) tea.Cmd {
	return tea.Tick(statusClearDuration, func(time.Time) tea.Msg {
		return statusClearMsg{at: at}
	})
}

// waitForChange blocks until the store signals a change.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return snapshotChangedMsg{}
	}
}
