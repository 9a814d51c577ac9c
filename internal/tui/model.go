// Package tui is the interactive terminal client over a state.Store.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/errors"
	"github.com/cristianoliveira/chatbuf/internal/hooks"
	"github.com/cristianoliveira/chatbuf/internal/logging"
	"github.com/cristianoliveira/chatbuf/internal/search"
	"github.com/cristianoliveira/chatbuf/internal/settings"
	"github.com/cristianoliveira/chatbuf/internal/state"
	"github.com/cristianoliveira/chatbuf/internal/storage/sqlite"
	"github.com/pkg/browser"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, input and status/footer rows around the viewport
	chromeLines = 4
)

// Saver persists snapshots.
type Saver interface {
	Save(ctx context.Context, m domain.Model) (sqlite.Revision, error)
}

// HookRunner runs user scripts for chat events.
type HookRunner interface {
	Run(ctx context.Context, point hooks.Point, event hooks.Event) error
}

// Options configures a Model.
type Options struct {
	// ScrollbackLimit caps lines per buffer; zero keeps everything.
	ScrollbackLimit int
	// DefaultNick is used by /connect when no server is selected.
	DefaultNick string
	// Saver, if set, backs the save key.
	Saver Saver
	// OpenURL opens a link; defaults to the system browser.
	OpenURL func(url string) error
	// Hooks, if set, runs scripts after commands and sent lines.
	Hooks HookRunner
	// Search matches lines for /search; defaults to case-insensitive
	// substring matching.
	Search search.Provider
	// Settings are the layout preferences; nil uses the defaults.
	Settings *settings.Settings
}

// Model is the bubbletea model. The chat state itself lives in the store;
// Model only keeps widgets and the status line.
type Model struct {
	store   *state.Store
	changes chan struct{}
	keys    keyMap

	input    textinput.Model
	viewport viewport.Model
	// rendered is the scrollback last handed to the viewport.
	rendered string
	width    int
	height   int

	errorHandler  *errors.TUIHandler
	status        errors.Message
	hasStatus     bool
	pendingStatus bool

	scrollbackLimit int
	defaultNick     string
	saver           Saver
	openURL         func(string) error
	hooks           HookRunner
	firedHooks      []hookCall
	searcher        search.Provider
	filter          string
	settings        settings.Settings
	log             logging.Logger
}

// NewModel creates a model rendering store. The model subscribes to the
// store so writes made elsewhere are redrawn.
func NewModel(store *state.Store, opts Options) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "message or /command"
	input.Focus()

	m := &Model{
		store:           store,
		changes:         make(chan struct{}, 1),
		keys:            defaultKeyMap(),
		input:           input,
		viewport:        viewport.New(defaultWidth, defaultHeight-chromeLines),
		scrollbackLimit: opts.ScrollbackLimit,
		defaultNick:     opts.DefaultNick,
		saver:           opts.Saver,
		openURL:         opts.OpenURL,
		hooks:           opts.Hooks,
		searcher:        opts.Search,
		log:             logging.With("component", "tui"),
	}
	if m.openURL == nil {
		m.openURL = browser.OpenURL
	}
	if opts.Settings != nil {
		m.settings = *opts.Settings
	} else {
		m.settings = *settings.DefaultSettings()
	}
	if m.searcher == nil {
		m.searcher = search.NewSubstringProvider(search.WithCaseInsensitive(true))
	}
	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.status = msg
		m.hasStatus = msg.Text != ""
		m.pendingStatus = true
		if msg.Type == errors.MessageTypeError {
			m.log.Warn("tui error", "message", msg.Text)
		}
	})

	store.Subscribe(func(prev, next domain.Model) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	m.resize(defaultWidth, defaultHeight)
	m.syncFromStore()
	return m
}

// Init starts listening for store changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshViewport()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case snapshotChangedMsg:
		m.refreshViewport()
		return m, waitForChange(m.changes)
	case statusClearMsg:
		if m.hasStatus && !m.status.Timestamp.After(msg.at) {
			m.hasStatus = false
		}
		return m, nil
	case urlOpenedMsg:
		if msg.err != nil {
			m.errorHandler.Error("Failed to open " + msg.url + ": " + msg.err.Error())
		} else {
			m.errorHandler.Info("Opened " + msg.url)
		}
		return m, m.statusCmd()
	case hookDoneMsg:
		if msg.err != nil {
			m.errorHandler.Warning("Hook failed: " + msg.err.Error())
			return m, m.statusCmd()
		}
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.errorHandler.Error("Save failed: " + msg.err.Error())
		} else {
			m.errorHandler.Success("Saved revision " + msg.rev.ID)
		}
		return m, m.statusCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.OpenURL):
		return m, m.openNewestURL()
	case key.Matches(msg, m.keys.Save):
		return m, m.save()
	case key.Matches(msg, m.keys.ToggleSidebar):
		m.settings.ShowSidebar = !m.settings.ShowSidebar
		m.resize(m.width, m.height)
		m.refreshViewport()
		return m, nil
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.storeDraft(after)
	}
	return m, cmd
}

// Settings returns the layout preferences, including changes made with
// key bindings.
func (m *Model) Settings() settings.Settings {
	return m.settings
}

// Snapshot returns the snapshot currently displayed.
func (m *Model) Snapshot() domain.Model {
	return m.store.Load()
}

// moveSelection also drops the /search filter.
func (m *Model) moveSelection(delta int) {
	m.filter = ""
	_, _ = m.store.Update(func(s domain.Model) (domain.Model, error) {
		return s.SelectOffset(delta), nil
	})
	m.syncFromStore()
}

// storeDraft mirrors the input into the draft of the current buffer.
// Without a valid buffer the text stays only in the widget.
func (m *Model) storeDraft(text string) {
	_, _ = m.store.Update(func(s domain.Model) (domain.Model, error) {
		return s.SetDraft(s.CurrentSelection(), text)
	})
}

// clearDraft empties the draft of pair, which may no longer exist.
func (m *Model) clearDraft(pair domain.NamePair) {
	m.input.SetValue("")
	_, _ = m.store.Update(func(s domain.Model) (domain.Model, error) {
		return s.SetDraft(pair, "")
	})
}

// syncFromStore loads the current buffer's draft into the input and
// redraws the scrollback.
func (m *Model) syncFromStore() {
	m.input.SetValue(m.store.Load().CurrentBuffer().NewLine)
	m.input.CursorEnd()
	m.refreshViewport()
}

// refreshViewport redraws the scrollback. The scroll position is kept
// when the rendered lines did not change, e.g. after a draft edit.
func (m *Model) refreshViewport() {
	content := m.renderBuffer(m.visibleLines(), m.filter != "")
	if content == m.rendered {
		return
	}
	m.rendered = content
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// visibleLines returns the current buffer's lines, narrowed to the
// /search filter when one is set.
func (m *Model) visibleLines() []domain.Line {
	snapshot := m.store.Load()
	if m.filter == "" {
		return snapshot.CurrentBuffer().Lines
	}
	sel := snapshot.CurrentSelection()
	matches := search.Model(snapshot, m.searcher, m.filter, search.Scope{Server: sel.Server, Channel: sel.Channel}, 0)
	lines := make([]domain.Line, len(matches))
	for i, match := range matches {
		lines[i] = match.Line
	}
	return lines
}

func (m *Model) openNewestURL() tea.Cmd {
	url, ok := newestURL(m.store.Load().CurrentBuffer())
	if !ok {
		m.errorHandler.Warning("No URL in this buffer")
		return m.statusCmd()
	}
	open := m.openURL
	return func() tea.Msg {
		return urlOpenedMsg{url: url, err: open(url)}
	}
}

func (m *Model) save() tea.Cmd {
	if m.saver == nil {
		m.errorHandler.Warning("Persistence is disabled")
		return m.statusCmd()
	}
	saver, snapshot := m.saver, m.store.Load()
	return func() tea.Msg {
		rev, err := saver.Save(context.Background(), snapshot)
		return savedMsg{rev: rev, err: err}
	}
}

// statusCmd schedules clearing of a message recorded since the last call.
func (m *Model) statusCmd() tea.Cmd {
	if !m.pendingStatus {
		return nil
	}
	m.pendingStatus = false
	return clearStatusAfter(m.status.Timestamp)
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width, m.height = width, height
	// force a relayout at the new size
	m.rendered = ""
	sidebar := m.sidebarWidth()
	if sidebar > 0 {
		// one column for the sidebar border
		sidebar++
	}
	m.viewport.Width = max(1, width-sidebar)
	m.viewport.Height = max(1, height-chromeLines)
	m.input.Width = max(1, m.viewport.Width-len(m.input.Prompt)-1)
}
