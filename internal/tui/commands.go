package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/hooks"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

type hookCall struct {
	point hooks.Point
	event hooks.Event
}

// submit handles the input line: slash commands change the state, any
// other text is echoed into the current buffer as the user's own line.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}

	origin := m.store.Load().CurrentSelection()
	var err error
	if strings.HasPrefix(text, "/") {
		err = m.runCommand(text)
	} else {
		err = m.say(text)
	}
	if err != nil {
		m.firedHooks = nil
		m.errorHandler.Error(err.Error())
		return m.statusCmd()
	}

	m.clearDraft(origin)
	m.syncFromStore()
	return tea.Batch(m.statusCmd(), m.hooksCmd())
}

// fire queues a hook run for the action being handled.
func (m *Model) fire(point hooks.Point, event hooks.Event) {
	if m.hooks != nil {
		m.firedHooks = append(m.firedHooks, hookCall{point: point, event: event})
	}
}

// hooksCmd runs the queued hooks off the update loop.
func (m *Model) hooksCmd() tea.Cmd {
	calls := m.firedHooks
	m.firedHooks = nil
	if len(calls) == 0 {
		return nil
	}
	runner := m.hooks
	return func() tea.Msg {
		for _, call := range calls {
			if err := runner.Run(context.Background(), call.point, call.event); err != nil {
				return hookDoneMsg{err: err}
			}
		}
		return hookDoneMsg{}
	}
}

func (m *Model) say(text string) error {
	var event hooks.Event
	_, err := m.store.Update(func(s domain.Model) (domain.Model, error) {
		pair := s.CurrentSelection()
		if !s.HasBuffer(pair) {
			return s, fmt.Errorf("not in a valid buffer")
		}
		event = hooks.Event{Server: string(pair.Server), Channel: string(pair.Channel), Nick: s.CurrentNick(), Text: text}
		return s.AppendLineLimit(pair, domain.Line{Nick: event.Nick, Text: text}, m.scrollbackLimit)
	})
	if err == nil {
		m.fire(hooks.PointLine, event)
	}
	return err
}

func (m *Model) runCommand(text string) error {
	fields := strings.Fields(strings.TrimPrefix(text, "/"))
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	name, rest := strings.ToLower(fields[0]), fields[1:]
	if name == "search" {
		m.setFilter(strings.Join(rest, " "))
		return nil
	}

	var arg string
	if len(rest) > 0 {
		arg = rest[0]
	}
	var err error
	switch name {
	case "join":
		err = m.join(domain.ChannelName(arg))
	case "part":
		err = m.part(domain.ChannelName(arg))
	case "nick":
		err = m.nick(arg)
	case "connect":
		err = m.connect(domain.ServerName(arg))
	case "disconnect":
		err = m.disconnect(domain.ServerName(arg))
	default:
		m.errorHandler.Warning("Unknown command: /" + name)
		return nil
	}
	if err == nil && len(rest) > 1 {
		m.errorHandler.Warning(fmt.Sprintf("/%s takes one argument, ignored: %s", name, strings.Join(rest[1:], " ")))
	}
	return err
}

// update runs fn against the store and reports info, if any, on success.
func (m *Model) update(fn func(domain.Model) (domain.Model, error), info string) error {
	if _, err := m.store.Update(fn); err != nil {
		return err
	}
	if info != "" {
		m.errorHandler.Info(info)
	}
	return nil
}

// join joins channel on the current server, or the server's pending
// channel name when channel is empty, and selects it.
func (m *Model) join(channel domain.ChannelName) error {
	var joined domain.ChannelName
	err := m.update(func(s domain.Model) (domain.Model, error) {
		server := s.CurrentServerName
		joined = channel
		if joined == "" {
			joined = domain.ChannelName(s.GetNewChannelName(server))
		}
		next, err := s.JoinChannel(server, joined)
		if err != nil {
			return s, err
		}
		return next.Select(server, joined), nil
	}, "")
	if err == nil {
		m.errorHandler.Info("Joined " + string(joined))
		m.fire(hooks.PointJoin, m.currentEvent())
	}
	return err
}

func (m *Model) part(channel domain.ChannelName) error {
	var parted domain.ChannelName
	var server domain.ServerName
	err := m.update(func(s domain.Model) (domain.Model, error) {
		server = s.CurrentServerName
		parted = channel
		if parted == "" {
			if s.CurrentSelection().IsServerBuffer() {
				return s, fmt.Errorf("cannot part the server buffer")
			}
			parted = s.CurrentChannelName
		}
		next, err := s.PartChannel(server, parted)
		if err != nil {
			return s, err
		}
		if next.CurrentChannelName == parted {
			next = next.Select(server, domain.ServerBufferKey)
		}
		return next, nil
	}, "")
	if err == nil {
		m.errorHandler.Info("Left " + string(parted))
		event := m.currentEvent()
		event.Server, event.Channel = string(server), string(parted)
		m.fire(hooks.PointPart, event)
	}
	return err
}

func (m *Model) nick(nick string) error {
	err := m.update(func(s domain.Model) (domain.Model, error) {
		return s.SetNick(s.CurrentServerName, nick)
	}, "Nick changed to "+nick)
	if err == nil {
		m.fire(hooks.PointNick, m.currentEvent())
	}
	return err
}

func (m *Model) connect(server domain.ServerName) error {
	err := m.update(func(s domain.Model) (domain.Model, error) {
		nick := s.CurrentNick()
		if !s.HasServer(s.CurrentServerName) {
			nick = m.defaultNick
		}
		next, err := s.ConnectServer(server, nick)
		if err != nil {
			return s, err
		}
		return next.Select(server, domain.ServerBufferKey), nil
	}, "Connected to "+string(server))
	if err == nil {
		m.fire(hooks.PointConnect, m.currentEvent())
	}
	return err
}

// disconnect drops server (the current one when empty) and moves the
// selection to the first remaining buffer.
func (m *Model) disconnect(server domain.ServerName) error {
	var dropped domain.ServerName
	err := m.update(func(s domain.Model) (domain.Model, error) {
		dropped = server
		if dropped == "" {
			dropped = s.CurrentServerName
		}
		next, err := s.DisconnectServer(dropped)
		if err != nil {
			return s, err
		}
		if !next.HasBuffer(next.CurrentSelection()) {
			next = next.SelectOffset(1)
		}
		return next, nil
	}, "")
	if err == nil {
		m.errorHandler.Info("Disconnected from " + string(dropped))
		m.fire(hooks.PointDisconnect, hooks.Event{Server: string(dropped)})
	}
	return err
}

// currentEvent describes the current selection for hooks.
func (m *Model) currentEvent() hooks.Event {
	s := m.store.Load()
	sel := s.CurrentSelection()
	return hooks.Event{Server: string(sel.Server), Channel: string(sel.Channel), Nick: s.CurrentNick()}
}

// setFilter narrows the scrollback to lines matching query; an empty
// query shows everything again.
func (m *Model) setFilter(query string) {
	m.filter = query
	if query == "" {
		m.errorHandler.Info("Search cleared")
		return
	}
	m.errorHandler.Info(fmt.Sprintf("%d lines match %q", len(m.visibleLines()), query))
}

// newestURL returns the last URL posted in buf.
func newestURL(buf domain.Buffer) (string, bool) {
	for i := len(buf.Lines) - 1; i >= 0; i-- {
		if urls := urlPattern.FindAllString(buf.Lines[i].Text, -1); len(urls) > 0 {
			return urls[len(urls)-1], true
		}
	}
	return "", false
}
