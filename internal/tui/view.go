package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/errors"
	"github.com/cristianoliveira/chatbuf/internal/format"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	serverStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sidebarStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).PaddingRight(1)

	statusStyles = map[errors.MessageType]lipgloss.Style{
		errors.MessageTypeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		errors.MessageTypeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errors.MessageTypeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		errors.MessageTypeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)

// sidebarWidth is the sidebar's width without its border, or 0 when
// the sidebar is hidden or too narrow to be useful.
func (m *Model) sidebarWidth() int {
	if !m.settings.ShowSidebar {
		return 0
	}
	w := min(m.settings.SidebarWidth, m.width/3)
	if w < 4 {
		return 0
	}
	return w
}

// View renders the TUI.
func (m *Model) View() string {
	snapshot := m.store.Load()
	pair := snapshot.CurrentSelection()

	header := headerStyle.Render("chatbuf | "+format.Selection(pair)) + " " + dimStyle.Render("["+snapshot.CurrentNick()+"]")
	if m.filter != "" {
		header += " " + dimStyle.Render("search: "+m.filter)
	}
	body := m.viewport.View()
	if m.sidebarWidth() > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(snapshot, m.viewport.Height), body)
	}

	var s strings.Builder
	s.WriteString(header)
	s.WriteString("\n")
	s.WriteString(body)
	s.WriteString("\n")
	s.WriteString(m.input.View())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// renderSidebar lists every server with its server buffer and channels.
func (m *Model) renderSidebar(snapshot domain.Model, height int) string {
	width := m.sidebarWidth()
	current := snapshot.CurrentSelection()

	var rows []string
	var lastServer domain.ServerName
	for _, pair := range snapshot.Selections() {
		if pair.Server != lastServer {
			rows = append(rows, serverStyle.Render(truncate(string(pair.Server), width)))
			lastServer = pair.Server
		}
		label := "  " + truncate(string(pair.Channel), width-2)
		if pair == current {
			label = selectedStyle.Render(runewidth.FillRight(label, width))
		}
		rows = append(rows, label)
	}
	if len(rows) == 0 {
		rows = append(rows, dimStyle.Render("no servers"))
	}

	return sidebarStyle.Width(width).Height(height).MaxHeight(height).Render(strings.Join(rows, "\n"))
}

// renderBuffer renders scrollback lines wrapped to the viewport width.
func (m *Model) renderBuffer(scrollback []domain.Line, filtered bool) string {
	if len(scrollback) == 0 {
		if filtered {
			return dimStyle.Render("(no matches)")
		}
		return dimStyle.Render("(no messages)")
	}
	wrap := lipgloss.NewStyle().Width(m.viewport.Width)
	lines := make([]string, len(scrollback))
	for i, line := range scrollback {
		nick := lipgloss.NewStyle().Foreground(format.NickColor(line.Nick)).Render("<" + line.Nick + ">")
		lines[i] = wrap.Render(nick + " " + line.Text)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if m.hasStatus {
		style, ok := statusStyles[m.status.Type]
		if !ok {
			style = dimStyle
		}
		return style.Render(truncate(m.status.Text, m.width))
	}
	if !m.settings.ShowHelp {
		return ""
	}

	var help []string
	for _, b := range m.keys.helpBindings() {
		help = append(help, b.Help().Key+": "+b.Help().Desc)
	}
	return dimStyle.Render(truncate(strings.Join(help, "  |  "), m.width))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
