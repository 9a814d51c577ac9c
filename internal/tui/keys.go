package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next          key.Binding
	Prev          key.Binding
	Submit        key.Binding
	OpenURL       key.Binding
	Save          key.Binding
	ToggleSidebar key.Binding
	Up            key.Binding
	Down          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:          key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next buffer")),
		Prev:          key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev buffer")),
		Submit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		OpenURL:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open url")),
		Save:          key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		ToggleSidebar: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "sidebar")),
		Up:            key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		Down:          key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:          key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// helpBindings are shown in the footer, in order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.OpenURL, k.Save, k.ToggleSidebar, k.Quit}
}
