package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	search   key.Binding
	lists    key.Binding
	services key.Binding
	add      key.Binding
	remove   key.Binding
	del      key.Binding
	toggle   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		lists:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "lists")),
		services: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "services")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to watchlist")),
		remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove movie")),
		del:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete list")),
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.search, k.lists, k.services},
		{k.add, k.remove, k.del, k.toggle},
		{k.quit},
	}
}
