package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Remove key.Binding
	Faster key.Binding
	Slower key.Binding
	Reseed key.Binding
	Seed   key.Binding
	Pause  key.Binding
	Graph  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add")),
		Remove: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "remove")),
		Faster: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "cursor faster")),
		Slower: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "cursor slower")),
		Reseed: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reseed")),
		Seed:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "edit seed")),
		Pause:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Graph:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "energy graph")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.Slower, k.Faster, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Remove, k.Reseed, k.Seed},
		{k.Slower, k.Faster, k.Pause, k.Graph},
		{k.Help, k.Quit},
	}
}
