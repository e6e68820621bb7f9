package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Back      key.Binding
	Login     key.Binding
	Register  key.Binding
	Enter     key.Binding
	Dashboard key.Binding
	Logout    key.Binding
	Step1     key.Binding
	Step2     key.Binding
	Step3     key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.ForceQuit, k.Help, k.Back},
		{k.Login, k.Register, k.Enter, k.Dashboard, k.Logout},
		{k.Step1, k.Step2, k.Step3},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Login: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "sign in"),
		),
		Register: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "get started"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dashboard"),
		),
		Logout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "log out"),
		),
		Step1: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("alt+1", "title step"),
		),
		Step2: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("alt+2", "memory step"),
		),
		Step3: key.NewBinding(
			key.WithKeys("alt+3"),
			key.WithHelp("alt+3", "lock date step"),
		),
	}
}
