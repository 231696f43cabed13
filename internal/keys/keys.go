// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the messaging screen.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	NextConv key.Binding
	PrevConv key.Binding
	Focus    key.Binding

	// Composer
	Compose key.Binding
	Send    key.Binding
	Blur    key.Binding

	// Message actions
	Delete  key.Binding
	Promote key.Binding
	React   key.Binding

	// Tasks
	ToggleDone     key.Binding
	ToggleHideDone key.Binding

	// General
	SwitchUser key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		NextConv: key.NewBinding(
			key.WithKeys("ctrl+j", "ctrl+n"),
			key.WithHelp("ctrl+j/n", "next conversation"),
		),
		PrevConv: key.NewBinding(
			key.WithKeys("ctrl+k", "ctrl+p"),
			key.WithHelp("ctrl+k/p", "previous conversation"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),

		Compose: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "compose message"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave composer"),
		),

		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete message"),
		),
		Promote: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "add to tasks"),
		),
		React: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "react"),
		),

		ToggleDone: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle done"),
		),
		ToggleHideDone: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "hide done tasks"),
		),

		SwitchUser: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "switch user"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextConv, k.PrevConv, k.Focus},
		{k.Compose, k.Send, k.Blur},
		{k.Delete, k.Promote, k.React},
		{k.ToggleDone, k.ToggleHideDone},
		{k.SwitchUser, k.Help, k.Quit},
	}
}

// IdentityKeyMap defines the keybindings for the identity screen.
type IdentityKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	AddUser key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// DefaultIdentityKeyMap returns the keybindings for the identity screen.
func DefaultIdentityKeyMap() IdentityKeyMap {
	return IdentityKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select user"),
		),
		AddUser: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add user"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
