// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// HostKeyMap defines the keybindings for the landing screen.
type HostKeyMap struct {
	Launch key.Binding
	Quit   key.Binding
}

// TrayKeyMap defines the keybindings while the sheet is presented.
type TrayKeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Activate    key.Binding
	Incognito   key.Binding
	ModelPicker key.Binding
	Close       key.Binding

	// General
	Escape key.Binding
	Quit   key.Binding
}

// Host is the landing-screen keymap.
var Host = HostKeyMap{
	Launch: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "launch sheet"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Tray is the sheet keymap.
var Tray = TrayKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Incognito: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "incognito"),
	),
	ModelPicker: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "models"),
	),
	Close: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "close"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k HostKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k HostKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ShortHelp implements help.KeyMap.
func (k TrayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Incognito, k.ModelPicker, k.Escape}
}

// FullHelp implements help.KeyMap.
func (k TrayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Activate, k.Incognito, k.ModelPicker, k.Close},
		{k.Escape, k.Quit},
	}
}
