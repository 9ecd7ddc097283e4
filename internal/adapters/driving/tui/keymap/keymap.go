// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the contact browser.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the full help.
	Help key.Binding

	// Filter focuses the filter input.
	Filter key.Binding

	// Clear clears the filter, or leaves it when focused.
	Clear key.Binding

	// Up navigates up in the contact list.
	Up key.Binding

	// Down navigates down in the contact list.
	Down key.Binding

	// Refresh fetches contacts again.
	Refresh key.Binding

	// ScrollDetail pages the detail pane.
	ScrollDetail key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refetch"),
		),
		ScrollDetail: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll details"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Refresh, k.Help, k.Quit}
}

// FilterHelp returns keybindings shown while the filter is focused.
func (k *KeyMap) FilterHelp() []key.Binding {
	return []key.Binding{k.Clear}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.ScrollDetail},
		{k.Filter, k.Clear, k.Refresh},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
