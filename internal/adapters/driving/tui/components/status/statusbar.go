// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui/styles"
)

// State represents the fetch state shown in the bar.
type State string

const (
	StateLoading   State = "loading"
	StateLoaded    State = "loaded"
	StateFailed    State = "failed"
	StateFiltering State = "filtering"
)

// Bar displays fetch status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	shown   int
	total   int
	width   int
	storeID string
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateLoading,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	prefix := ""
	if s.storeID != "" {
		prefix = s.storeID + ": "
	}

	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render(prefix + "Fetching contacts...")
	case StateFailed:
		return s.styles.Error.Render(prefix + "Cannot access contacts")
	case StateLoaded, StateFiltering:
		if s.shown != s.total {
			return s.styles.Normal.Render(fmt.Sprintf("%s%d of %d contacts", prefix, s.shown, s.total))
		}
		return s.styles.Normal.Render(fmt.Sprintf("%s%d contacts", prefix, s.total))
	}
	return ""
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateFiltering {
		bindings = s.keymap.FilterHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Hints returns the bindings currently advertised.
func (s *Bar) Hints() []key.Binding {
	if s.state == StateFiltering {
		return s.keymap.FilterHelp()
	}
	return s.keymap.ShortHelp()
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetCounts sets the number of shown and fetched contacts.
func (s *Bar) SetCounts(shown, total int) {
	s.shown = shown
	s.total = total
}

// SetStore sets the store label shown before the status.
func (s *Bar) SetStore(id string) {
	s.storeID = id
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
