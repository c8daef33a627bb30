package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/natrix/internal/core"
)

// KeyMap defines the key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Restart key.Binding
	Menu    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns WASD bindings with arrow key aliases. Letters match
// in either case.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "W", "up"),
			key.WithHelp("w/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "S", "down"),
			key.WithHelp("s/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "A", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "D", "right"),
			key.WithHelp("d/→", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "play"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "restart"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuHelp returns the bindings shown under the map list.
func (k KeyMap) MenuHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Quit}
}

// PlayHelp returns the bindings shown while the snake moves.
func (k KeyMap) PlayHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Down, k.Right, k.Quit}
}

// EndHelp returns the bindings shown after the game has ended.
func (k KeyMap) EndHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Menu, k.Quit}
}

// KeyMapper translates Bubble Tea key messages to core input events.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an input event.
// ok is false for keys the game does not use.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (ev core.Event, ok bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.Quit(), true
	case key.Matches(msg, km.keys.Up):
		return core.KeyDown(core.KeyW), true
	case key.Matches(msg, km.keys.Left):
		return core.KeyDown(core.KeyA), true
	case key.Matches(msg, km.keys.Down):
		return core.KeyDown(core.KeyS), true
	case key.Matches(msg, km.keys.Right):
		return core.KeyDown(core.KeyD), true
	case key.Matches(msg, km.keys.Confirm):
		return core.KeyDown(core.KeySpace), true
	case key.Matches(msg, km.keys.Restart):
		return core.KeyDown(core.KeyR), true
	case key.Matches(msg, km.keys.Menu):
		return core.KeyDown(core.KeyM), true
	}
	return core.Event{}, false
}

// MapKeyToFrame appends the event for a key message to frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	ev, ok := km.MapKey(msg)
	if !ok {
		return false
	}
	frame.Push(ev)
	return ev.Kind == core.EventQuit
}
