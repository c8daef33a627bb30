// Package app holds the top-level state machine: a map selection menu and
// the game itself. States consume one input frame per tick and decide what
// runs next. The package knows nothing about the terminal.
package app

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/games/snake"
	"github.com/vovakirdan/natrix/internal/grid"
)

// TransitionKind says what the machine does after a state update.
type TransitionKind int

const (
	TransitionContinue TransitionKind = iota
	TransitionQuit
	TransitionReplace
)

// Transition is returned by State.Update.
type Transition struct {
	Kind TransitionKind
	Next State // set for TransitionReplace
}

// Continue keeps the current state.
func Continue() Transition { return Transition{Kind: TransitionContinue} }

// Quit stops the machine.
func Quit() Transition { return Transition{Kind: TransitionQuit} }

// Replace swaps the current state for next.
func Replace(next State) Transition {
	return Transition{Kind: TransitionReplace, Next: next}
}

// State is one screen of the application.
type State interface {
	// Name identifies the state in logs.
	Name() string
	// Update consumes one tick of input.
	Update(in core.InputFrame) (Transition, error)
	// Render draws the state onto dst.
	Render(dst *core.Screen)
}

// Env is shared by every state.
type Env struct {
	Logger *log.Logger
	// LoadMaps returns the playable maps. It is called each time the menu
	// opens, so edited map files show up without a restart.
	LoadMaps func() []*grid.Map
	Options  snake.Options
	Rand     *rand.Rand
}

func (e *Env) normalize() {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.LoadMaps == nil {
		e.LoadMaps = func() []*grid.Map { return nil }
	}
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.Options == (snake.Options{}) {
		e.Options = snake.DefaultOptions()
	}
}

// Machine runs the current state and applies its transitions.
type Machine struct {
	env   *Env
	state State
	done  bool
}

// NewMachine creates a machine that starts in the map menu.
func NewMachine(env *Env) *Machine {
	env.normalize()
	return &Machine{env: env, state: NewMenu(env)}
}

// NewMachineAt creates a machine that starts in the given state.
func NewMachineAt(env *Env, initial State) *Machine {
	env.normalize()
	return &Machine{env: env, state: initial}
}

// Update feeds one input frame to the current state. It returns true once
// the machine has quit.
func (m *Machine) Update(in core.InputFrame) (bool, error) {
	if m.done {
		return true, nil
	}

	tr, err := m.state.Update(in)
	if err != nil {
		m.env.Logger.Error("state update failed", "state", m.state.Name(), "error", err)
		m.done = true
		return true, err
	}

	switch tr.Kind {
	case TransitionQuit:
		m.env.Logger.Info("quit", "state", m.state.Name())
		m.done = true
	case TransitionReplace:
		m.env.Logger.Debug("state change", "from", m.state.Name(), "to", tr.Next.Name())
		m.state = tr.Next
	}
	return m.done, nil
}

// Render draws the current state.
func (m *Machine) Render(dst *core.Screen) {
	m.state.Render(dst)
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Done reports whether the machine has quit.
func (m *Machine) Done() bool {
	return m.done
}
