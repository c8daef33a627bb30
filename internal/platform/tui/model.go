package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/natrix/internal/app"
	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/games/snake"
)

// Model is the Bubble Tea model driving the app state machine.
type Model struct {
	machine    *app.Machine
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	quitting   bool
	err        error
}

// NewModel creates a new Bubble Tea model for the machine.
func NewModel(machine *app.Machine, cfg core.RuntimeConfig) Model {
	if cfg.TickDelay <= 0 {
		cfg.TickDelay = core.DefaultTickDelay
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		machine:    machine,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickDelay)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.keys.MapKeyToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick feeds the input gathered since the last tick to the machine.
// Keys pressed between ticks are delivered together, in order.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	done, err := m.machine.Update(m.inputFrame)
	m.inputFrame.Clear()

	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	if done {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickDelay)
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

// footerRows returns the rows reserved for the help line. The game board
// takes priority on short terminals.
func (m Model) footerRows() int {
	if _, ok := m.machine.State().(*app.Menu); ok {
		return 1
	}
	if m.config.ScreenH > snake.MinScreenH {
		return 1
	}
	return 0
}

func (m Model) helpBindings() []key.Binding {
	keys := m.keys.Keys()
	switch s := m.machine.State().(type) {
	case *app.Menu:
		return keys.MenuHelp()
	case *app.Game:
		if s.Session().Status().Playing() {
			return keys.PlayHelp()
		}
		return keys.EndHelp()
	}
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := m.footerRows()
	w, h := m.config.ScreenW, m.config.ScreenH-footer
	if h < 0 {
		h = 0
	}
	if m.screen.Width() != w || m.screen.Height() != h {
		m.screen.Resize(w, h)
	}

	m.machine.Render(m.screen)
	out := RenderScreen(m.screen)
	if footer > 0 {
		out += "\n" + m.help.ShortHelpView(m.helpBindings())
	}
	return out
}

// Run starts the Bubble Tea program and returns once the machine quits.
// An error from the state machine is returned after the terminal is restored.
func Run(machine *app.Machine, cfg core.RuntimeConfig) error {
	model := NewModel(machine, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
