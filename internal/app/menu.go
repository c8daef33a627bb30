package app

import (
	"fmt"

	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/grid"
)

// Menu lists the available maps.
type Menu struct {
	env    *Env
	maps   []*grid.Map
	cursor int
}

// NewMenu loads the maps and opens the menu. With no maps available the
// built-in empty default map is offered instead.
func NewMenu(env *Env) *Menu {
	env.normalize()
	maps := env.LoadMaps()
	if len(maps) == 0 {
		env.Logger.Warn("no maps found, using the default map")
		maps = []*grid.Map{grid.New()}
	}
	env.Logger.Debug("menu opened", "maps", len(maps))
	return &Menu{env: env, maps: maps}
}

// Name implements State.
func (m *Menu) Name() string { return "menu" }

// Maps returns the listed maps.
func (m *Menu) Maps() []*grid.Map { return m.maps }

// Cursor returns the index of the highlighted map.
func (m *Menu) Cursor() int { return m.cursor }

// Update implements State.
func (m *Menu) Update(in core.InputFrame) (Transition, error) {
	for _, ev := range in.Events {
		if ev.Kind == core.EventQuit {
			return Quit(), nil
		}
		switch ev.Key {
		case core.KeyW:
			m.cursor = core.Mod(m.cursor-1, len(m.maps))
		case core.KeyS:
			m.cursor = core.Mod(m.cursor+1, len(m.maps))
		case core.KeySpace:
			selected := m.maps[m.cursor]
			m.env.Logger.Info("map selected", "map", selected.Name)
			return Replace(NewGame(m.env, selected)), nil
		}
	}
	return Continue(), nil
}

// menuChrome is the title, the blank line under it and the box borders.
const menuChrome = 4

// window returns the range of maps that fits in rows lines, keeping the
// cursor roughly centered.
func (m *Menu) window(rows int) (first, last int) {
	n := len(m.maps)
	rows = core.Max(rows, 1)
	if n <= rows {
		return 0, n
	}
	first = m.cursor - rows/2
	first = core.Max(first, 0)
	if first+rows > n {
		first = n - rows
	}
	return first, first + rows
}

// Render implements State. Long lists scroll with the cursor.
func (m *Menu) Render(dst *core.Screen) {
	dst.Clear()

	width := 0
	for _, gm := range m.maps {
		width = core.Max(width, len([]rune(gm.Name)))
	}
	first, last := m.window(dst.Height() - menuChrome)

	// Title, blank line, then the list in a box
	box := core.NewRect(0, 0, width+8, last-first+2)
	box.X = (dst.Width() - box.W) / 2
	box.Y = core.Max((dst.Height()-box.H-2)/2, 0) + 2

	dst.DrawTextCentered(box.Y-2, "N A T R I X", core.ColorTitle)
	dst.DrawBox(box, core.ColorDim)
	for i := first; i < last; i++ {
		name := m.maps[i].Name
		line := fmt.Sprintf("  %s  ", name)
		c := core.ColorDefault
		if i == m.cursor {
			line = fmt.Sprintf("> %s <", name)
			c = core.ColorSelected
		}
		dst.DrawTextCentered(box.Y+1+i-first, line, c)
	}
}
