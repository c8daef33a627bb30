// Package snake implements the Natrix game session: a snake steered around
// a grid map, growing on food and dying on walls or its own body.
//
// The snake is not stored as a list of segments. Its body lives in the grid
// itself as straight, turn and tail tiles, and only the two ends are tracked.
// The tail follows the turn tiles the head leaves behind.
package snake

import (
	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/grid"
)

// Growth defaults.
const (
	DefaultInitialGrow = 10 // ticks before the tail starts trailing
	DefaultFoodGrow    = 5  // extra length per food eaten
)

// End is one end of the snake: a cell and the heading it moves in.
type End struct {
	Pos core.Point
	Dir core.Direction
}

// Advance moves the end one cell in its direction, wrapping around the grid.
func (e *End) Advance() {
	e.Pos = e.Pos.Wrap(e.Dir, grid.Width, grid.Height)
}

// Snake tracks the head and tail cursors and the pending growth.
type Snake struct {
	Head End
	Tail End

	// Grow is the number of upcoming ticks on which the tail stays put.
	Grow int
}

// New creates a one-cell snake at (x, y) heading in dir.
func New(x, y int, dir core.Direction) Snake {
	start := End{Pos: core.Pt(x, y), Dir: dir}
	return Snake{
		Head: start,
		Tail: start,
		Grow: DefaultInitialGrow,
	}
}
