// Package tile defines the closed set of states a grid cell can be in.
//
// A Tile is a small comparable value: grids store tiles by value and the
// game session replaces them wholesale on every transition, so there are no
// mutating methods here.
package tile

import (
	"fmt"

	"github.com/vovakirdan/natrix/internal/core"
)

// Kind is the variant of a Tile.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindWall
	KindFood
	KindSnakeVertical
	KindSnakeHorizontal
	KindSnakeTurn
	KindSnakeHead
	KindSnakeTail
)

// Wall adjacency bits. A set bit means the neighbor on that side is a wall
// (or lies outside the grid).
const (
	WallUp    uint8 = 1 << 0
	WallRight uint8 = 1 << 1
	WallDown  uint8 = 1 << 2
	WallLeft  uint8 = 1 << 3

	WallMaskAll = WallUp | WallRight | WallDown | WallLeft
)

// Tile is the content of one grid cell. The zero value is Empty.
type Tile struct {
	kind      Kind
	dir       core.Direction
	mask      uint8
	clockwise bool
}

// Empty returns an empty floor tile.
func Empty() Tile { return Tile{} }

// Wall returns a wall tile with the given adjacency mask (0..15).
func Wall(mask uint8) Tile { return Tile{kind: KindWall, mask: mask & WallMaskAll} }

// Food returns a food tile.
func Food() Tile { return Tile{kind: KindFood} }

// Vertical returns a straight vertical body segment.
func Vertical() Tile { return Tile{kind: KindSnakeVertical} }

// Horizontal returns a straight horizontal body segment.
func Horizontal() Tile { return Tile{kind: KindSnakeHorizontal} }

// Straight returns the straight body segment for a snake heading in d.
func Straight(d core.Direction) Tile {
	if d.IsVertical() {
		return Vertical()
	}
	return Horizontal()
}

// Turn returns a corner segment. dir is the heading the snake leaves the
// corner with; clockwise selects between the two corner shapes for that
// heading.
func Turn(dir core.Direction, clockwise bool) Tile {
	return Tile{kind: KindSnakeTurn, dir: dir, clockwise: clockwise}
}

// Head returns the snake head facing dir.
func Head(dir core.Direction) Tile { return Tile{kind: KindSnakeHead, dir: dir} }

// Tail returns the snake tail moving in dir.
func Tail(dir core.Direction) Tile { return Tile{kind: KindSnakeTail, dir: dir} }

// Kind returns the tile variant.
func (t Tile) Kind() Kind { return t.kind }

// Direction returns the heading carried by turn, head and tail tiles.
func (t Tile) Direction() core.Direction { return t.dir }

// Mask returns the wall adjacency mask. Zero for non-wall tiles.
func (t Tile) Mask() uint8 { return t.mask }

// Clockwise returns the corner flag of a turn tile.
func (t Tile) Clockwise() bool { return t.clockwise }

// IsEmpty reports whether the tile is empty floor.
func (t Tile) IsEmpty() bool { return t.kind == KindEmpty }

// IsWall reports whether the tile is a wall.
func (t Tile) IsWall() bool { return t.kind == KindWall }

// IsSnake reports whether the tile is any part of the snake.
func (t Tile) IsSnake() bool {
	return t.kind >= KindSnakeVertical && t.kind <= KindSnakeTail
}

// IsBody reports whether the tile is a snake segment other than the head.
// These are the segments the head dies on.
func (t Tile) IsBody() bool {
	switch t.kind {
	case KindSnakeVertical, KindSnakeHorizontal, KindSnakeTurn, KindSnakeTail:
		return true
	}
	return false
}

// String returns a debug representation of the tile.
func (t Tile) String() string {
	switch t.kind {
	case KindEmpty:
		return "Empty"
	case KindWall:
		return fmt.Sprintf("Wall(%d)", t.mask)
	case KindFood:
		return "Food"
	case KindSnakeVertical:
		return "SnakeVertical"
	case KindSnakeHorizontal:
		return "SnakeHorizontal"
	case KindSnakeTurn:
		return fmt.Sprintf("SnakeTurn(%v, %v)", t.dir, t.clockwise)
	case KindSnakeHead:
		return fmt.Sprintf("SnakeHead(%v)", t.dir)
	case KindSnakeTail:
		return fmt.Sprintf("SnakeTail(%v)", t.dir)
	default:
		return "Unknown"
	}
}
