// Package core provides fundamental types and utilities shared by the game
// packages. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

import "fmt"

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

// Pt is a convenience constructor for Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Wrap returns the point one step in direction d on a w*h torus.
// Leaving one edge re-enters at the opposite edge.
func (p Point) Wrap(d Direction, w, h int) Point {
	dx, dy := d.Delta()
	return Point{
		X: Mod(p.X+dx, w),
		Y: Mod(p.Y+dy, h),
	}
}

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Mod returns the non-negative remainder of a divided by n.
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
