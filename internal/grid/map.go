// Package grid holds the tile map a game is played on: a fixed 32x23 grid
// of tiles with a name and a spawn point, plus the parsers and loaders that
// produce maps from text and YAML sources.
package grid

import (
	"strings"

	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/tile"
)

// Grid dimensions in cells.
const (
	Width  = 32
	Height = 23
)

// DefaultName and DefaultSpawn describe the built-in empty arena.
const DefaultName = "Default"

var DefaultSpawn = core.Pt(5, 5)

// Map is a named tile grid with a spawn point.
// Tiles are stored in row-major order: index = y*Width + x.
// Map is a plain value; Clone (or assignment) copies every tile.
type Map struct {
	Name  string
	Spawn core.Point
	tiles [Width * Height]tile.Tile
}

// New returns the default empty arena.
func New() *Map {
	return &Map{
		Name:  DefaultName,
		Spawn: DefaultSpawn,
	}
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	c := *m
	return &c
}

func index(x, y int) int {
	return y*Width + x
}

// InBounds returns true if the coordinate is within the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the tile at (x, y). Out-of-bounds reads return Empty.
func (m *Map) At(x, y int) tile.Tile {
	if !InBounds(x, y) {
		return tile.Empty()
	}
	return m.tiles[index(x, y)]
}

// Get returns the tile at p.
func (m *Map) Get(p core.Point) tile.Tile {
	return m.At(p.X, p.Y)
}

// Set writes a tile at p. Out-of-bounds writes are ignored.
func (m *Map) Set(p core.Point, t tile.Tile) {
	if InBounds(p.X, p.Y) {
		m.tiles[index(p.X, p.Y)] = t
	}
}

// IsWall reports whether (x, y) is outside the grid or holds a wall.
func (m *Map) IsWall(x, y int) bool {
	if !InBounds(x, y) {
		return true
	}
	return m.tiles[index(x, y)].IsWall()
}

// ComputeWallMasks recomputes the adjacency mask of every wall tile from its
// four orthogonal neighbors. It only reads whether a neighbor is a wall, not
// its mask, so the single pass is order-independent.
func (m *Map) ComputeWallMasks() {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if !m.tiles[index(x, y)].IsWall() {
				continue
			}
			var mask uint8
			if m.IsWall(x, y-1) {
				mask |= tile.WallUp
			}
			if m.IsWall(x+1, y) {
				mask |= tile.WallRight
			}
			if m.IsWall(x, y+1) {
				mask |= tile.WallDown
			}
			if m.IsWall(x-1, y) {
				mask |= tile.WallLeft
			}
			m.tiles[index(x, y)] = tile.Wall(mask)
		}
	}
}

// Cells returns the coordinates of every cell holding a tile of kind k,
// ordered by row then column.
func (m *Map) Cells(k tile.Kind) []core.Point {
	var out []core.Point
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if m.tiles[index(x, y)].Kind() == k {
				out = append(out, core.Pt(x, y))
			}
		}
	}
	return out
}

// Count returns how many cells satisfy fn.
func (m *Map) Count(fn func(tile.Tile) bool) int {
	n := 0
	for _, t := range m.tiles {
		if fn(t) {
			n++
		}
	}
	return n
}

// Equal reports whether two maps have the same name, spawn and tiles.
func (m *Map) Equal(other *Map) bool {
	return m.Name == other.Name && m.Spawn == other.Spawn && m.tiles == other.tiles
}

// Text serializes the template back into the text map format.
// Only walls and the spawn marker survive; trailing blanks are trimmed.
func (m *Map) Text() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte('\n')
	for y := 0; y < Height; y++ {
		row := make([]byte, Width)
		for x := 0; x < Width; x++ {
			switch {
			case m.Spawn == core.Pt(x, y):
				row[x] = spawnMarker
			case m.tiles[index(x, y)].IsWall():
				row[x] = wallMarker
			default:
				row[x] = ' '
			}
		}
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
