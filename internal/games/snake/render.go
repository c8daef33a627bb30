package snake

import (
	"fmt"

	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/grid"
	"github.com/vovakirdan/natrix/internal/tile"
)

// Screen layout: a single HUD row above the board.
const (
	HUDRows    = 1
	MinScreenW = grid.Width
	MinScreenH = grid.Height + HUDRows
)

const floorGlyph = '·'

// wallGlyphs is indexed by the wall adjacency mask (up=1, right=2, down=4, left=8).
var wallGlyphs = [16]rune{
	0:  '■',
	1:  '║',
	2:  '═',
	3:  '╚',
	4:  '║',
	5:  '║',
	6:  '╔',
	7:  '╠',
	8:  '═',
	9:  '╝',
	10: '═',
	11: '╩',
	12: '╗',
	13: '╣',
	14: '╦',
	15: '█',
}

var headGlyphs = [4]rune{
	core.DirUp:    '▲',
	core.DirRight: '▶',
	core.DirDown:  '▼',
	core.DirLeft:  '◀',
}

// Tail glyphs point toward the rest of the body.
var tailGlyphs = [4]rune{
	core.DirUp:    '╹',
	core.DirRight: '╺',
	core.DirDown:  '╻',
	core.DirLeft:  '╸',
}

// turnGlyph returns the corner joining the incoming and outgoing segments.
// A turn tile stores the new heading and whether it was a clockwise turn,
// so each corner is reachable two ways.
func turnGlyph(dir core.Direction, cw bool) rune {
	switch {
	case dir == core.DirUp && !cw, dir == core.DirLeft && cw:
		return '┛'
	case dir == core.DirRight && !cw, dir == core.DirUp && cw:
		return '┗'
	case dir == core.DirDown && !cw, dir == core.DirRight && cw:
		return '┏'
	default:
		return '┓'
	}
}

// Glyph returns the rune and color used to draw a tile.
func Glyph(t tile.Tile) (rune, core.Color) {
	switch t.Kind() {
	case tile.KindWall:
		return wallGlyphs[t.Mask()&tile.WallMaskAll], core.ColorWall
	case tile.KindFood:
		return '●', core.ColorFood
	case tile.KindSnakeVertical:
		return '┃', core.ColorSnake
	case tile.KindSnakeHorizontal:
		return '━', core.ColorSnake
	case tile.KindSnakeTurn:
		return turnGlyph(t.Direction(), t.Clockwise()), core.ColorSnake
	case tile.KindSnakeTail:
		return tailGlyphs[t.Direction()], core.ColorSnake
	case tile.KindSnakeHead:
		return headGlyphs[t.Direction()], core.ColorSnakeHead
	default:
		return floorGlyph, core.ColorFloor
	}
}

// BoardOrigin returns the screen position of the board's top-left cell.
func BoardOrigin(w, h int) core.Point {
	return core.Pt((w-grid.Width)/2, HUDRows+(h-MinScreenH)/2)
}

// TooSmall reports whether a w*h screen cannot fit the board and HUD.
func TooSmall(w, h int) bool {
	return w < MinScreenW || h < MinScreenH
}

// DrawCell draws one board cell. Body segments are replaced by floor when
// hidden by the end-of-game blink.
func DrawCell(dst *core.Screen, origin core.Point, board *grid.Map, p core.Point, bodyVisible bool) {
	t := board.Get(p)
	if t.IsBody() && !bodyVisible {
		t = tile.Empty()
	}
	r, c := Glyph(t)
	dst.SetCell(origin.X+p.X, origin.Y+p.Y, r, c)
}

// DrawBoard draws every cell of the board.
func DrawBoard(dst *core.Screen, origin core.Point, board *grid.Map, bodyVisible bool) {
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			DrawCell(dst, origin, board, core.Pt(x, y), bodyVisible)
		}
	}
}

// DrawHUD draws the status row: score on the left, map name centered and
// the caption on the right.
func DrawHUD(dst *core.Screen, y int, st Status) {
	for x := 0; x < dst.Width(); x++ {
		dst.SetCell(x, y, ' ', core.ColorHUD)
	}
	dst.DrawText(0, y, fmt.Sprintf("Score: %d", st.Score), core.ColorHUD)
	dst.DrawTextCentered(y, st.MapName, core.ColorTitle)
	if caption := st.Caption(); caption != "" {
		dst.DrawTextRight(y, caption, core.ColorCaption)
	}
}

// Render draws the full game screen.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	if TooSmall(dst.Width(), dst.Height()) {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorTitle)
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("need %dx%d", MinScreenW, MinScreenH), core.ColorDim)
		return
	}

	st := s.Status()
	origin := BoardOrigin(dst.Width(), dst.Height())
	DrawHUD(dst, origin.Y-HUDRows, st)
	DrawBoard(dst, origin, s.board, st.BodyVisible())
}

// RenderCells redraws only the given cells and the HUD. The screen must
// already hold a full frame of the same size.
func (s *Session) RenderCells(dst *core.Screen, cells []core.Point) {
	if TooSmall(dst.Width(), dst.Height()) {
		return
	}

	st := s.Status()
	origin := BoardOrigin(dst.Width(), dst.Height())
	DrawHUD(dst, origin.Y-HUDRows, st)
	for _, p := range cells {
		DrawCell(dst, origin, s.board, p, st.BodyVisible())
	}
}
