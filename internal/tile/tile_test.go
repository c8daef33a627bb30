package tile

import (
	"testing"

	"github.com/vovakirdan/natrix/internal/core"
)

func TestZeroValueIsEmpty(t *testing.T) {
	var z Tile
	if !z.IsEmpty() {
		t.Error("zero Tile should be empty")
	}
	if z != Empty() {
		t.Error("zero Tile should equal Empty()")
	}
}

func TestQueries(t *testing.T) {
	tests := []struct {
		name                   string
		tile                   Tile
		empty, wall, snake, bd bool
	}{
		{"empty", Empty(), true, false, false, false},
		{"wall", Wall(5), false, true, false, false},
		{"food", Food(), false, false, false, false},
		{"vertical", Vertical(), false, false, true, true},
		{"horizontal", Horizontal(), false, false, true, true},
		{"turn", Turn(core.DirUp, true), false, false, true, true},
		{"head", Head(core.DirLeft), false, false, true, false},
		{"tail", Tail(core.DirDown), false, false, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.tile.IsEmpty() != tc.empty {
				t.Errorf("IsEmpty() = %v, expected %v", tc.tile.IsEmpty(), tc.empty)
			}
			if tc.tile.IsWall() != tc.wall {
				t.Errorf("IsWall() = %v, expected %v", tc.tile.IsWall(), tc.wall)
			}
			if tc.tile.IsSnake() != tc.snake {
				t.Errorf("IsSnake() = %v, expected %v", tc.tile.IsSnake(), tc.snake)
			}
			if tc.tile.IsBody() != tc.bd {
				t.Errorf("IsBody() = %v, expected %v", tc.tile.IsBody(), tc.bd)
			}
		})
	}
}

func TestWallMaskIsClamped(t *testing.T) {
	if got := Wall(0xFF).Mask(); got != WallMaskAll {
		t.Errorf("Wall(0xFF).Mask() = %d, expected %d", got, WallMaskAll)
	}
	if Wall(3) == Wall(4) {
		t.Error("walls with different masks should not be equal")
	}
}

func TestStraight(t *testing.T) {
	if Straight(core.DirUp) != Vertical() || Straight(core.DirDown) != Vertical() {
		t.Error("vertical headings should give SnakeVertical")
	}
	if Straight(core.DirLeft) != Horizontal() || Straight(core.DirRight) != Horizontal() {
		t.Error("horizontal headings should give SnakeHorizontal")
	}
}

func TestTurnEquality(t *testing.T) {
	if Turn(core.DirUp, true) == Turn(core.DirUp, false) {
		t.Error("corner flag should distinguish turn tiles")
	}
	if Turn(core.DirUp, true) != Turn(core.DirUp, true) {
		t.Error("identical turn tiles should be equal")
	}
	if got := Turn(core.DirRight, false).String(); got != "SnakeTurn(right, false)" {
		t.Errorf("String() = %q", got)
	}
}
