package snake

import (
	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/tile"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateGameOver GameStateType = "game_over"
	StateCleared  GameStateType = "cleared"
)

// Snapshot captures the session state for determinism testing.
type Snapshot struct {
	Tick    uint64
	MapName string
	Score   int
	Grow    int
	Head    core.Point
	HeadDir core.Direction
	Tail    core.Point
	TailDir core.Direction
	Food    core.Point // (-1,-1) when there is no food on the board
	BodyLen int        // occupied snake cells, head included
	State   GameStateType
	Cause   DeathCause
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	food := core.Pt(-1, -1)
	if cells := s.board.Cells(tile.KindFood); len(cells) > 0 {
		food = cells[0]
	}

	st := s.Status()
	return Snapshot{
		Tick:    s.tick,
		MapName: s.board.Name,
		Score:   s.score,
		Grow:    s.snake.Grow,
		Head:    s.snake.Head.Pos,
		HeadDir: s.snake.Head.Dir,
		Tail:    s.snake.Tail.Pos,
		TailDir: s.snake.Tail.Dir,
		Food:    food,
		BodyLen: s.board.Count(tile.Tile.IsSnake),
		State:   st.State,
		Cause:   st.Cause,
	}
}
