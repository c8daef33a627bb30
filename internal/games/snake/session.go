package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/grid"
	"github.com/vovakirdan/natrix/internal/tile"
)

// ErrCorruptGrid is returned by Step when the grid no longer matches the
// snake, e.g. the tail moves onto a cell that is not part of the body.
var ErrCorruptGrid = errors.New("snake: grid out of sync with snake")

// Options tune the session rules.
type Options struct {
	InitialGrow     int // must be at least 2 so the tail has a body to follow
	FoodGrow        int
	MaxFoodAttempts int // random probes before falling back to a full scan
}

// DefaultOptions returns the classic rules.
func DefaultOptions() Options {
	return Options{
		InitialGrow:     DefaultInitialGrow,
		FoodGrow:        DefaultFoodGrow,
		MaxFoodAttempts: 1000,
	}
}

func (o Options) normalized() Options {
	if o.InitialGrow < 2 {
		o.InitialGrow = 2
	}
	if o.FoodGrow < 0 {
		o.FoodGrow = 0
	}
	if o.MaxFoodAttempts < 0 {
		o.MaxFoodAttempts = 0
	}
	return o
}

// Request is something the session asks of its owner after a step.
type Request int

const (
	RequestNone Request = iota
	RequestQuit
	RequestMenu
)

// DeathCause tells what the snake ran into.
type DeathCause string

const (
	CauseNone DeathCause = ""
	CauseWall DeathCause = "wall"
	CauseSelf DeathCause = "self"
)

// Status is the session metadata shown around the board.
type Status struct {
	Score   int
	MapName string
	State   GameStateType
	Cause   DeathCause

	// Blink alternates every tick once the game has ended. When false the
	// body and the caption are hidden.
	Blink bool
}

// Playing reports whether the snake is still moving.
func (s Status) Playing() bool {
	return s.State == StatePlaying
}

// BodyVisible reports whether body tiles should be drawn this frame.
func (s Status) BodyVisible() bool {
	return s.Playing() || s.Blink
}

// Caption returns the status caption for this frame, empty when hidden.
func (s Status) Caption() string {
	if s.Playing() || !s.Blink {
		return ""
	}
	if s.State == StateCleared {
		return "Board cleared!  R restart   M menu"
	}
	return "R restart   M menu"
}

// StepResult is returned by Step after each tick.
type StepResult struct {
	Status  Status
	Request Request

	// Dirty lists the cells that changed or must be redrawn this tick.
	Dirty []core.Point
	// Redraw is set when the whole board was replaced.
	Redraw bool
}

// Session is one playthrough on one map.
type Session struct {
	opts    Options
	rng     *rand.Rand
	initial *grid.Map
	board   *grid.Map
	snake   Snake

	tick    uint64
	score   int
	alive   bool
	cleared bool
	blink   bool
	cause   DeathCause

	// holdBlink keeps the body shown for the first tick after the game ends.
	holdBlink bool

	dirty  []core.Point
	redraw bool
}

// NewSession starts a game on a copy of m. The template itself is never
// modified. A nil rng is seeded from the clock.
func NewSession(m *grid.Map, rng *rand.Rand, opts Options) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		opts:    opts.normalized(),
		rng:     rng,
		initial: m.Clone(),
	}
	s.reset()
	return s
}

// reset restores the board from the retained template and respawns the snake.
func (s *Session) reset() {
	s.board = s.initial.Clone()
	s.snake = New(s.board.Spawn.X, s.board.Spawn.Y, core.DirRight)
	s.snake.Grow = s.opts.InitialGrow
	s.tick = 0
	s.score = 0
	s.alive = true
	s.cleared = false
	s.blink = true
	s.holdBlink = false
	s.cause = CauseNone
	s.redraw = true

	// The head is on the board from the start so food never lands under it.
	s.board.Set(s.snake.Head.Pos, tile.Head(s.snake.Head.Dir))
	if !s.placeFood() {
		s.clear()
	}
}

func (s *Session) playing() bool {
	return s.alive && !s.cleared
}

// Step consumes one input frame and advances the simulation by one tick.
//
// Events are read in order. Quit always ends the step. While playing, the
// last steering key wins. After the game has ended only R (restart) and
// M (menu) are honored, and the tick just toggles the blink flag. The
// first tick after the end keeps the body shown.
func (s *Session) Step(in core.InputFrame) (StepResult, error) {
	s.tick++
	s.dirty = s.dirty[:0]
	s.redraw = false

	next := s.snake.Head.Dir
	for _, ev := range in.Events {
		if ev.Kind == core.EventQuit {
			return s.result(RequestQuit), nil
		}
		if s.playing() {
			if d, ok := ev.Key.SteerDirection(); ok {
				next = d
			}
			continue
		}
		switch ev.Key {
		case core.KeyR:
			s.reset()
			return s.result(RequestNone), nil
		case core.KeyM:
			return s.result(RequestMenu), nil
		}
	}

	if !s.playing() {
		if s.holdBlink {
			s.holdBlink = false
		} else {
			s.blink = !s.blink
		}
		s.dirty = append(s.dirty, s.board.Cells(tile.KindSnakeVertical)...)
		s.dirty = append(s.dirty, s.board.Cells(tile.KindSnakeHorizontal)...)
		s.dirty = append(s.dirty, s.board.Cells(tile.KindSnakeTurn)...)
		s.dirty = append(s.dirty, s.board.Cells(tile.KindSnakeTail)...)
		return s.result(RequestNone), nil
	}

	if err := s.move(next); err != nil {
		return s.result(RequestNone), err
	}
	return s.result(RequestNone), nil
}

// move runs the tail step, the turn decision and the head advance.
func (s *Session) move(next core.Direction) error {
	tail := &s.snake.Tail
	if s.snake.Grow > 0 {
		s.snake.Grow--
	} else {
		s.set(tail.Pos, tile.Empty())
		tail.Advance()

		t := s.board.Get(tail.Pos)
		switch t.Kind() {
		case tile.KindSnakeTurn:
			tail.Dir = t.Direction()
		case tile.KindSnakeVertical, tile.KindSnakeHorizontal:
		default:
			return fmt.Errorf("%w: tail moved onto %v at %v", ErrCorruptGrid, t, tail.Pos)
		}
		s.set(tail.Pos, tile.Tail(tail.Dir))
	}

	head := &s.snake.Head
	if next != head.Dir && next != head.Dir.Opposite() {
		s.set(head.Pos, tile.Turn(next, core.IsClockwiseTurn(head.Dir, next)))
		head.Dir = next
	} else {
		s.set(head.Pos, tile.Straight(head.Dir))
	}

	head.Advance()

	t := s.board.Get(head.Pos)
	switch {
	case t.Kind() == tile.KindFood:
		s.score++
		s.snake.Grow += s.opts.FoodGrow
		if !s.placeFood() {
			s.clear()
		}
	case t.IsWall():
		s.die(CauseWall)
	case t.IsBody():
		s.die(CauseSelf)
	case t.Kind() == tile.KindSnakeHead:
		return fmt.Errorf("%w: second head at %v", ErrCorruptGrid, head.Pos)
	}

	// On death the fatal cell keeps its tile so the last frame shows the crash.
	if s.alive {
		s.set(head.Pos, tile.Head(head.Dir))
	}
	return nil
}

func (s *Session) die(cause DeathCause) {
	s.alive = false
	s.cause = cause
	s.blink = true
	s.holdBlink = true
	s.dirty = append(s.dirty, s.snake.Head.Pos)
}

func (s *Session) clear() {
	s.cleared = true
	s.blink = true
	s.holdBlink = true
}

// placeFood drops food on a uniformly random empty cell. Random probing is
// bounded; after that the empty cells are enumerated. Returns false only when
// the board has no empty cell left.
func (s *Session) placeFood() bool {
	for i := 0; i < s.opts.MaxFoodAttempts; i++ {
		p := core.Pt(s.rng.Intn(grid.Width), s.rng.Intn(grid.Height))
		if s.board.Get(p).IsEmpty() {
			s.set(p, tile.Food())
			return true
		}
	}

	empty := s.board.Cells(tile.KindEmpty)
	if len(empty) == 0 {
		return false
	}
	s.set(empty[s.rng.Intn(len(empty))], tile.Food())
	return true
}

func (s *Session) set(p core.Point, t tile.Tile) {
	s.board.Set(p, t)
	s.dirty = append(s.dirty, p)
}

func (s *Session) result(req Request) StepResult {
	dirty := make([]core.Point, len(s.dirty))
	copy(dirty, s.dirty)
	return StepResult{
		Status:  s.Status(),
		Request: req,
		Dirty:   dirty,
		Redraw:  s.redraw,
	}
}

// Status returns the current session metadata.
func (s *Session) Status() Status {
	state := StatePlaying
	switch {
	case !s.alive:
		state = StateGameOver
	case s.cleared:
		state = StateCleared
	}
	return Status{
		Score:   s.score,
		MapName: s.board.Name,
		State:   state,
		Cause:   s.cause,
		Blink:   s.blink,
	}
}

// Board returns the live board. Callers must treat it as read-only.
func (s *Session) Board() *grid.Map {
	return s.board
}

// Snake returns a copy of the snake cursors.
func (s *Session) Snake() Snake {
	return s.snake
}

// Score returns the number of food eaten.
func (s *Session) Score() int {
	return s.score
}

// Alive reports whether the snake has not crashed.
func (s *Session) Alive() bool {
	return s.alive
}

// Cleared reports whether the board ran out of room for food.
func (s *Session) Cleared() bool {
	return s.cleared
}
