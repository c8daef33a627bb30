package snake

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/grid"
	"github.com/vovakirdan/natrix/internal/tile"
)

// newTestSession starts a session on the empty default map with the food
// removed, so the snake only eats what a test puts down.
func newTestSession(t *testing.T, m *grid.Map) *Session {
	t.Helper()
	if m == nil {
		m = grid.New()
	}
	s := NewSession(m, rand.New(rand.NewSource(1)), DefaultOptions())
	for _, p := range s.board.Cells(tile.KindFood) {
		s.board.Set(p, tile.Empty())
	}
	return s
}

func step(t *testing.T, s *Session, keys ...core.Key) StepResult {
	t.Helper()
	in := core.NewInputFrame()
	for _, k := range keys {
		in.PushKey(k)
	}
	res, err := s.Step(in)
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	return res
}

func countSnake(m *grid.Map) int {
	return m.Count(tile.Tile.IsSnake)
}

func TestNewSessionPlacesHeadAndFood(t *testing.T) {
	m := grid.New()
	s := NewSession(m, rand.New(rand.NewSource(7)), DefaultOptions())

	if got := s.Board().Get(m.Spawn); got != tile.Head(core.DirRight) {
		t.Errorf("spawn tile = %v, expected head facing right", got)
	}
	if n := len(s.Board().Cells(tile.KindFood)); n != 1 {
		t.Errorf("expected exactly one food, got %d", n)
	}
	if !m.Equal(grid.New()) {
		t.Error("session must not modify the template map")
	}
	st := s.Status()
	if !st.Playing() || st.Score != 0 || st.MapName != grid.DefaultName {
		t.Errorf("unexpected initial status %+v", st)
	}
}

func TestGrowthInvariant(t *testing.T) {
	s := newTestSession(t, nil)

	for i := 1; i <= DefaultInitialGrow; i++ {
		step(t, s)
		if n := countSnake(s.Board()); n != i+1 {
			t.Fatalf("after %d ticks snake occupies %d cells, expected %d", i, n, i+1)
		}
	}

	for i := 0; i < 5; i++ {
		step(t, s)
		if n := countSnake(s.Board()); n != DefaultInitialGrow+1 {
			t.Fatalf("snake should keep length %d once grown, got %d", DefaultInitialGrow+1, n)
		}
	}

	// One food adds FoodGrow cells.
	ahead := s.Snake().Head.Pos.Wrap(core.DirRight, grid.Width, grid.Height)
	s.board.Set(ahead, tile.Food())
	step(t, s)
	for _, p := range s.board.Cells(tile.KindFood) {
		s.board.Set(p, tile.Empty())
	}
	for i := 0; i < DefaultFoodGrow+3; i++ {
		step(t, s)
	}
	if n := countSnake(s.Board()); n != DefaultInitialGrow+1+DefaultFoodGrow {
		t.Errorf("after one food snake occupies %d cells, expected %d", n, DefaultInitialGrow+1+DefaultFoodGrow)
	}
}

func TestTailFollowsBody(t *testing.T) {
	s := newTestSession(t, nil)
	for i := 0; i < DefaultInitialGrow+1; i++ {
		step(t, s)
	}

	sn := s.Snake()
	if sn.Tail.Pos != core.Pt(6, 5) {
		t.Errorf("tail at %v, expected (6,5)", sn.Tail.Pos)
	}
	if got := s.Board().Get(sn.Tail.Pos); got != tile.Tail(core.DirRight) {
		t.Errorf("tail tile = %v", got)
	}
	if !s.Board().Get(core.Pt(5, 5)).IsEmpty() {
		t.Error("spawn cell should be empty once the tail has moved on")
	}
}

func TestHeadWrapsAround(t *testing.T) {
	m := grid.New()
	m.Spawn = core.Pt(grid.Width-1, 5)
	s := newTestSession(t, m)

	step(t, s)
	if got := s.Snake().Head.Pos; got != core.Pt(0, 5) {
		t.Errorf("head at %v, expected (0,5)", got)
	}

	step(t, s, core.KeyW)
	for i := 0; i < 5; i++ {
		step(t, s)
	}
	if got := s.Snake().Head.Pos; got != core.Pt(0, grid.Height-1) {
		t.Errorf("head at %v, expected (0,%d)", got, grid.Height-1)
	}
}

func TestTurnTiles(t *testing.T) {
	// Keys that bring a fresh snake (heading right) to each heading.
	setup := map[core.Direction][]core.Key{
		core.DirRight: nil,
		core.DirDown:  {core.KeyS},
		core.DirUp:    {core.KeyW},
		core.DirLeft:  {core.KeyW, core.KeyA},
	}
	keyFor := map[core.Direction]core.Key{
		core.DirUp:    core.KeyW,
		core.DirRight: core.KeyD,
		core.DirDown:  core.KeyS,
		core.DirLeft:  core.KeyA,
	}

	tests := []struct {
		from, to core.Direction
		cw       bool
	}{
		{core.DirRight, core.DirDown, true},
		{core.DirDown, core.DirLeft, true},
		{core.DirLeft, core.DirUp, true},
		{core.DirUp, core.DirRight, true},
		{core.DirRight, core.DirUp, false},
		{core.DirUp, core.DirLeft, false},
		{core.DirLeft, core.DirDown, false},
		{core.DirDown, core.DirRight, false},
	}

	for _, tc := range tests {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			s := newTestSession(t, nil)
			for _, k := range setup[tc.from] {
				step(t, s, k)
			}
			if s.Snake().Head.Dir != tc.from {
				t.Fatalf("setup heading = %v, expected %v", s.Snake().Head.Dir, tc.from)
			}

			corner := s.Snake().Head.Pos
			step(t, s, keyFor[tc.to])

			if got := s.Board().Get(corner); got != tile.Turn(tc.to, tc.cw) {
				t.Errorf("corner tile = %v, expected %v", got, tile.Turn(tc.to, tc.cw))
			}
			if s.Snake().Head.Dir != tc.to {
				t.Errorf("heading = %v, expected %v", s.Snake().Head.Dir, tc.to)
			}
		})
	}
}

func TestNoImmediateReversal(t *testing.T) {
	s := newTestSession(t, nil)

	step(t, s, core.KeyA)

	sn := s.Snake()
	if sn.Head.Dir != core.DirRight {
		t.Errorf("reversal should be ignored, heading = %v", sn.Head.Dir)
	}
	if sn.Head.Pos != core.Pt(6, 5) {
		t.Errorf("head at %v, expected (6,5)", sn.Head.Pos)
	}
	if got := s.Board().Get(core.Pt(5, 5)); got != tile.Horizontal() {
		t.Errorf("cell behind head = %v, expected horizontal", got)
	}
	if !s.Alive() {
		t.Error("snake should still be alive")
	}
}

func TestLastSteeringKeyWins(t *testing.T) {
	s := newTestSession(t, nil)
	step(t, s, core.KeyS, core.KeyW)

	if got := s.Snake().Head.Dir; got != core.DirUp {
		t.Errorf("heading = %v, expected up", got)
	}
}

func TestWallCollision(t *testing.T) {
	m := grid.New()
	m.Set(core.Pt(8, 5), tile.Wall(0))
	m.ComputeWallMasks()
	s := newTestSession(t, m)

	step(t, s)
	step(t, s)
	res := step(t, s)

	if s.Alive() {
		t.Fatal("snake should die on the wall")
	}
	if res.Status.State != StateGameOver || res.Status.Cause != CauseWall {
		t.Errorf("status = %+v, expected game over by wall", res.Status)
	}
	if got := s.Board().Get(core.Pt(8, 5)); got != tile.Wall(0) {
		t.Errorf("wall tile should be left untouched, got %v", got)
	}
	if n := len(s.Board().Cells(tile.KindSnakeHead)); n != 0 {
		t.Errorf("no head tile should remain after death, got %d", n)
	}
}

func TestSelfCollision(t *testing.T) {
	s := newTestSession(t, nil)

	step(t, s, core.KeyS) // corner at (5,5)
	step(t, s, core.KeyA)
	step(t, s, core.KeyW)
	before := s.Board().Get(core.Pt(5, 5))
	res := step(t, s, core.KeyD) // back into (5,5)

	if s.Alive() {
		t.Fatal("snake should die on its own body")
	}
	if res.Status.Cause != CauseSelf {
		t.Errorf("cause = %q, expected self", res.Status.Cause)
	}
	if got := s.Board().Get(core.Pt(5, 5)); got != before {
		t.Errorf("body tile changed on collision: %v -> %v", before, got)
	}
}

func TestCollisionWithEachBodyTile(t *testing.T) {
	tests := []struct {
		name string
		body tile.Tile
	}{
		{"tail", tile.Tail(core.DirLeft)},
		{"vertical", tile.Vertical()},
		{"horizontal", tile.Horizontal()},
		{"turn", tile.Turn(core.DirUp, false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, nil)
			s.board.Set(core.Pt(6, 5), tt.body)

			res := step(t, s)

			if s.Alive() || res.Status.Cause != CauseSelf {
				t.Fatalf("expected death by self, status %+v", res.Status)
			}
			if got := s.Board().Get(core.Pt(6, 5)); got != tt.body {
				t.Errorf("body tile changed on collision: %v -> %v", tt.body, got)
			}
		})
	}
}

func TestEatFood(t *testing.T) {
	s := newTestSession(t, nil)
	s.board.Set(core.Pt(6, 5), tile.Food())

	res := step(t, s)

	if res.Status.Score != 1 || s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}
	if got := s.Snake().Grow; got != DefaultInitialGrow-1+DefaultFoodGrow {
		t.Errorf("grow = %d, expected %d", got, DefaultInitialGrow-1+DefaultFoodGrow)
	}
	if got := s.Board().Get(core.Pt(6, 5)); got != tile.Head(core.DirRight) {
		t.Errorf("head tile = %v", got)
	}

	food := s.Board().Cells(tile.KindFood)
	if len(food) != 1 {
		t.Fatalf("expected one new food, got %d", len(food))
	}
	found := false
	for _, p := range res.Dirty {
		if p == food[0] {
			found = true
		}
	}
	if !found {
		t.Errorf("new food cell %v should be reported dirty", food[0])
	}
}

func TestFoodFallbackScan(t *testing.T) {
	m := grid.New()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			m.Set(core.Pt(x, y), tile.Wall(0))
		}
	}
	m.Set(core.Pt(3, 3), tile.Empty())
	m.Set(core.Pt(4, 3), tile.Empty())
	m.Spawn = core.Pt(3, 3)
	m.ComputeWallMasks()

	opts := DefaultOptions()
	opts.MaxFoodAttempts = 0
	s := NewSession(m, rand.New(rand.NewSource(3)), opts)

	if got := s.Board().Get(core.Pt(4, 3)); got != tile.Food() {
		t.Fatalf("food should land in the only empty cell, got %v", got)
	}

	res := step(t, s)
	if !s.Cleared() || res.Status.State != StateCleared {
		t.Errorf("eating the last food with no room left should clear the board, status %+v", res.Status)
	}
	if !s.Alive() {
		t.Error("a cleared board is not a death")
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}

	head := s.Snake().Head.Pos
	step(t, s, core.KeyS)
	if s.Snake().Head.Pos != head {
		t.Error("snake should stop once the board is cleared")
	}
}

func TestDeadSessionBlinks(t *testing.T) {
	m := grid.New()
	m.Set(core.Pt(6, 5), tile.Wall(0))
	s := newTestSession(t, m)

	res := step(t, s)
	if s.Alive() {
		t.Fatal("expected death")
	}
	if !res.Status.BodyVisible() {
		t.Error("body should be visible on the frame of death")
	}

	res = step(t, s)
	if !res.Status.BodyVisible() || res.Status.Caption() != "R restart   M menu" {
		t.Errorf("first tick after death should still show body and caption, status %+v", res.Status)
	}

	res = step(t, s)
	if res.Status.Blink || res.Status.BodyVisible() || res.Status.Caption() != "" {
		t.Errorf("second dead tick should hide body and caption, status %+v", res.Status)
	}
	if len(res.Dirty) == 0 {
		t.Error("blink should mark the body cells dirty")
	}

	res = step(t, s)
	if !res.Status.Blink || res.Status.Caption() != "R restart   M menu" {
		t.Errorf("third dead tick should show the caption, got %q", res.Status.Caption())
	}

	// Steering is ignored while dead.
	head := s.Snake().Head
	step(t, s, core.KeyS)
	if s.Snake().Head != head {
		t.Error("dead snake should not move")
	}
}

func TestRestart(t *testing.T) {
	m := grid.New()
	m.Set(core.Pt(7, 5), tile.Wall(0))
	s := newTestSession(t, m)

	s.board.Set(core.Pt(6, 5), tile.Food())
	step(t, s)
	step(t, s)
	if s.Alive() || s.Score() != 1 {
		t.Fatalf("setup failed: alive=%v score=%d", s.Alive(), s.Score())
	}

	res := step(t, s, core.KeyR)

	if !s.Alive() || s.Score() != 0 {
		t.Errorf("restart should revive with score 0, alive=%v score=%d", s.Alive(), s.Score())
	}
	if !res.Redraw {
		t.Error("restart should request a full redraw")
	}
	if res.Request != RequestNone {
		t.Errorf("request = %v, expected none", res.Request)
	}
	if n := countSnake(s.Board()); n != 1 {
		t.Errorf("restarted snake occupies %d cells, expected 1", n)
	}
	if got := s.Board().Get(m.Spawn); got != tile.Head(core.DirRight) {
		t.Errorf("spawn tile = %v", got)
	}
	if n := len(s.Board().Cells(tile.KindFood)); n != 1 {
		t.Errorf("expected one food after restart, got %d", n)
	}
	if s.Snake().Grow != DefaultInitialGrow {
		t.Errorf("grow = %d, expected %d", s.Snake().Grow, DefaultInitialGrow)
	}
}

func TestRequests(t *testing.T) {
	m := grid.New()
	m.Set(core.Pt(6, 5), tile.Wall(0))
	s := newTestSession(t, m)

	// Menu is only honored after death.
	if res := step(t, s, core.KeyM); res.Request != RequestNone {
		t.Errorf("M while dead-on-this-tick = %v", res.Request)
	}
	if res := step(t, s, core.KeyM); res.Request != RequestMenu {
		t.Errorf("M while dead = %v, expected menu", res.Request)
	}

	res, err := s.Step(core.NewInputFrame(core.Quit()))
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if res.Request != RequestQuit {
		t.Errorf("quit event = %v, expected quit", res.Request)
	}
}

func TestQuitStopsTheTick(t *testing.T) {
	s := newTestSession(t, nil)
	res, err := s.Step(core.NewInputFrame(core.KeyDown(core.KeyS), core.Quit()))
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if res.Request != RequestQuit {
		t.Fatalf("request = %v, expected quit", res.Request)
	}
	if s.Snake().Head.Pos != grid.DefaultSpawn {
		t.Error("snake should not move on a quit tick")
	}
}

func TestCorruptGrid(t *testing.T) {
	s := newTestSession(t, nil)
	step(t, s)
	step(t, s)

	s.snake.Grow = 0
	s.board.Set(core.Pt(6, 5), tile.Empty())

	_, err := s.Step(core.NewInputFrame())
	if !errors.Is(err, ErrCorruptGrid) {
		t.Errorf("expected ErrCorruptGrid, got %v", err)
	}
}

func TestSmallInitialGrowIsRaised(t *testing.T) {
	opts := DefaultOptions()
	opts.InitialGrow = 0
	s := NewSession(grid.New(), rand.New(rand.NewSource(1)), opts)
	for _, p := range s.board.Cells(tile.KindFood) {
		s.board.Set(p, tile.Empty())
	}

	for i := 0; i < 10; i++ {
		if _, err := s.Step(core.NewInputFrame()); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if n := countSnake(s.Board()); n != 3 {
		t.Errorf("snake occupies %d cells, expected 3", n)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(grid.New(), rand.New(rand.NewSource(12345)), DefaultOptions())
		keys := []core.Key{core.KeyS, core.KeyA, core.KeyW, core.KeyD}
		for i := 0; i < 200; i++ {
			in := core.NewInputFrame()
			if i%7 == 0 {
				in.PushKey(keys[(i/7)%len(keys)])
			}
			if _, err := s.Step(in); err != nil {
				t.Fatalf("tick %d: %v", i, err)
			}
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed and input should give the same snapshot:\n%+v\n%+v", a, b)
	}
	if a.Tick != 200 {
		t.Errorf("Tick = %d, expected 200", a.Tick)
	}
}
