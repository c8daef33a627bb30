package app

import (
	"fmt"

	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/games/snake"
	"github.com/vovakirdan/natrix/internal/grid"
)

// Game runs a snake session and redraws only what changed.
type Game struct {
	env     *Env
	session *snake.Session
	last    snake.Status

	pending []core.Point
	full    bool
	w, h    int
}

// NewGame starts a session on m.
func NewGame(env *Env, m *grid.Map) *Game {
	env.normalize()
	s := snake.NewSession(m, env.Rand, env.Options)
	env.Logger.Info("game started", "map", m.Name)
	return &Game{
		env:     env,
		session: s,
		last:    s.Status(),
		full:    true,
	}
}

// Name implements State.
func (g *Game) Name() string { return "game" }

// Session returns the running session.
func (g *Game) Session() *snake.Session { return g.session }

// Update implements State.
func (g *Game) Update(in core.InputFrame) (Transition, error) {
	res, err := g.session.Step(in)
	if err != nil {
		return Continue(), fmt.Errorf("map %q: %w", g.last.MapName, err)
	}

	g.logStatus(res)
	g.last = res.Status

	if res.Redraw {
		g.full = true
		g.pending = g.pending[:0]
	} else {
		g.pending = append(g.pending, res.Dirty...)
	}

	switch res.Request {
	case snake.RequestQuit:
		return Quit(), nil
	case snake.RequestMenu:
		return Replace(NewMenu(g.env)), nil
	}
	return Continue(), nil
}

func (g *Game) logStatus(res snake.StepResult) {
	st := res.Status
	switch {
	case res.Redraw:
		g.env.Logger.Info("restart", "map", st.MapName, "previous_score", g.last.Score)
	case g.last.Playing() && st.State == snake.StateGameOver:
		g.env.Logger.Info("snake died", "map", st.MapName, "score", st.Score, "cause", st.Cause)
		g.logSnapshot()
	case g.last.Playing() && st.State == snake.StateCleared:
		g.env.Logger.Info("board cleared", "map", st.MapName, "score", st.Score)
		g.logSnapshot()
	case st.Score > g.last.Score:
		g.env.Logger.Debug("food eaten", "score", st.Score)
	}
}

func (g *Game) logSnapshot() {
	snap := g.session.Snapshot()
	g.env.Logger.Debug("final state",
		"tick", snap.Tick,
		"head", snap.Head,
		"tail", snap.Tail,
		"body_len", snap.BodyLen,
		"food", snap.Food,
	)
}

// Render implements State. A full frame is drawn after a restart or a
// resize; otherwise only the cells changed since the last render.
func (g *Game) Render(dst *core.Screen) {
	if g.full || dst.Width() != g.w || dst.Height() != g.h {
		g.session.Render(dst)
		g.full = false
		g.w, g.h = dst.Width(), dst.Height()
	} else {
		g.session.RenderCells(dst, g.pending)
	}
	g.pending = g.pending[:0]
}
