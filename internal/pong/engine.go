package pong

import "math"

// Rand is the source of serve randomness. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	Float64() float64
}

// Engine applies the match rules for a fixed layout. It keeps no match state
// of its own, but its Rand is not safe for concurrent use, so callers must
// serialise calls on a single Engine.
type Engine struct {
	layout Layout
	rng    Rand
}

// NewEngine creates an engine. The layout is assumed valid; see
// Layout.Validate.
func NewEngine(layout Layout, rng Rand) *Engine {
	return &Engine{layout: layout, rng: rng}
}

// Layout returns the engine's layout.
func (e *Engine) Layout() Layout {
	return e.layout
}

// NewState returns the idle state shown before the first match: both paddles
// and the ball centred, ball moving right and down at the default speed.
func (e *Engine) NewState() State {
	l := e.layout
	bx, by := l.CenteredBall()
	return State{
		PlayerY: l.CenteredPaddleY(),
		AIY:     l.CenteredPaddleY(),
		BallX:   bx,
		BallY:   by,
		BallVX:  l.InitialBallSpeed,
		BallVY:  l.InitialBallSpeed / 2,
		Phase:   Idle,
	}
}

// Start returns a fresh match in the Playing phase. Nothing carries over from
// any earlier state, so restarting from Finished and starting from Idle give
// the same result apart from the random serve.
func (e *Engine) Start() State {
	s := e.NewState()
	s.BallVY = e.serveVY()
	s.Phase = Playing
	return s
}

// TogglePause flips between Playing and Paused. Other phases are returned
// unchanged.
func (e *Engine) TogglePause(s State) State {
	switch s.Phase {
	case Playing:
		s.Phase = Paused
	case Paused:
		s.Phase = Playing
	}
	return s
}

// Tick advances a Playing state by one frame. Any other phase is returned
// unchanged, which makes a finished match frozen under further ticks.
func (e *Engine) Tick(s State, c Controls) State {
	if s.Phase != Playing {
		return s
	}
	l := e.layout
	travel := l.PaddleTravel()

	// Up is applied before down, each clamped on its own. Holding both keys
	// therefore nudges a paddle resting on the top wall downwards.
	if c.Up {
		s.PlayerY = math.Max(0, s.PlayerY-l.PaddleSpeed)
	}
	if c.Down {
		s.PlayerY = math.Min(travel, s.PlayerY+l.PaddleSpeed)
	}
	s.PlayerY = clamp(s.PlayerY, 0, travel)

	s.AIY = clamp(s.AIY+AIVelocity(l, s.AIY, s.BallY), 0, travel)

	s.BallX += s.BallVX
	s.BallY += s.BallVY
	s.BallY, s.BallVY = ReflectWall(l, s.BallY, s.BallVY)

	if PlayerPaddleHit(l, s.BallX, s.BallY, s.PlayerY) {
		s.BallVX, s.BallVY = Bounce(l, s.BallVX, HitPosition(l, s.BallY, s.PlayerY), 1)
		s.BallX = l.PlayerPaddleX() + l.PaddleWidth + 1
	}
	if AIPaddleHit(l, s.BallX, s.BallY, s.AIY) {
		s.BallVX, s.BallVY = Bounce(l, s.BallVX, HitPosition(l, s.BallY, s.AIY), -1)
		s.BallX = l.AIPaddleX() - l.BallSize - 1
	}

	switch {
	case s.BallX < 0:
		s.AIScore++
		e.settlePoint(&s, AISide)
	case s.BallX > l.ArenaWidth:
		s.PlayerScore++
		e.settlePoint(&s, PlayerSide)
	}
	return s
}

// settlePoint either ends the match or serves the next ball toward the side
// that just conceded.
func (e *Engine) settlePoint(s *State, scorer Side) {
	if s.Score(scorer) >= e.layout.WinScore {
		s.Phase = Finished
		s.Winner = scorer
		return
	}
	direction := 1.0
	if scorer == AISide {
		direction = -1
	}
	s.BallX, s.BallY = e.layout.CenteredBall()
	s.BallVX = direction * e.layout.InitialBallSpeed
	s.BallVY = e.serveVY()
}

// serveVY is uniform over [-initial/2, +initial/2).
func (e *Engine) serveVY() float64 {
	return (e.rng.Float64() - 0.5) * e.layout.InitialBallSpeed
}
