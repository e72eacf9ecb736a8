package pong

import (
	"fmt"
	"math"
)

const (
	// MaxBounceSpan is the full range of bounce angles off a paddle. A hit on
	// the paddle centre leaves flat, a hit on either edge leaves at ±0.3π.
	MaxBounceSpan = 0.6 * math.Pi

	// RallySpeedup is applied to the horizontal speed on every paddle hit.
	RallySpeedup = 1.05
)

// Layout holds the arena geometry and tuning constants. It is fixed for the
// lifetime of an Engine.
type Layout struct {
	ArenaWidth       float64 `json:"arenaWidth"`
	ArenaHeight      float64 `json:"arenaHeight"`
	PaddleWidth      float64 `json:"paddleWidth"`
	PaddleHeight     float64 `json:"paddleHeight"`
	PaddleMargin     float64 `json:"paddleMargin"` // gap between each paddle and its wall
	BallSize         float64 `json:"ballSize"`
	PaddleSpeed      float64 `json:"paddleSpeed"`
	InitialBallSpeed float64 `json:"initialBallSpeed"`
	MaxBallSpeed     float64 `json:"maxBallSpeed"`
	AISpeed          float64 `json:"aiSpeed"`
	AIDeadZone       float64 `json:"aiDeadZone"`
	WinScore         int     `json:"winScore"`
}

// DefaultLayout returns the classic 800x500 arena.
func DefaultLayout() Layout {
	return Layout{
		ArenaWidth:       800,
		ArenaHeight:      500,
		PaddleWidth:      12,
		PaddleHeight:     80,
		PaddleMargin:     20,
		BallSize:         12,
		PaddleSpeed:      8,
		InitialBallSpeed: 5,
		MaxBallSpeed:     12,
		AISpeed:          4.5,
		AIDeadZone:       20,
		WinScore:         7,
	}
}

// Validate checks the layout invariants the engine relies on.
func (l Layout) Validate() error {
	if l.ArenaWidth <= 0 || l.ArenaHeight <= 0 {
		return fmt.Errorf("arena must have positive dimensions, got %gx%g", l.ArenaWidth, l.ArenaHeight)
	}
	if l.PaddleWidth <= 0 || l.PaddleHeight <= 0 {
		return fmt.Errorf("paddle must have positive dimensions, got %gx%g", l.PaddleWidth, l.PaddleHeight)
	}
	if l.BallSize <= 0 {
		return fmt.Errorf("ball size must be positive, got %g", l.BallSize)
	}
	if l.PaddleHeight > l.ArenaHeight {
		return fmt.Errorf("paddle height %g exceeds arena height %g", l.PaddleHeight, l.ArenaHeight)
	}
	if l.BallSize > l.ArenaHeight || l.BallSize > l.ArenaWidth {
		return fmt.Errorf("ball size %g does not fit the arena", l.BallSize)
	}
	if l.PaddleMargin < 0 {
		return fmt.Errorf("paddle margin cannot be negative, got %g", l.PaddleMargin)
	}
	if 2*(l.PaddleMargin+l.PaddleWidth)+l.BallSize > l.ArenaWidth {
		return fmt.Errorf("paddles and margins (%g) leave no room for the ball in a %g wide arena",
			2*(l.PaddleMargin+l.PaddleWidth), l.ArenaWidth)
	}
	if l.PaddleSpeed <= 0 || l.AISpeed <= 0 {
		return fmt.Errorf("paddle speeds must be positive")
	}
	if l.InitialBallSpeed <= 0 {
		return fmt.Errorf("initial ball speed must be positive, got %g", l.InitialBallSpeed)
	}
	if l.MaxBallSpeed < l.InitialBallSpeed {
		return fmt.Errorf("max ball speed %g is below initial ball speed %g", l.MaxBallSpeed, l.InitialBallSpeed)
	}
	if l.AIDeadZone < 0 {
		return fmt.Errorf("AI dead zone cannot be negative, got %g", l.AIDeadZone)
	}
	if l.WinScore < 1 {
		return fmt.Errorf("win score must be at least 1, got %d", l.WinScore)
	}
	return nil
}

// PaddleTravel is the largest valid paddle Y.
func (l Layout) PaddleTravel() float64 {
	return l.ArenaHeight - l.PaddleHeight
}

// CenteredPaddleY returns the Y that centres a paddle vertically.
func (l Layout) CenteredPaddleY() float64 {
	return l.ArenaHeight/2 - l.PaddleHeight/2
}

// CenteredBall returns the top-left corner that centres the ball.
func (l Layout) CenteredBall() (x, y float64) {
	return l.ArenaWidth/2 - l.BallSize/2, l.ArenaHeight/2 - l.BallSize/2
}

// PlayerPaddleX is the left edge of the player paddle.
func (l Layout) PlayerPaddleX() float64 {
	return l.PaddleMargin
}

// AIPaddleX is the left edge of the AI paddle.
func (l Layout) AIPaddleX() float64 {
	return l.ArenaWidth - l.PaddleMargin - l.PaddleWidth
}
