package pong

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ReflectWall bounces the ball off the top and bottom walls. When the ball
// touches or crosses a wall its vertical velocity is negated and it is placed
// back on the wall it crossed.
func ReflectWall(l Layout, y, vy float64) (float64, float64) {
	floor := l.ArenaHeight - l.BallSize
	switch {
	case y <= 0:
		return 0, -vy
	case y >= floor:
		return floor, -vy
	}
	return y, vy
}

// verticalOverlap reports whether the ball and a paddle share any rows.
func verticalOverlap(l Layout, ballY, paddleY float64) bool {
	return ballY+l.BallSize >= paddleY && ballY <= paddleY+l.PaddleHeight
}

// PlayerPaddleHit reports whether the ball's left edge lies within the player
// paddle's horizontal band while overlapping it vertically.
func PlayerPaddleHit(l Layout, ballX, ballY, paddleY float64) bool {
	left := l.PlayerPaddleX()
	return ballX >= left && ballX <= left+l.PaddleWidth && verticalOverlap(l, ballY, paddleY)
}

// AIPaddleHit is the mirror of PlayerPaddleHit: the ball's right edge must
// reach the AI paddle's face without having passed the AI's wall margin.
func AIPaddleHit(l Layout, ballX, ballY, paddleY float64) bool {
	face := l.AIPaddleX()
	return ballX+l.BallSize >= face && ballX <= face+l.PaddleWidth && verticalOverlap(l, ballY, paddleY)
}

// HitPosition is the normalised point of impact on a paddle: 0 at the top
// edge, 0.5 at the centre, 1 at the bottom edge. Grazing hits past either edge
// are clamped.
func HitPosition(l Layout, ballY, paddleY float64) float64 {
	return clamp((ballY+l.BallSize/2-paddleY)/l.PaddleHeight, 0, 1)
}

// BounceAngle maps a hit position onto the outgoing angle in radians.
func BounceAngle(hit float64) float64 {
	return (hit - 0.5) * MaxBounceSpan
}

// Bounce returns the velocity leaving a paddle. The horizontal speed grows by
// RallySpeedup up to the layout's cap and direction is the sign of the new
// horizontal component (+1 away from the player, -1 away from the AI).
func Bounce(l Layout, vx, hit, direction float64) (float64, float64) {
	speed := math.Min(math.Abs(vx)*RallySpeedup, l.MaxBallSpeed)
	return math.Copysign(speed, direction), math.Sin(BounceAngle(hit)) * speed
}
