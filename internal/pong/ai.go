package pong

// AIVelocity is the computer paddle's decision for one tick. The paddle chases
// the ball's Y and rests while its centre is within the dead zone.
func AIVelocity(l Layout, paddleY, ballY float64) float64 {
	center := paddleY + l.PaddleHeight/2
	switch {
	case center < ballY-l.AIDeadZone:
		return l.AISpeed
	case center > ballY+l.AIDeadZone:
		return -l.AISpeed
	}
	return 0
}

// Autopilot drives the player paddle with the same tracking rule the AI uses,
// expressed as held keys. Headless simulations use it in place of a human.
func Autopilot(l Layout, paddleY, ballY float64) Controls {
	v := AIVelocity(l, paddleY, ballY)
	return Controls{Up: v < 0, Down: v > 0}
}
