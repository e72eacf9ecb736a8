package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIVelocity(t *testing.T) {
	l := DefaultLayout()
	paddleY := 100.0
	center := paddleY + l.PaddleHeight/2

	tests := []struct {
		name  string
		ballY float64
		want  float64
	}{
		{"aligned", center, 0},
		{"inside dead zone below", center + l.AIDeadZone, 0},
		{"inside dead zone above", center - l.AIDeadZone, 0},
		{"ball below", center + l.AIDeadZone + 1, l.AISpeed},
		{"ball above", center - l.AIDeadZone - 1, -l.AISpeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AIVelocity(l, paddleY, tt.ballY))
		})
	}
}

func TestAutopilot(t *testing.T) {
	l := DefaultLayout()

	assert.Equal(t, Controls{Down: true}, Autopilot(l, 0, 400))
	assert.Equal(t, Controls{Up: true}, Autopilot(l, 400, 0))
	assert.Equal(t, Controls{}, Autopilot(l, 100, 140))
}
