package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pingpong/internal/pong"
	"github.com/lox/pingpong/internal/session"
)

func TestRecorderBuildsMatchResult(t *testing.T) {
	r := NewRecorder()
	r.SetSeed(99)

	r.OnEvent(session.MatchStartEvent{MatchID: "m1"})
	r.OnEvent(session.PaddleHitEvent{MatchID: "m1", Side: pong.PlayerSide, Speed: 5.25})
	r.OnEvent(session.PaddleHitEvent{MatchID: "m1", Side: pong.AISide, Speed: 5.51})
	assert.Equal(t, 2, r.Rally())

	r.OnEvent(session.PointEvent{MatchID: "m1", Scorer: pong.AISide, AIScore: 1})
	assert.Equal(t, 0, r.Rally())

	r.OnEvent(session.PaddleHitEvent{MatchID: "m1", Side: pong.PlayerSide, Speed: 5.25})
	r.OnEvent(session.PointEvent{MatchID: "m1", Scorer: pong.PlayerSide, PlayerScore: 1, AIScore: 1})

	current, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, 3, current.PaddleHits)
	assert.Equal(t, 2, current.LongestRally)
	assert.InDelta(t, 5.51, current.PeakSpeed, 1e-9)

	r.OnEvent(session.MatchEndEvent{MatchID: "m1", Winner: pong.PlayerSide, PlayerScore: 7, AIScore: 1, Frames: 900})

	_, ok = r.Current()
	assert.False(t, ok)

	results := r.Results()
	require.Len(t, results, 1)
	assert.Equal(t, MatchResult{
		MatchID:      "m1",
		Seed:         99,
		Winner:       pong.PlayerSide,
		PlayerScore:  7,
		AIScore:      1,
		Frames:       900,
		PaddleHits:   3,
		LongestRally: 2,
		PeakSpeed:    5.51,
	}, results[0])
	assert.Equal(t, 8, results[0].Points())

	stats := r.Statistics()
	assert.Equal(t, 1, stats.Matches)
	assert.Equal(t, 1, stats.PlayerWins)
	assert.NoError(t, stats.Validate())
}

func TestRecorderDropsAbandonedMatch(t *testing.T) {
	r := NewRecorder()

	r.OnEvent(session.MatchStartEvent{MatchID: "m1"})
	r.OnEvent(session.PaddleHitEvent{MatchID: "m1", Speed: 5.25})
	r.OnEvent(session.MatchStartEvent{MatchID: "m2"})
	r.OnEvent(session.MatchEndEvent{MatchID: "m1", Winner: pong.AISide})

	assert.Empty(t, r.Results(), "end of a replaced match is ignored")

	current, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, "m2", current.MatchID)
	assert.Zero(t, current.PaddleHits)
}

func TestRecorderIgnoresEventsOutsideMatch(t *testing.T) {
	r := NewRecorder()
	r.OnEvent(session.PaddleHitEvent{Speed: 5})
	r.OnEvent(session.PointEvent{PlayerScore: 1})
	r.OnEvent(session.PauseEvent{Paused: true})

	assert.Equal(t, 0, r.Rally())
	assert.Empty(t, r.Results())
}
