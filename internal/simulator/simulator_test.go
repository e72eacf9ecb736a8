package simulator

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pingpong/internal/pong"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func testConfig(matches int, seed int64) Config {
	return Config{
		Matches: matches,
		Seed:    seed,
		Layout:  pong.DefaultLayout(),
		Logger:  testLogger(),
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	sim := New(Config{Matches: 1})
	assert.Positive(t, sim.config.Workers)
	assert.Equal(t, uint64(DefaultMaxFrames), sim.config.MaxFrames)
	assert.NotNil(t, sim.config.Logger)
}

func TestRunPlaysEveryMatch(t *testing.T) {
	report, err := New(testConfig(4, 12345)).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	assert.Equal(t, 4, report.Statistics.Matches)
	assert.Equal(t, 4, report.Summary.PlayerWins+report.Summary.AIWins)

	winScore := pong.DefaultLayout().WinScore
	for i, r := range report.Results {
		assert.NotEqual(t, pong.NoSide, r.Winner, "match %d", i+1)
		assert.Equal(t, winScore, max(r.PlayerScore, r.AIScore), "match %d", i+1)
		assert.Less(t, min(r.PlayerScore, r.AIScore), winScore, "match %d", i+1)
		assert.Positive(t, r.Frames, "match %d", i+1)
		assert.LessOrEqual(t, r.PeakSpeed, pong.DefaultLayout().MaxBallSpeed+1e-9)
	}
	assert.Equal(t, "sim-1", report.Results[0].MatchID)
	assert.Equal(t, "sim-4", report.Results[3].MatchID)
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := testConfig(3, 777)
	cfg.Workers = 3
	first, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	cfg.Workers = 1
	second, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestRunSeedsDiffer(t *testing.T) {
	a, err := New(testConfig(2, 1)).Run(context.Background())
	require.NoError(t, err)
	b, err := New(testConfig(2, 2)).Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, a.Results[0].Seed, b.Results[0].Seed)
	assert.NotEqual(t, a.Results[0].Seed, a.Results[1].Seed)
}

func TestRunFrameLimit(t *testing.T) {
	cfg := testConfig(1, 5)
	cfg.MaxFrames = 10

	_, err := New(cfg).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not finish within 10 frames")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(2, 5)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := New(testConfig(0, 1)).Run(context.Background())
	assert.Error(t, err)

	cfg := testConfig(1, 1)
	cfg.Layout.WinScore = 0
	_, err = New(cfg).Run(context.Background())
	assert.ErrorContains(t, err, "invalid layout")
}

func TestPrintSummary(t *testing.T) {
	report, err := New(testConfig(2, 42)).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, report)
	out := buf.String()
	assert.Contains(t, out, "FINAL RESULTS (seed 42)")
	assert.Contains(t, out, "Matches played: 2")
	assert.Contains(t, out, "Longest rally")
}
