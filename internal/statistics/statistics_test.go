package statistics

import (
	"math"
	"testing"

	"github.com/lox/pingpong/internal/pong"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.PlayerWinRate() != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.PlayerWinRate())
	}
	if stats.HitsPerPoint() != 0 {
		t.Errorf("Expected hits per point of 0 for empty stats, got %f", stats.HitsPerPoint())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected empty stats to fail validation")
	}
}

func TestStatistics_SingleMatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(MatchResult{
		MatchID:      "m1",
		Winner:       pong.AISide,
		PlayerScore:  3,
		AIScore:      7,
		Frames:       4200,
		PaddleHits:   20,
		LongestRally: 6,
		PeakSpeed:    9.5,
	})

	if stats.Matches != 1 {
		t.Errorf("Expected 1 match, got %d", stats.Matches)
	}
	if stats.Mean() != 4200 {
		t.Errorf("Expected mean of 4200, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.AIWins != 1 || stats.PlayerWins != 0 {
		t.Errorf("Expected AI win, got player=%d ai=%d", stats.PlayerWins, stats.AIWins)
	}
	if stats.HitsPerPoint() != 2 {
		t.Errorf("Expected 2 hits per point, got %f", stats.HitsPerPoint())
	}
	if stats.Shutouts != 0 {
		t.Errorf("Expected no shutouts, got %d", stats.Shutouts)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_MultipleMatches(t *testing.T) {
	stats := &Statistics{}

	results := []MatchResult{
		{Winner: pong.PlayerSide, PlayerScore: 7, AIScore: 0, Frames: 100, LongestRally: 2, PeakSpeed: 6},
		{Winner: pong.AISide, PlayerScore: 5, AIScore: 7, Frames: 300, LongestRally: 9, PeakSpeed: 12},
		{Winner: pong.AISide, PlayerScore: 1, AIScore: 7, Frames: 200, LongestRally: 4, PeakSpeed: 8},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if stats.Mean() != 200 {
		t.Errorf("Expected mean of 200, got %f", stats.Mean())
	}
	if math.Abs(stats.StdDev()-100) > 1e-9 {
		t.Errorf("Expected stddev of 100, got %f", stats.StdDev())
	}
	if stats.Median() != 200 {
		t.Errorf("Expected median of 200, got %f", stats.Median())
	}
	if stats.LongestRally != 9 {
		t.Errorf("Expected longest rally of 9, got %d", stats.LongestRally)
	}
	if stats.PeakSpeed != 12 {
		t.Errorf("Expected peak speed of 12, got %f", stats.PeakSpeed)
	}
	if stats.Shutouts != 1 {
		t.Errorf("Expected 1 shutout, got %d", stats.Shutouts)
	}
	if math.Abs(stats.PlayerWinRate()-1.0/3.0) > 1e-9 {
		t.Errorf("Expected player win rate of 1/3, got %f", stats.PlayerWinRate())
	}
	if stats.PlayerPoints != 13 || stats.AIPoints != 14 {
		t.Errorf("Expected points 13-14, got %d-%d", stats.PlayerPoints, stats.AIPoints)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(MatchResult{Winner: pong.PlayerSide, Frames: uint64(i * 10)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 10},
		{0.25, 20},
		{0.5, 30},
		{0.75, 40},
		{1.0, 50},
		{0.9, 46},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, f := range []uint64{100, 200, 300, 400, 500} {
		stats.Add(MatchResult{Winner: pong.AISide, Frames: f})
	}

	low, high := stats.ConfidenceInterval95()
	mean := stats.Mean()

	if math.Abs((low+high)/2-mean) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f", low, high, mean)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestStatistics_ValidateInconsistent(t *testing.T) {
	stats := &Statistics{}
	stats.Add(MatchResult{Winner: pong.PlayerSide, Frames: 10})
	stats.Add(MatchResult{Winner: pong.NoSide, Frames: 10})

	if err := stats.Validate(); err == nil {
		t.Error("Expected a match without a winner to fail validation")
	}
}
