package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/pingpong/internal/pong"
)

// MatchResult is the outcome of a single finished match
type MatchResult struct {
	MatchID      string    `json:"matchId"`
	Seed         int64     `json:"seed"` // serve RNG seed, for replay
	Winner       pong.Side `json:"winner"`
	PlayerScore  int       `json:"playerScore"`
	AIScore      int       `json:"aiScore"`
	Frames       uint64    `json:"frames"`
	PaddleHits   int       `json:"paddleHits"`
	LongestRally int       `json:"longestRally"` // paddle hits in the longest point
	PeakSpeed    float64   `json:"peakSpeed"`    // fastest horizontal speed off a paddle
}

// Points returns how many points were played.
func (r MatchResult) Points() int {
	return r.PlayerScore + r.AIScore
}

// Statistics aggregates match results. Match length in frames is the sampled
// value for mean, variance and percentiles.
type Statistics struct {
	Matches    int
	SumFrames  float64
	SumFrames2 float64   // Sum of squares for variance calculation
	Values     []float64 // Frames per match for median/percentile calculation

	PlayerWins int
	AIWins     int

	PlayerPoints int
	AIPoints     int
	PaddleHits   int

	LongestRally int
	PeakSpeed    float64
	Shutouts     int // matches where the loser scored nothing
}

// Add incorporates a match result
func (s *Statistics) Add(result MatchResult) {
	frames := float64(result.Frames)
	s.Matches++
	s.SumFrames += frames
	s.SumFrames2 += frames * frames
	s.Values = append(s.Values, frames)

	switch result.Winner {
	case pong.PlayerSide:
		s.PlayerWins++
	case pong.AISide:
		s.AIWins++
	}

	s.PlayerPoints += result.PlayerScore
	s.AIPoints += result.AIScore
	s.PaddleHits += result.PaddleHits

	if result.LongestRally > s.LongestRally {
		s.LongestRally = result.LongestRally
	}
	if result.PeakSpeed > s.PeakSpeed {
		s.PeakSpeed = result.PeakSpeed
	}
	if result.PlayerScore == 0 || result.AIScore == 0 {
		s.Shutouts++
	}
}

// Mean returns the mean match length in frames
func (s *Statistics) Mean() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.SumFrames / float64(s.Matches)
}

// Variance returns the sample variance of match length
func (s *Statistics) Variance() float64 {
	if s.Matches < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumFrames2 - float64(s.Matches)*mean*mean) / float64(s.Matches-1)
}

// StdDev returns the sample standard deviation of match length
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Matches))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median match length
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the match length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PlayerWinRate returns the fraction of matches won by the player paddle
func (s *Statistics) PlayerWinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.PlayerWins) / float64(s.Matches)
}

// HitsPerPoint returns the average number of paddle hits per point played
func (s *Statistics) HitsPerPoint() float64 {
	points := s.PlayerPoints + s.AIPoints
	if points == 0 {
		return 0
	}
	return float64(s.PaddleHits) / float64(points)
}

// Validate checks the aggregate is internally consistent
func (s *Statistics) Validate() error {
	if s.Matches <= 0 {
		return fmt.Errorf("invalid match count: %d", s.Matches)
	}
	if len(s.Values) != s.Matches {
		return fmt.Errorf("values array length (%d) does not match match count (%d)",
			len(s.Values), s.Matches)
	}
	if wins := s.PlayerWins + s.AIWins; wins != s.Matches {
		return fmt.Errorf("wins (%d) do not match match count (%d)", wins, s.Matches)
	}
	if s.Shutouts > s.Matches {
		return fmt.Errorf("shutouts (%d) exceed match count (%d)", s.Shutouts, s.Matches)
	}
	return nil
}
