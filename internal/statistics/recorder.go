package statistics

import (
	"sync"

	"github.com/lox/pingpong/internal/session"
)

// Recorder is a session event subscriber that turns the event stream into
// MatchResults and folds them into Statistics.
type Recorder struct {
	mu      sync.Mutex
	seed    int64
	current *MatchResult
	rally   int
	results []MatchResult
	stats   Statistics
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetSeed tags subsequent results with the serve seed they were played with.
func (r *Recorder) SetSeed(seed int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seed = seed
}

func (r *Recorder) OnEvent(event session.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case session.MatchStartEvent:
		// A restart abandons the match in progress; it is not recorded.
		r.current = &MatchResult{MatchID: e.MatchID, Seed: r.seed}
		r.rally = 0
	case session.PaddleHitEvent:
		if r.current == nil {
			return
		}
		r.current.PaddleHits++
		r.rally++
		r.current.LongestRally = max(r.current.LongestRally, r.rally)
		r.current.PeakSpeed = max(r.current.PeakSpeed, e.Speed)
	case session.PointEvent:
		if r.current == nil {
			return
		}
		r.current.PlayerScore = e.PlayerScore
		r.current.AIScore = e.AIScore
		r.rally = 0
	case session.MatchEndEvent:
		if r.current == nil || r.current.MatchID != e.MatchID {
			return
		}
		r.current.Winner = e.Winner
		r.current.PlayerScore = e.PlayerScore
		r.current.AIScore = e.AIScore
		r.current.Frames = e.Frames
		r.results = append(r.results, *r.current)
		r.stats.Add(*r.current)
		r.current = nil
		r.rally = 0
	}
}

// Rally returns the number of paddle hits in the point being played.
func (r *Recorder) Rally() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rally
}

// Current returns the match in progress, if any.
func (r *Recorder) Current() (MatchResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return MatchResult{}, false
	}
	return *r.current, true
}

// Results returns every finished match in completion order.
func (r *Recorder) Results() []MatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MatchResult, len(r.results))
	copy(out, r.results)
	return out
}

// Statistics returns a copy of the aggregate.
func (r *Recorder) Statistics() Statistics {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := r.stats
	stats.Values = append([]float64(nil), r.stats.Values...)
	return stats
}
