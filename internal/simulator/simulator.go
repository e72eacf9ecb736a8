// Package simulator plays headless matches with an autopilot on the player
// paddle. Matches are independent and run concurrently; each derives its serve
// RNG from the run seed so a run is reproducible end to end.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pingpong/internal/frame"
	"github.com/lox/pingpong/internal/input"
	"github.com/lox/pingpong/internal/pong"
	"github.com/lox/pingpong/internal/randutil"
	"github.com/lox/pingpong/internal/session"
	"github.com/lox/pingpong/internal/statistics"
)

// DefaultMaxFrames bounds a single match. At 60Hz it is over four hours of
// play, far beyond any match the autopilot produces.
const DefaultMaxFrames = 1_000_000

// Config holds configuration for running simulations
type Config struct {
	Matches   int
	Seed      int64
	Workers   int    // defaults to GOMAXPROCS
	MaxFrames uint64 // per match; defaults to DefaultMaxFrames
	Layout    pong.Layout
	Logger    *log.Logger
}

// Report is the outcome of a run
type Report struct {
	Seed       int64                    `json:"seed"`
	Matches    int                      `json:"matches"`
	Layout     pong.Layout              `json:"layout"`
	Summary    Summary                  `json:"summary"`
	Results    []statistics.MatchResult `json:"results"`
	Statistics *statistics.Statistics   `json:"-"`
}

// Summary is the JSON form of the aggregate statistics
type Summary struct {
	PlayerWins   int     `json:"playerWins"`
	AIWins       int     `json:"aiWins"`
	MeanFrames   float64 `json:"meanFrames"`
	StdDevFrames float64 `json:"stdDevFrames"`
	MedianFrames float64 `json:"medianFrames"`
	HitsPerPoint float64 `json:"hitsPerPoint"`
	LongestRally int     `json:"longestRally"`
	PeakSpeed    float64 `json:"peakSpeed"`
	Shutouts     int     `json:"shutouts"`
}

// Simulator runs headless matches
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxFrames == 0 {
		config.MaxFrames = DefaultMaxFrames
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every match and returns the report. Results are ordered by match
// number regardless of which worker finished first.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Matches <= 0 {
		return nil, fmt.Errorf("match count must be positive, got %d", s.config.Matches)
	}
	if err := s.config.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation",
		"matches", s.config.Matches,
		"seed", s.config.Seed,
		"workers", s.config.Workers)

	results := make([]statistics.MatchResult, s.config.Matches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Matches {
		g.Go(func() error {
			result, err := s.playMatch(ctx, i)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete",
		"playerWins", stats.PlayerWins,
		"aiWins", stats.AIWins,
		"meanFrames", fmt.Sprintf("%.0f", stats.Mean()))

	return &Report{
		Seed:       s.config.Seed,
		Matches:    s.config.Matches,
		Layout:     s.config.Layout,
		Summary:    summarize(stats),
		Results:    results,
		Statistics: stats,
	}, nil
}

// playMatch runs match n to completion on a manual scheduler.
func (s *Simulator) playMatch(ctx context.Context, n int) (statistics.MatchResult, error) {
	seed := randutil.Derive(s.config.Seed, n)
	logger := s.config.Logger.With("match", n+1, "seed", seed)

	engine := pong.NewEngine(s.config.Layout, randutil.New(seed))
	sched := frame.NewManualScheduler()
	sess := session.New(engine, sched, logger, session.WithMatchIDs(func() string {
		return fmt.Sprintf("sim-%d", n+1)
	}))
	defer sess.Close()

	recorder := statistics.NewRecorder()
	recorder.SetSeed(seed)
	sess.Events().Subscribe(recorder)

	pilot := autopilot{layout: s.config.Layout, tracker: sess.Input()}
	sess.StartGame()

	for frames := uint64(0); ; frames++ {
		if frames%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return statistics.MatchResult{}, err
			}
		}
		if frames >= s.config.MaxFrames {
			return statistics.MatchResult{}, fmt.Errorf("match %d did not finish within %d frames (seed: %d)",
				n+1, s.config.MaxFrames, seed)
		}
		pilot.steer(sess.Snapshot().State)
		if !sched.Step() {
			break
		}
	}

	results := recorder.Results()
	if len(results) != 1 {
		return statistics.MatchResult{}, fmt.Errorf("match %d produced %d results", n+1, len(results))
	}
	logger.Debug("Match finished",
		"winner", results[0].Winner,
		"score", fmt.Sprintf("%d-%d", results[0].PlayerScore, results[0].AIScore),
		"frames", results[0].Frames)
	return results[0], nil
}

// autopilot holds and releases movement keys on the tracker the way a player
// would, following the same tracking rule as the AI but at paddle speed.
type autopilot struct {
	layout  pong.Layout
	tracker *input.Tracker
}

func (a autopilot) steer(s pong.State) {
	c := pong.Autopilot(a.layout, s.PlayerY, s.BallY)
	hold(a.tracker, input.KeyUp, c.Up)
	hold(a.tracker, input.KeyDown, c.Down)
}

func hold(t *input.Tracker, k input.Key, held bool) {
	if held {
		t.Press(string(k))
	} else {
		t.Release(string(k))
	}
}

func summarize(stats *statistics.Statistics) Summary {
	return Summary{
		PlayerWins:   stats.PlayerWins,
		AIWins:       stats.AIWins,
		MeanFrames:   stats.Mean(),
		StdDevFrames: stats.StdDev(),
		MedianFrames: stats.Median(),
		HitsPerPoint: stats.HitsPerPoint(),
		LongestRally: stats.LongestRally,
		PeakSpeed:    stats.PeakSpeed,
		Shutouts:     stats.Shutouts,
	}
}
