package main

import (
	"context"
	"fmt"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pingpong/cmd/pingpong/shared"
	"github.com/lox/pingpong/internal/frame"
	"github.com/lox/pingpong/internal/pong"
	"github.com/lox/pingpong/internal/randutil"
	"github.com/lox/pingpong/internal/session"
	"github.com/lox/pingpong/internal/spectator"
	"github.com/lox/pingpong/internal/statistics"
	"github.com/lox/pingpong/internal/tui"
)

// PlayCmd runs an interactive match in the terminal
type PlayCmd struct {
	Seed     *int64 `help:"Serve RNG seed (random when unset)"`
	RateHz   int    `help:"Override the configured frame rate"`
	Spectate string `help:"Serve a read-only spectator feed on this address, e.g. :8080"`
	LogFile  string `help:"Override the configured log file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.RateHz > 0 {
		cfg.Frame.RateHz = c.RateHz
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.Spectate != "" {
		cfg.Spectator.Address = c.Spectate
	}

	logger, closeLog, err := shared.SetupLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	seed, explicit := randutil.Seed(c.Seed)
	logger.Info("Starting game", "seed", seed, "explicitSeed", explicit, "rateHz", cfg.Frame.RateHz)

	clock := quartz.NewReal()
	sched := frame.NewClockScheduler(clock, cfg.FrameInterval(), logger)
	engine := pong.NewEngine(cfg.Layout(), randutil.New(seed))
	sess := session.New(engine, sched, logger)
	defer func() {
		sess.Close()
		sched.Wait()
	}()

	recorder := statistics.NewRecorder()
	recorder.SetSeed(seed)
	sess.Events().Subscribe(session.NewLogSubscriber(logger))
	sess.Events().Subscribe(recorder)

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if addr := cfg.Spectator.Address; addr != "" {
		hub := spectator.NewHub(logger)
		sess.Events().Subscribe(hub)
		group.Go(func() error {
			return hub.ListenAndServe(ctx, addr)
		})
	}

	model := tui.NewModel(
		func() (pong.Snapshot, bool) { return sess.Snapshot(), true },
		tui.Options{
			Input:   sess.Input(),
			Clock:   clock,
			KeyHold: cfg.KeyHold(),
			Refresh: cfg.FrameInterval(),
			Status:  playStatus(recorder, seed, cfg.Spectator.Address),
			Logger:  logger,
		},
	)
	group.Go(func() error {
		// Quitting the UI ends the spectator feed too.
		defer cancel()
		return tui.Run(ctx, model)
	})

	if err := group.Wait(); err != nil {
		return err
	}

	stats := recorder.Statistics()
	if stats.Matches > 0 {
		fmt.Printf("You won %d of %d matches (points %d-%d, longest rally %d)\n",
			stats.PlayerWins, stats.Matches, stats.PlayerPoints, stats.AIPoints, stats.LongestRally)
	}
	return nil
}

func playStatus(recorder *statistics.Recorder, seed int64, spectate string) func() string {
	return func() string {
		stats := recorder.Statistics()
		line := fmt.Sprintf("Rally %d   Won %d/%d   Seed %d", recorder.Rally(), stats.PlayerWins, stats.Matches, seed)
		if spectate != "" {
			line += "   Spectators on " + spectate
		}
		return line
	}
}
