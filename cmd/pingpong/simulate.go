package main

import (
	"fmt"
	"os"

	"github.com/lox/pingpong/cmd/pingpong/shared"
	"github.com/lox/pingpong/internal/fileutil"
	"github.com/lox/pingpong/internal/randutil"
	"github.com/lox/pingpong/internal/simulator"
)

// SimulateCmd plays autopilot matches without a terminal UI
type SimulateCmd struct {
	Matches   int    `short:"n" default:"100" help:"Number of matches to play"`
	Seed      *int64 `help:"Run seed (random when unset); each match derives its own"`
	Workers   int    `default:"0" help:"Concurrent matches (0 uses every CPU)"`
	MaxFrames uint64 `default:"1000000" help:"Abort a match that runs longer than this"`
	Output    string `short:"o" type:"path" help:"Write a JSON report to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	// Headless: log to stderr regardless of the configured file.
	logger, closeLog, err := shared.SetupLogger(cfg.Log.Level, "")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	seed, _ := randutil.Seed(c.Seed)
	report, err := simulator.New(simulator.Config{
		Matches:   c.Matches,
		Seed:      seed,
		Workers:   c.Workers,
		MaxFrames: c.MaxFrames,
		Layout:    cfg.Layout(),
		Logger:    logger,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, report)

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, report, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}
