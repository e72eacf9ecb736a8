package main

import (
	"fmt"

	"github.com/lox/pingpong/cmd/pingpong/shared"
	"github.com/lox/pingpong/internal/spectator"
	"github.com/lox/pingpong/internal/tui"
)

// WatchCmd follows a running game's spectator feed
type WatchCmd struct {
	URL     string `arg:"" default:"http://localhost:8080" help:"Spectator feed URL"`
	LogFile string `help:"Override the configured log file"`
}

func (c *WatchCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}

	logger, closeLog, err := shared.SetupLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	client, err := spectator.Dial(ctx, c.URL, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	go func() {
		for ev := range client.Events() {
			logger.Info("Match event", "event", ev.Event)
		}
	}()

	model := tui.NewModel(client.Snapshot, tui.Options{
		Title:   "PING PONG (spectating)",
		Refresh: cfg.FrameInterval(),
		Done:    client.Done(),
		Status:  func() string { return fmt.Sprintf("Watching %s", c.URL) },
		Logger:  logger,
	})
	if err := tui.Run(ctx, model); err != nil {
		return err
	}
	return client.Err()
}
