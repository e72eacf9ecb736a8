package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/lox/pingpong/internal/config"
	"github.com/lox/pingpong/internal/tui"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"pingpong.hcl" type:"path" help:"HCL configuration file (defaults apply when missing)"`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)"`
	NoColor  bool   `help:"Disable colours"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play against the computer in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run headless autopilot matches and report statistics"`
	Watch    WatchCmd         `cmd:"" help:"Watch a game through its spectator feed"`
}

// loadConfig reads and validates the configuration, applying flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	if g.NoColor {
		tui.DisableColor()
	}
	return cfg, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pingpong"),
		kong.Description("Terminal pong against a computer paddle"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
