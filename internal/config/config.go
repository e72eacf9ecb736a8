// Package config loads the HCL game configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pingpong/internal/frame"
	"github.com/lox/pingpong/internal/pong"
)

// Config is the complete game configuration
type Config struct {
	Arena     ArenaConfig
	Paddle    PaddleConfig
	Ball      BallConfig
	AI        AIConfig
	Match     MatchConfig
	Frame     FrameConfig
	Input     InputConfig
	Log       LogConfig
	Spectator SpectatorConfig
}

// ArenaConfig sets the playing field size
type ArenaConfig struct {
	Width  float64 `hcl:"width,optional"`
	Height float64 `hcl:"height,optional"`
}

// PaddleConfig sets both paddles' geometry and the player's speed
type PaddleConfig struct {
	Width  float64 `hcl:"width,optional"`
	Height float64 `hcl:"height,optional"`
	Margin float64 `hcl:"margin,optional"`
	Speed  float64 `hcl:"speed,optional"`
}

// BallConfig sets the ball size and speed range
type BallConfig struct {
	Size         float64 `hcl:"size,optional"`
	InitialSpeed float64 `hcl:"initial_speed,optional"`
	MaxSpeed     float64 `hcl:"max_speed,optional"`
}

// AIConfig tunes the computer paddle
type AIConfig struct {
	Speed    float64 `hcl:"speed,optional"`
	DeadZone float64 `hcl:"dead_zone,optional"`
}

// MatchConfig holds match rules
type MatchConfig struct {
	WinScore int `hcl:"win_score,optional"`
}

// FrameConfig sets the simulation rate
type FrameConfig struct {
	RateHz int `hcl:"rate_hz,optional"`
}

// InputConfig tunes the terminal key handling
type InputConfig struct {
	// KeyHoldMs is how long a key counts as held after the terminal reports a
	// press. Key repeat re-arms it.
	KeyHoldMs int `hcl:"key_hold_ms,optional"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// SpectatorConfig configures the read-only websocket feed. An empty address
// disables it.
type SpectatorConfig struct {
	Address string `hcl:"address,optional"`
}

// fileConfig is the decoded file. Every block is optional.
type fileConfig struct {
	Arena     *ArenaConfig     `hcl:"arena,block"`
	Paddle    *PaddleConfig    `hcl:"paddle,block"`
	Ball      *BallConfig      `hcl:"ball,block"`
	AI        *AIConfig        `hcl:"ai,block"`
	Match     *MatchConfig     `hcl:"match,block"`
	Frame     *FrameConfig     `hcl:"frame,block"`
	Input     *InputConfig     `hcl:"input,block"`
	Log       *LogConfig       `hcl:"log,block"`
	Spectator *SpectatorConfig `hcl:"spectator,block"`
}

const (
	defaultKeyHoldMs = 200
	defaultLogLevel  = "info"
	defaultLogFile   = "pingpong.log"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	l := pong.DefaultLayout()
	return &Config{
		Arena:  ArenaConfig{Width: l.ArenaWidth, Height: l.ArenaHeight},
		Paddle: PaddleConfig{Width: l.PaddleWidth, Height: l.PaddleHeight, Margin: l.PaddleMargin, Speed: l.PaddleSpeed},
		Ball:   BallConfig{Size: l.BallSize, InitialSpeed: l.InitialBallSpeed, MaxSpeed: l.MaxBallSpeed},
		AI:     AIConfig{Speed: l.AISpeed, DeadZone: l.AIDeadZone},
		Match:  MatchConfig{WinScore: l.WinScore},
		Frame:  FrameConfig{RateHz: frame.DefaultRate},
		Input:  InputConfig{KeyHoldMs: defaultKeyHoldMs},
		Log:    LogConfig{Level: defaultLogLevel, File: defaultLogFile},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults; settings left out of the file, or set to zero, take their default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	if fc.Arena != nil {
		setFloat(&config.Arena.Width, fc.Arena.Width)
		setFloat(&config.Arena.Height, fc.Arena.Height)
	}
	if fc.Paddle != nil {
		setFloat(&config.Paddle.Width, fc.Paddle.Width)
		setFloat(&config.Paddle.Height, fc.Paddle.Height)
		setFloat(&config.Paddle.Margin, fc.Paddle.Margin)
		setFloat(&config.Paddle.Speed, fc.Paddle.Speed)
	}
	if fc.Ball != nil {
		setFloat(&config.Ball.Size, fc.Ball.Size)
		setFloat(&config.Ball.InitialSpeed, fc.Ball.InitialSpeed)
		setFloat(&config.Ball.MaxSpeed, fc.Ball.MaxSpeed)
	}
	if fc.AI != nil {
		setFloat(&config.AI.Speed, fc.AI.Speed)
		setFloat(&config.AI.DeadZone, fc.AI.DeadZone)
	}
	if fc.Match != nil && fc.Match.WinScore != 0 {
		config.Match.WinScore = fc.Match.WinScore
	}
	if fc.Frame != nil && fc.Frame.RateHz != 0 {
		config.Frame.RateHz = fc.Frame.RateHz
	}
	if fc.Input != nil && fc.Input.KeyHoldMs != 0 {
		config.Input.KeyHoldMs = fc.Input.KeyHoldMs
	}
	if fc.Log != nil {
		if fc.Log.Level != "" {
			config.Log.Level = fc.Log.Level
		}
		if fc.Log.File != "" {
			config.Log.File = fc.Log.File
		}
	}
	if fc.Spectator != nil {
		config.Spectator.Address = fc.Spectator.Address
	}

	return config, nil
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	if c.Frame.RateHz < 1 || c.Frame.RateHz > 1000 {
		return fmt.Errorf("frame rate must be between 1 and 1000 Hz, got %d", c.Frame.RateHz)
	}
	if c.Input.KeyHoldMs < 0 {
		return fmt.Errorf("key hold must not be negative, got %dms", c.Input.KeyHoldMs)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// Layout converts the geometry and tuning blocks into an engine layout
func (c *Config) Layout() pong.Layout {
	return pong.Layout{
		ArenaWidth:       c.Arena.Width,
		ArenaHeight:      c.Arena.Height,
		PaddleWidth:      c.Paddle.Width,
		PaddleHeight:     c.Paddle.Height,
		PaddleMargin:     c.Paddle.Margin,
		BallSize:         c.Ball.Size,
		PaddleSpeed:      c.Paddle.Speed,
		InitialBallSpeed: c.Ball.InitialSpeed,
		MaxBallSpeed:     c.Ball.MaxSpeed,
		AISpeed:          c.AI.Speed,
		AIDeadZone:       c.AI.DeadZone,
		WinScore:         c.Match.WinScore,
	}
}

// FrameInterval returns the scheduler interval for the configured rate
func (c *Config) FrameInterval() time.Duration {
	return frame.Interval(c.Frame.RateHz)
}

// KeyHold returns the emulated key hold window
func (c *Config) KeyHold() time.Duration {
	return time.Duration(c.Input.KeyHoldMs) * time.Millisecond
}
