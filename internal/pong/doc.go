// Package pong implements the simulation rules for a single-player pong match
// against a computer-controlled paddle.
//
// The main type is Engine, which turns one State into the next. States are
// plain values: the engine never holds on to them, so callers own the
// authoritative copy and decide when a tick runs.
//
// # Basic Usage
//
//	e := pong.NewEngine(pong.DefaultLayout(), randutil.New(42))
//	s := e.Start()
//	for s.Phase == pong.Playing {
//	    s = e.Tick(s, pong.Controls{Up: true})
//	}
//
// # Tick Ordering
//
// Every tick applies, in order: player paddle movement, AI paddle movement,
// ball integration, wall reflection, player paddle collision, AI paddle
// collision and scoring. The ordering is observable (a paddle that moves away
// in a tick cannot catch the ball from where it used to be) and tests rely on
// it.
//
// # Deterministic Testing
//
// Serve angles are the only random input. They come from the Rand passed to
// NewEngine, so a seeded *rand.Rand gives fully reproducible matches.
package pong
