// Package session owns the authoritative match state and wires the input
// tracker, the frame scheduler and the simulation engine together.
//
// All state transitions happen under one mutex, which gives the same
// guarantees as a single cooperative loop: frames, start and pause intents and
// snapshot reads never interleave. Events are delivered after the mutex is
// released but in the order the transitions happened.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/pingpong/internal/frame"
	"github.com/lox/pingpong/internal/input"
	"github.com/lox/pingpong/internal/pong"
)

// Session is a single human-versus-AI table.
type Session struct {
	engine    *pong.Engine
	scheduler frame.Scheduler
	tracker   *input.Tracker
	bus       EventBus
	logger    *log.Logger
	matchIDs  func() string

	mu         sync.Mutex
	state      pong.State
	matchID    string
	frame      uint64
	generation uint64 // bumped on every scheduler restart; frames carry the value they were started with
	closed     bool

	// publishMu is taken before mu is released so events reach subscribers
	// in transition order.
	publishMu sync.Mutex
}

// Option configures a Session.
type Option func(*Session)

// WithEventBus replaces the default bus.
func WithEventBus(bus EventBus) Option {
	return func(s *Session) { s.bus = bus }
}

// WithMatchIDs replaces the UUIDv7 match ID generator.
func WithMatchIDs(next func() string) Option {
	return func(s *Session) { s.matchIDs = next }
}

// New creates an idle session. Subscribers on the event bus must not block and
// must not call back into the session synchronously.
func New(engine *pong.Engine, scheduler frame.Scheduler, logger *log.Logger, opts ...Option) *Session {
	s := &Session{
		engine:    engine,
		scheduler: scheduler,
		bus:       NewEventBus(),
		logger:    logger.WithPrefix("session"),
		matchIDs:  newMatchID,
		state:     engine.NewState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tracker = input.NewTracker(s, logger)
	return s
}

func newMatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Input returns the tracker hosts feed key events into.
func (s *Session) Input() *input.Tracker {
	return s.tracker
}

// Events returns the session's event bus.
func (s *Session) Events() EventBus {
	return s.bus
}

// Phase returns the current phase.
func (s *Session) Phase() pong.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase
}

// Snapshot returns a copy of the current state for rendering.
func (s *Session) Snapshot() pong.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() pong.Snapshot {
	return pong.Snapshot{
		MatchID: s.matchID,
		Frame:   s.frame,
		State:   s.state,
		Layout:  s.engine.Layout(),
	}
}

// StartGame begins a new match from any phase, discarding the previous one.
func (s *Session) StartGame() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state = s.engine.Start()
	s.matchID = s.matchIDs()
	s.frame = 0
	s.syncSchedulerLocked()

	snap := s.snapshotLocked()
	s.publishUnlock(
		MatchStartEvent{MatchID: snap.MatchID, Layout: snap.Layout, timestamp: time.Now()},
		NewFrameEvent(snap),
	)
}

// TogglePause flips between Playing and Paused. It is ignored in any other
// phase.
func (s *Session) TogglePause() {
	s.mu.Lock()
	if phase := s.state.Phase; s.closed || (phase != pong.Playing && phase != pong.Paused) {
		s.mu.Unlock()
		s.logger.Debug("Ignoring pause toggle", "phase", phase)
		return
	}
	s.state = s.engine.TogglePause(s.state)
	s.syncSchedulerLocked()

	snap := s.snapshotLocked()
	s.publishUnlock(
		PauseEvent{MatchID: s.matchID, Paused: snap.State.Phase == pong.Paused, Frame: s.frame, timestamp: time.Now()},
		NewFrameEvent(snap),
	)
}

// Close stops the scheduler for good. Frames already in flight are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
	s.scheduler.Stop()
}

// syncSchedulerLocked restarts scheduling to match the phase: running while
// Playing, stopped otherwise. Bumping the generation first means any frame
// from an earlier run is recognised as stale.
func (s *Session) syncSchedulerLocked() {
	s.generation++
	s.scheduler.Stop()
	if s.state.Phase == pong.Playing {
		gen := s.generation
		s.scheduler.Start(func() { s.step(gen) })
	}
}

// step runs one frame for the scheduler run identified by gen.
func (s *Session) step(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || s.state.Phase != pong.Playing {
		s.mu.Unlock()
		s.logger.Debug("Discarding stale frame", "generation", gen)
		return
	}

	prev := s.state
	next := s.engine.Tick(prev, s.tracker.Controls())
	s.state = next
	s.frame++

	events := DetectEvents(s.matchID, s.frame, prev, next)
	if next.Phase != pong.Playing {
		s.syncSchedulerLocked()
	}
	events = append(events, NewFrameEvent(s.snapshotLocked()))
	s.publishUnlock(events...)
}

// publishUnlock releases mu and delivers events. It must be called with mu
// held.
func (s *Session) publishUnlock(events ...Event) {
	s.publishMu.Lock()
	s.mu.Unlock()
	defer s.publishMu.Unlock()
	s.bus.Publish(events...)
}
