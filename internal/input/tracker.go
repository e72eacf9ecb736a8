// Package input turns raw key events into paddle controls and phase changes.
//
// Movement keys are level-triggered: the Tracker remembers which are held and
// the frame loop reads a Controls snapshot once per tick. Pause and start are
// edge-triggered on key press and go straight to a PhaseController; they are
// never seen by the simulation tick.
package input

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/pingpong/internal/pong"
)

// PhaseController receives the discrete intents.
type PhaseController interface {
	Phase() pong.Phase
	StartGame()
	TogglePause()
}

// Tracker records held movement keys. Press and Release may be called from the
// host's input goroutine while the frame loop reads Controls.
type Tracker struct {
	mu     sync.Mutex
	held   map[Key]struct{}
	phases PhaseController
	logger *log.Logger
}

// NewTracker creates a tracker that forwards pause/start edges to phases.
// phases may be nil, in which case edges are dropped.
func NewTracker(phases PhaseController, logger *log.Logger) *Tracker {
	return &Tracker{
		held:   make(map[Key]struct{}),
		phases: phases,
		logger: logger.WithPrefix("input"),
	}
}

// SetPhaseController replaces the edge target. It exists because the session
// and tracker reference each other.
func (t *Tracker) SetPhaseController(phases PhaseController) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = phases
}

// Press handles a key-down event.
func (t *Tracker) Press(raw string) {
	k := Normalize(raw)

	t.mu.Lock()
	if IsMovement(k) {
		t.held[k] = struct{}{}
	}
	phases := t.phases
	t.mu.Unlock()

	// Edges are dispatched without holding the lock so the controller may
	// read Controls while handling them.
	if phases == nil {
		return
	}
	switch IntentOf(k) {
	case TogglePause:
		switch phase := phases.Phase(); phase {
		case pong.Playing, pong.Paused:
			phases.TogglePause()
		default:
			t.logger.Debug("Ignoring pause", "phase", phase)
		}
	case Start:
		if phase := phases.Phase(); phase != pong.Playing {
			phases.StartGame()
		} else {
			t.logger.Debug("Ignoring start while playing")
		}
	}
}

// Release handles a key-up event.
func (t *Tracker) Release(raw string) {
	k := Normalize(raw)

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held, k)
}

// Controls returns the paddle input implied by the currently held keys.
func (t *Tracker) Controls() pong.Controls {
	t.mu.Lock()
	defer t.mu.Unlock()

	var c pong.Controls
	for k := range t.held {
		switch IntentOf(k) {
		case MoveUp:
			c.Up = true
		case MoveDown:
			c.Down = true
		}
	}
	return c
}

// Held returns the held keys in a stable order.
func (t *Tracker) Held() []Key {
	t.mu.Lock()
	defer t.mu.Unlock()

	keys := make([]Key, 0, len(t.held))
	for k := range t.held {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Reset releases every key, e.g. when the host loses focus.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.held)
}
