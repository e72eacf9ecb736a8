package input

import (
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/pingpong/internal/pong"
	"github.com/stretchr/testify/assert"
)

// fakePhases records the intents it receives.
type fakePhases struct {
	phase   pong.Phase
	starts  int
	toggles int
}

func (f *fakePhases) Phase() pong.Phase { return f.phase }
func (f *fakePhases) StartGame()        { f.starts++; f.phase = pong.Playing }
func (f *fakePhases) TogglePause() {
	f.toggles++
	if f.phase == pong.Playing {
		f.phase = pong.Paused
	} else {
		f.phase = pong.Playing
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestNormalize(t *testing.T) {
	tests := map[string]Key{
		"ArrowUp":   KeyUp,
		"up":        KeyUp,
		"ArrowDown": KeyDown,
		"W":         KeyW,
		"s":         KeyS,
		" ":         KeyPause,
		"space":     KeyPause,
		"Enter":     KeyStart,
		"q":         Key("q"),
	}
	for raw, want := range tests {
		assert.Equal(t, want, Normalize(raw), raw)
	}
}

func TestTrackerControls(t *testing.T) {
	tr := NewTracker(nil, quietLogger())

	assert.Equal(t, pong.Controls{}, tr.Controls())

	tr.Press("ArrowUp")
	assert.Equal(t, pong.Controls{Up: true}, tr.Controls())

	tr.Press("s")
	assert.Equal(t, pong.Controls{Up: true, Down: true}, tr.Controls())

	tr.Release("up")
	assert.Equal(t, pong.Controls{Down: true}, tr.Controls())

	t.Run("alternate keys hold independently", func(t *testing.T) {
		tr.Press("down")
		tr.Release("s")
		assert.Equal(t, pong.Controls{Down: true}, tr.Controls())
		tr.Release("down")
		assert.Equal(t, pong.Controls{}, tr.Controls())
	})

	t.Run("non-movement keys are not held", func(t *testing.T) {
		tr.Press("q")
		tr.Press(" ")
		assert.Empty(t, tr.Held())
	})

	t.Run("reset releases everything", func(t *testing.T) {
		tr.Press("w")
		tr.Press("down")
		assert.Equal(t, []Key{KeyDown, KeyW}, tr.Held())
		tr.Reset()
		assert.Empty(t, tr.Held())
	})
}

func TestTrackerEdges(t *testing.T) {
	t.Run("start honoured outside Playing", func(t *testing.T) {
		for _, phase := range []pong.Phase{pong.Idle, pong.Paused, pong.Finished} {
			f := &fakePhases{phase: phase}
			NewTracker(f, quietLogger()).Press("enter")
			assert.Equal(t, 1, f.starts, phase.String())
		}
	})

	t.Run("start ignored while Playing", func(t *testing.T) {
		f := &fakePhases{phase: pong.Playing}
		NewTracker(f, quietLogger()).Press("enter")
		assert.Zero(t, f.starts)
	})

	t.Run("pause toggles between Playing and Paused", func(t *testing.T) {
		f := &fakePhases{phase: pong.Playing}
		tr := NewTracker(f, quietLogger())
		tr.Press(" ")
		assert.Equal(t, pong.Paused, f.phase)
		tr.Press(" ")
		assert.Equal(t, pong.Playing, f.phase)
		assert.Equal(t, 2, f.toggles)
	})

	t.Run("pause ignored when Idle or Finished", func(t *testing.T) {
		for _, phase := range []pong.Phase{pong.Idle, pong.Finished} {
			f := &fakePhases{phase: phase}
			NewTracker(f, quietLogger()).Press("space")
			assert.Zero(t, f.toggles, phase.String())
		}
	})

	t.Run("edges fire regardless of held movement keys", func(t *testing.T) {
		f := &fakePhases{phase: pong.Idle}
		tr := NewTracker(f, quietLogger())
		tr.Press("up")
		tr.Press("enter")
		assert.Equal(t, 1, f.starts)
		assert.Equal(t, pong.Controls{Up: true}, tr.Controls())
	})
}

func TestTrackerConcurrentAccess(t *testing.T) {
	tr := NewTracker(nil, quietLogger())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				tr.Press("w")
				tr.Release("w")
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		_ = tr.Controls()
	}
	wg.Wait()
	assert.Equal(t, pong.Controls{}, tr.Controls())
}
