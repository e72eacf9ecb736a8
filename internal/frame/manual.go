package frame

import "sync"

// ManualScheduler invokes the frame only when stepped. It is deterministic and
// is what tests and headless runs use in place of a clock.
type ManualScheduler struct {
	mu      sync.Mutex
	frame   func()
	runs    []func()
	running bool
	frames  int
}

// NewManualScheduler creates a stopped scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Start(frame func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = frame
	s.runs = append(s.runs, frame)
	s.running = true
}

func (s *ManualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = nil
	s.running = false
}

func (s *ManualScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Step runs one frame if started and reports whether it did.
func (s *ManualScheduler) Step() bool {
	s.mu.Lock()
	frame := s.frame
	if frame != nil {
		s.frames++
	}
	s.mu.Unlock()

	if frame == nil {
		return false
	}
	frame()
	return true
}

// StepN runs up to n frames, stopping early if the scheduler is stopped, and
// returns how many ran.
func (s *ManualScheduler) StepN(n int) int {
	ran := 0
	for i := 0; i < n && s.Step(); i++ {
		ran++
	}
	return ran
}

// FireRun invokes the callback handed to the run-th Start call (1-based)
// even if the scheduler has since been stopped or restarted, the way a host
// callback that was already queued would fire late. It reports whether such a
// run exists.
func (s *ManualScheduler) FireRun(run int) bool {
	s.mu.Lock()
	var frame func()
	if run >= 1 && run <= len(s.runs) {
		frame = s.runs[run-1]
	}
	s.mu.Unlock()

	if frame == nil {
		return false
	}
	frame()
	return true
}

// Runs returns how many times Start has been called.
func (s *ManualScheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}

// Frames returns how many frames Step has run.
func (s *ManualScheduler) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
