package frame

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// ClockScheduler runs frames on a fixed-rate quartz ticker. Each Start creates
// a new ticker; Stop cancels it.
type ClockScheduler struct {
	clock    quartz.Clock
	interval time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	runs   uint64
	wg     sync.WaitGroup
}

// NewClockScheduler creates a scheduler ticking every interval.
func NewClockScheduler(clock quartz.Clock, interval time.Duration, logger *log.Logger) *ClockScheduler {
	return &ClockScheduler{
		clock:    clock,
		interval: interval,
		logger:   logger.WithPrefix("frame"),
	}
}

// Start begins ticking. A running ticker is replaced.
func (s *ClockScheduler) Start(frame func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.runs++

	s.logger.Debug("Starting frame ticker", "run", s.runs, "interval", s.interval)

	waiter := s.clock.TickerFunc(ctx, s.interval, func() error {
		// A tick can race with cancellation; never run a frame for a
		// cancelled run.
		if err := ctx.Err(); err != nil {
			return err
		}
		frame()
		return nil
	}, "frame")

	s.wg.Add(1)
	go func(run uint64) {
		defer s.wg.Done()
		err := waiter.Wait()
		s.logger.Debug("Frame ticker exited", "run", run, "reason", err)
	}(s.runs)
}

// Stop cancels the running ticker without waiting for it to exit.
func (s *ClockScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Running reports whether a ticker is active.
func (s *ClockScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Wait blocks until every ticker started so far has exited. Call it after Stop
// when shutting down; it must not be called from a frame callback.
func (s *ClockScheduler) Wait() {
	s.wg.Wait()
}
