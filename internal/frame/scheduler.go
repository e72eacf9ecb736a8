// Package frame drives a callback once per display frame.
//
// Scheduler is the seam between the simulation and whatever provides frame
// timing: ClockScheduler ticks at a fixed rate on a quartz.Clock, and
// ManualScheduler steps only when told to, for tests and headless runs.
package frame

import "time"

// Scheduler runs a frame callback repeatedly between Start and Stop.
//
// Stop must not block: it may be called from inside a frame callback or while
// the caller holds a lock the callback also needs. A callback that was already
// in flight when Stop returned may still run once, so callers guard state
// themselves (see session.Session).
type Scheduler interface {
	Start(frame func())
	Stop()
	Running() bool
}

// DefaultRate is the nominal display refresh rate.
const DefaultRate = 60

// Interval converts a rate in Hz to a frame interval. Rates below 1 fall back
// to DefaultRate.
func Interval(hz int) time.Duration {
	if hz < 1 {
		hz = DefaultRate
	}
	return time.Second / time.Duration(hz)
}
