package session

import (
	"math"
	"sync"
	"time"

	"github.com/lox/pingpong/internal/pong"
)

// EventType represents a match event type with type safety
type EventType string

const (
	EventTypeMatchStart EventType = "match_start"
	EventTypeMatchEnd   EventType = "match_end"
	EventTypePause      EventType = "pause"
	EventTypePaddleHit  EventType = "paddle_hit"
	EventTypePoint      EventType = "point"
	EventTypeFrame      EventType = "frame"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything that happens during a match
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// MatchStartEvent is published when a match begins or restarts
type MatchStartEvent struct {
	MatchID   string      `json:"matchId"`
	Layout    pong.Layout `json:"layout"`
	timestamp time.Time
}

func (e MatchStartEvent) EventType() EventType { return EventTypeMatchStart }
func (e MatchStartEvent) Timestamp() time.Time { return e.timestamp }

// MatchEndEvent is published when a side reaches the win score
type MatchEndEvent struct {
	MatchID     string    `json:"matchId"`
	Winner      pong.Side `json:"winner"`
	PlayerScore int       `json:"playerScore"`
	AIScore     int       `json:"aiScore"`
	Frames      uint64    `json:"frames"`
	timestamp   time.Time
}

func (e MatchEndEvent) EventType() EventType { return EventTypeMatchEnd }
func (e MatchEndEvent) Timestamp() time.Time { return e.timestamp }

// PauseEvent is published on every pause toggle
type PauseEvent struct {
	MatchID   string `json:"matchId"`
	Paused    bool   `json:"paused"`
	Frame     uint64 `json:"frame"`
	timestamp time.Time
}

func (e PauseEvent) EventType() EventType { return EventTypePause }
func (e PauseEvent) Timestamp() time.Time { return e.timestamp }

// PaddleHitEvent is published when the ball comes off a paddle
type PaddleHitEvent struct {
	MatchID   string    `json:"matchId"`
	Side      pong.Side `json:"side"`
	Speed     float64   `json:"speed"` // horizontal speed after the hit
	Frame     uint64    `json:"frame"`
	timestamp time.Time
}

func (e PaddleHitEvent) EventType() EventType { return EventTypePaddleHit }
func (e PaddleHitEvent) Timestamp() time.Time { return e.timestamp }

// PointEvent is published whenever a side scores
type PointEvent struct {
	MatchID     string    `json:"matchId"`
	Scorer      pong.Side `json:"scorer"`
	PlayerScore int       `json:"playerScore"`
	AIScore     int       `json:"aiScore"`
	Frame       uint64    `json:"frame"`
	timestamp   time.Time
}

func (e PointEvent) EventType() EventType { return EventTypePoint }
func (e PointEvent) Timestamp() time.Time { return e.timestamp }

// FrameEvent carries the snapshot produced by a tick or phase change
type FrameEvent struct {
	Snapshot  pong.Snapshot `json:"snapshot"`
	timestamp time.Time
}

func (e FrameEvent) EventType() EventType { return EventTypeFrame }
func (e FrameEvent) Timestamp() time.Time { return e.timestamp }

// NewFrameEvent wraps a snapshot
func NewFrameEvent(snap pong.Snapshot) FrameEvent {
	return FrameEvent{Snapshot: snap, timestamp: time.Now()}
}

// DetectEvents derives the domain events implied by one tick. A paddle hit is
// a reversal of horizontal direction in a tick where nobody scored; scoring
// reverses direction on its own when the serve goes back the other way.
func DetectEvents(matchID string, frame uint64, prev, next pong.State) []Event {
	now := time.Now()
	var events []Event

	scored := pong.NoSide
	switch {
	case next.PlayerScore > prev.PlayerScore:
		scored = pong.PlayerSide
	case next.AIScore > prev.AIScore:
		scored = pong.AISide
	}

	if scored == pong.NoSide && math.Signbit(prev.BallVX) != math.Signbit(next.BallVX) {
		side := pong.PlayerSide
		if next.BallVX < 0 {
			side = pong.AISide
		}
		events = append(events, PaddleHitEvent{
			MatchID:   matchID,
			Side:      side,
			Speed:     math.Abs(next.BallVX),
			Frame:     frame,
			timestamp: now,
		})
	}

	if scored != pong.NoSide {
		events = append(events, PointEvent{
			MatchID:     matchID,
			Scorer:      scored,
			PlayerScore: next.PlayerScore,
			AIScore:     next.AIScore,
			Frame:       frame,
			timestamp:   now,
		})
	}

	if next.Phase == pong.Finished && prev.Phase != pong.Finished {
		events = append(events, MatchEndEvent{
			MatchID:     matchID,
			Winner:      next.Winner,
			PlayerScore: next.PlayerScore,
			AIScore:     next.AIScore,
			Frames:      frame,
			timestamp:   now,
		})
	}
	return events
}

// EventSubscriber can subscribe to match events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(events ...Event)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers are called
// on the publishing goroutine, in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends events to all subscribers
func (bus *SimpleEventBus) Publish(events ...Event) {
	bus.mu.RLock()
	subscribers := bus.subscribers
	bus.mu.RUnlock()

	for _, event := range events {
		for _, subscriber := range subscribers {
			subscriber.OnEvent(event)
		}
	}
}
