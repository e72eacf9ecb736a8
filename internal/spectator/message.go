package spectator

import (
	"encoding/json"
	"time"

	"github.com/lox/pingpong/internal/session"
)

// MessageType identifies a feed message
type MessageType string

const (
	// MessageTypeSnapshot carries a pong.Snapshot
	MessageTypeSnapshot MessageType = "snapshot"
	// MessageTypeEvent carries an EventData
	MessageTypeEvent MessageType = "event"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// EventData wraps a match event with its type so clients can decode the
// payload.
type EventData struct {
	Event   session.EventType `json:"event"`
	Payload json.RawMessage   `json:"payload"`
}

// messageFor converts a session event into a feed message.
func messageFor(event session.Event) (*Message, error) {
	if fe, ok := event.(session.FrameEvent); ok {
		msg, err := NewMessage(MessageTypeSnapshot, fe.Snapshot)
		if err != nil {
			return nil, err
		}
		msg.Timestamp = fe.Timestamp()
		return msg, nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	msg, err := NewMessage(MessageTypeEvent, EventData{Event: event.EventType(), Payload: payload})
	if err != nil {
		return nil, err
	}
	msg.Timestamp = event.Timestamp()
	return msg, nil
}
