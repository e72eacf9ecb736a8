package spectator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pingpong/internal/pong"
)

// Client follows a spectator feed and keeps the latest snapshot.
type Client struct {
	conn   *websocket.Conn
	logger *log.Logger
	events chan EventData
	done   chan struct{}

	mu        sync.RWMutex
	snapshot  pong.Snapshot
	haveSnap  bool
	err       error
	closeOnce sync.Once
}

// Dial connects to a feed. serverURL may use http, https, ws or wss; the /ws
// path is added when missing.
func Dial(ctx context.Context, serverURL string, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}

	logger = logger.WithPrefix("watch")
	logger.Info("Connecting to feed", "url", u.String())

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	c := &Client{
		conn:   conn,
		logger: logger,
		events: make(chan EventData, 64),
		done:   make(chan struct{}),
	}
	go c.readPump()
	return c, nil
}

// Snapshot returns the latest snapshot and whether one has arrived yet.
func (c *Client) Snapshot() (pong.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, c.haveSnap
}

// Events delivers match events. Events are dropped if the reader falls
// behind.
func (c *Client) Events() <-chan EventData {
	return c.events
}

// Done is closed when the feed ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns why the feed ended, or nil for a clean close.
func (c *Client) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Close disconnects from the feed.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = c.conn.Close()
	})
	return err
}

func (c *Client) readPump() {
	defer close(c.done)
	defer close(c.events)

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.mu.Lock()
				c.err = err
				c.mu.Unlock()
			}
			c.logger.Debug("Feed closed", "error", err)
			return
		}
		c.handle(&msg)
	}
}

func (c *Client) handle(msg *Message) {
	switch msg.Type {
	case MessageTypeSnapshot:
		var snap pong.Snapshot
		if err := json.Unmarshal(msg.Data, &snap); err != nil {
			c.logger.Warn("Bad snapshot", "error", err)
			return
		}
		c.mu.Lock()
		c.snapshot = snap
		c.haveSnap = true
		c.mu.Unlock()

	case MessageTypeEvent:
		var data EventData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.logger.Warn("Bad event", "error", err)
			return
		}
		select {
		case c.events <- data:
		default:
			c.logger.Debug("Dropping event", "event", data.Event)
		}

	default:
		c.logger.Debug("Unknown message type", "type", msg.Type)
	}
}
