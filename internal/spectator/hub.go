// Package spectator broadcasts a session's snapshots and events to read-only
// websocket clients.
package spectator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pingpong/internal/session"
)

// Hub fans session events out to every connected spectator. It is a session
// event subscriber and never blocks the publisher: a spectator whose buffer is
// full is disconnected.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu          sync.RWMutex
	connections map[*connection]struct{}
	latest      *Message
}

// NewHub creates a hub with no spectators
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// Read-only feed; any origin may watch.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("spectator"),
		connections: make(map[*connection]struct{}),
	}
}

// Handler returns the HTTP handler serving /ws and /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

// ListenAndServe serves the feed on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return h.Serve(ctx, ln)
}

// Serve serves the feed on ln until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("Serving spectator feed", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		h.Close()
		return err
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down spectator feed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		c.close()
		delete(h.connections, c)
	}
}

// Spectators returns the number of connected spectators.
func (h *Hub) Spectators() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// OnEvent implements session.EventSubscriber.
func (h *Hub) OnEvent(event session.Event) {
	msg, err := messageFor(event)
	if err != nil {
		h.logger.Error("Failed to encode event", "type", event.EventType(), "error", err)
		return
	}

	h.mu.Lock()
	if msg.Type == MessageTypeSnapshot {
		h.latest = msg
	}
	var dropped []*connection
	for c := range h.connections {
		if !c.enqueue(msg) {
			dropped = append(dropped, c)
		}
	}
	for _, c := range dropped {
		delete(h.connections, c)
	}
	h.mu.Unlock()

	for _, c := range dropped {
		h.logger.Warn("Dropping slow spectator")
		c.close()
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := newConnection(conn, h.logger)

	h.mu.Lock()
	h.connections[c] = struct{}{}
	if h.latest != nil {
		c.enqueue(h.latest)
	}
	total := len(h.connections)
	h.mu.Unlock()

	h.logger.Info("Spectator connected", "total", total)
	c.start()

	go func() {
		<-c.ctx.Done()
		h.mu.Lock()
		delete(h.connections, c)
		total := len(h.connections)
		h.mu.Unlock()
		h.logger.Info("Spectator disconnected", "total", total)
	}()
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
