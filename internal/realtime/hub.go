package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tripplanner/internal/domain"
)

const defaultWriteTimeout = 5 * time.Second

// subscriber wraps a connection; gorilla connections allow one concurrent writer.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(payload []byte, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(timeout))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub fans session events out to websocket subscribers.
type Hub struct {
	mu           sync.Mutex
	sessions     map[string]map[*subscriber]struct{}
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		sessions:     make(map[string]map[*subscriber]struct{}),
		writeTimeout: defaultWriteTimeout,
		logger:       logger,
	}
}

// Serve registers conn for sessionID, sends initial and then blocks reading
// until the client disconnects or ctx is done. The connection is closed on return.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, sessionID string, initial domain.Event) error {
	sub := &subscriber{conn: conn}
	h.add(sessionID, sub)
	defer func() {
		h.remove(sessionID, sub)
		conn.Close()
	}()

	payload, err := json.Marshal(initial)
	if err != nil {
		return err
	}
	if err := sub.write(payload, h.writeTimeout); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		// Client messages carry nothing we act on; reading keeps control frames flowing.
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
				h.logger.Debug("Websocket closed unexpectedly", zap.String("session_id", sessionID), zap.Error(err))
			}
			return nil
		}
	}
}

// Publish sends event to every subscriber of sessionID. Subscribers that
// cannot be written to are dropped.
func (h *Hub) Publish(ctx context.Context, sessionID string, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	for _, sub := range h.snapshot(sessionID) {
		if err := sub.write(payload, h.writeTimeout); err != nil {
			h.logger.Debug("Dropping websocket subscriber", zap.String("session_id", sessionID), zap.Error(err))
			h.remove(sessionID, sub)
			sub.conn.Close()
		}
	}
	return nil
}

// Subscribers returns the number of live connections for sessionID.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sessionID, subs := range h.sessions {
		for sub := range subs {
			sub.conn.Close()
		}
		delete(h.sessions, sessionID)
	}
}

func (h *Hub) add(sessionID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.sessions[sessionID]
	if !ok {
		subs = make(map[*subscriber]struct{})
		h.sessions[sessionID] = subs
	}
	subs[sub] = struct{}{}
}

func (h *Hub) remove(sessionID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.sessions[sessionID]
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.sessions, sessionID)
	}
}

func (h *Hub) snapshot(sessionID string) []*subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*subscriber, 0, len(h.sessions[sessionID]))
	for sub := range h.sessions[sessionID] {
		out = append(out, sub)
	}
	return out
}
