package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tripplanner/internal/domain"
	"tripplanner/internal/service"
)

// Subscriber keeps a websocket connection attached to a session's updates.
type Subscriber interface {
	Serve(ctx context.Context, conn *websocket.Conn, sessionID string, initial domain.Event) error
}

// InitialStater builds the first event for a new subscriber.
type InitialStater interface {
	InitialState(sessionID string, trip *domain.TripPlan) domain.Event
}

// WSHandler upgrades session subscriptions to websockets.
type WSHandler struct {
	sessions Sessions
	hub      Subscriber
	events   InitialStater
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWSHandler creates a new WSHandler. Browser origins outside
// allowedOrigins are refused; requests without an Origin header are accepted.
func NewWSHandler(sessions Sessions, hub Subscriber, events InitialStater, allowedOrigins []string, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WSHandler{
		sessions: sessions,
		hub:      hub,
		events:   events,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Subscribe handles GET /ws/:session_id
func (h *WSHandler) Subscribe(c *gin.Context) {
	sessionID := c.Param("session_id")
	ctx := c.Request.Context()

	trip, err := h.sessions.Load(ctx, sessionID)
	if err != nil && !errors.Is(err, service.ErrNoTripForSession) {
		respondError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Debug("Websocket upgrade failed", zap.String("session_id", sessionID), zap.Error(err))
		return
	}

	if err := h.hub.Serve(ctx, conn, sessionID, h.events.InitialState(sessionID, trip)); err != nil {
		h.logger.Warn("Websocket session ended with error", zap.String("session_id", sessionID), zap.Error(err))
	}
}
