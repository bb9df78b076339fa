package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/domain"
)

// Sessions reads and clears a session's stored trip.
type Sessions interface {
	Load(ctx context.Context, sessionID string) (*domain.TripPlan, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionHandler handles HTTP requests for session trips.
type SessionHandler struct {
	sessions Sessions
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions Sessions) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// GetTrip handles GET /v1/sessions/:session_id/trip
func (h *SessionHandler) GetTrip(c *gin.Context) {
	trip, err := h.sessions.Load(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /v1/sessions/:session_id/trip
func (h *SessionHandler) DeleteTrip(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("session_id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
