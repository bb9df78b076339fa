package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/domain"
)

// Planner answers chat messages.
type Planner interface {
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
}

// ChatHandler handles HTTP requests for the planning conversation.
type ChatHandler struct {
	planner Planner
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(planner Planner) *ChatHandler {
	return &ChatHandler{planner: planner}
}

// Chat handles POST /v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.planner.Chat(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, resp)
}
