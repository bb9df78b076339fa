package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/domain"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/service"
)

// Optimizer applies itinerary edits to a session.
type Optimizer interface {
	Optimize(ctx context.Context, req service.OptimizeRequest) (*itinerary.Result, error)
}

// OptimizeHandler handles HTTP requests for itinerary edits.
type OptimizeHandler struct {
	optimizer Optimizer
}

// NewOptimizeHandler creates a new OptimizeHandler.
func NewOptimizeHandler(optimizer Optimizer) *OptimizeHandler {
	return &OptimizeHandler{optimizer: optimizer}
}

// OptimizeRequest is the HTTP request body for an itinerary edit.
type OptimizeRequest struct {
	SessionID string       `json:"session_id"`
	Action    string       `json:"action"` // reorder, remove, discover, add
	Data      OptimizeData `json:"data"`
}

// OptimizeData carries the action's parameters.
type OptimizeData struct {
	DayNumber    int      `json:"day_number"`
	NewOrder     []string `json:"new_order,omitempty"`
	AttractionID string   `json:"attraction_id,omitempty"`
	Type         string   `json:"type,omitempty"`
	Location     string   `json:"location,omitempty"`
	Position     *int     `json:"position,omitempty"`
}

// OptimizeResponse is the HTTP response for an itinerary edit.
type OptimizeResponse struct {
	Success    bool                `json:"success"`
	TripPlan   *domain.TripPlan    `json:"trip_plan"`
	Candidates []domain.Attraction `json:"candidates,omitempty"`
}

// Optimize handles POST /v1/optimize
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.optimizer.Optimize(c.Request.Context(), service.OptimizeRequest{
		SessionID: req.SessionID,
		Action: itinerary.Action{
			Name:         req.Action,
			DayNumber:    req.Data.DayNumber,
			NewOrder:     req.Data.NewOrder,
			AttractionID: req.Data.AttractionID,
			Category:     req.Data.Type,
			Location:     req.Data.Location,
			Position:     req.Data.Position,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, OptimizeResponse{
		Success:    true,
		TripPlan:   result.Trip,
		Candidates: result.Candidates,
	})
}
