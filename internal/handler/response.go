package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/catalog"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/repository"
	"tripplanner/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/itinerary/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, service.ErrNoTripForSession),
		errors.Is(err, itinerary.ErrAttractionNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidSessionID),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, itinerary.ErrInvalidDayNumber),
		errors.Is(err, itinerary.ErrUnknownAction),
		errors.Is(err, itinerary.ErrUnknownCategory),
		errors.Is(err, itinerary.ErrInvalidDuration),
		errors.Is(err, errInvalidQuery):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrSessionBusy):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
