package domain

import "time"

// EventType names a realtime message pushed to session subscribers.
type EventType string

const (
	EventInitialState EventType = "initial_state"
	EventTripUpdate   EventType = "trip_update"
)

// Event is the payload delivered to websocket subscribers of a session.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Action    string    `json:"action,omitempty"`
	TripPlan  *TripPlan `json:"trip_plan"`
	Timestamp time.Time `json:"timestamp"`
}
