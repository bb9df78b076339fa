package domain

import "time"

// Preferences is the structured travel intent extracted from a chat message.
type Preferences struct {
	Destination  string   `json:"destination"`
	DurationDays int      `json:"duration_days"`
	Interests    []string `json:"interests"`
	Budget       *float64 `json:"budget,omitempty"`
}

// ChatRequest is a single user message in a planning conversation.
type ChatRequest struct {
	Message   string         `json:"message"`
	SessionID string         `json:"session_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

// ChatResponse is the assistant reply, optionally carrying a freshly planned trip.
type ChatResponse struct {
	Text        string    `json:"text"`
	TripPlan    *TripPlan `json:"trip_plan,omitempty"`
	SessionID   string    `json:"session_id"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []string  `json:"suggestions"`
}
