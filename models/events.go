package models

import "time"

// Event types pushed to live subscribers. Delivery is best-effort; job
// polling stays the authoritative channel.
const (
	EventJobUpdate      = "job_update"
	EventAwaitingInput  = "awaiting_input"
	EventItineraryReady = "itinerary_ready"
)

type Event struct {
	Type      string         `json:"type"`
	SessionID string         `json:"sessionId"`
	JobID     string         `json:"jobId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Time      time.Time      `json:"time"`
}
