package notification

import "tripflow/models"

// Publisher pushes session/job events to live subscribers. Delivery is
// best-effort and at-most-once; pipeline correctness never depends on it.
type Publisher interface {
	Publish(event models.Event)
}

// NopPublisher drops every event. The pipeline must function with zero
// subscribers.
type NopPublisher struct{}

func (NopPublisher) Publish(event models.Event) {}
