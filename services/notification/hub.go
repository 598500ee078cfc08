package notification

import (
	"sync"
	"time"

	"tripflow/models"
	"tripflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const subscriberBuffer = 16

type subscriber struct {
	id string
	ch chan models.Event
}

// Hub fans session events out to in-process subscribers. Sends never
// block: a subscriber whose buffer is full is pruned on the spot.
type Hub struct {
	mu   sync.Mutex
	subs map[string][]*subscriber // sessionID -> subscribers
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string][]*subscriber)}
}

// Subscribe registers a listener for one session's events. The returned
// cancel func must be called when the listener goes away.
func (h *Hub) Subscribe(sessionID string) (<-chan models.Event, func()) {
	sub := &subscriber{id: uuid.New().String(), ch: make(chan models.Event, subscriberBuffer)}

	h.mu.Lock()
	h.subs[sessionID] = append(h.subs[sessionID], sub)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.removeLocked(sessionID, sub.id)
	}
	return sub.ch, cancel
}

// Publish delivers the event to every live subscriber of its session.
// Dead subscribers are pruned; delivery failures are logged and ignored.
func (h *Hub) Publish(event models.Event) {
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[event.SessionID]
	for _, sub := range subs {
		select {
		case sub.ch <- event:
		default:
			utils.GetLogger().Debug("Pruning slow event subscriber",
				zap.String("sessionId", event.SessionID), zap.String("subscriberId", sub.id))
			h.removeLocked(event.SessionID, sub.id)
		}
	}
}

// SubscriberCount reports live subscribers for a session.
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}

func (h *Hub) removeLocked(sessionID, subID string) {
	subs := h.subs[sessionID]
	for i, sub := range subs {
		if sub.id == subID {
			close(sub.ch)
			h.subs[sessionID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(h.subs[sessionID]) == 0 {
		delete(h.subs, sessionID)
	}
}
