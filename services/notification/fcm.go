package notification

import (
	"context"
	"sync"
	"time"

	"tripflow/models"
	"tripflow/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMPublisher pushes session events to a registered device token over
// Firebase Cloud Messaging. Best-effort: send failures drop the token.
type FCMPublisher struct {
	client *messaging.Client
	mu     sync.Mutex
	tokens map[string]string // sessionID -> device token
}

func NewFCMPublisher(client *messaging.Client) *FCMPublisher {
	return &FCMPublisher{client: client, tokens: make(map[string]string)}
}

// RegisterToken associates a device token with a session.
func (p *FCMPublisher) RegisterToken(sessionID, token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[sessionID] = token
}

func (p *FCMPublisher) Publish(event models.Event) {
	if p.client == nil {
		return
	}
	p.mu.Lock()
	token, ok := p.tokens[event.SessionID]
	p.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := &messaging.Message{
		Token: token,
		Data: map[string]string{
			"type":      event.Type,
			"sessionId": event.SessionID,
			"jobId":     event.JobID,
		},
	}
	if _, err := p.client.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("FCM push failed, dropping token",
			zap.String("sessionId", event.SessionID), zap.Error(err))
		p.mu.Lock()
		delete(p.tokens, event.SessionID)
		p.mu.Unlock()
	}
}

// MultiPublisher fans one event out to several publishers.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(event models.Event) {
	for _, p := range m {
		p.Publish(event)
	}
}
