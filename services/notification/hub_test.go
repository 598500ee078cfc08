package notification

import (
	"testing"

	"tripflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToSessionSubscribersOnly(t *testing.T) {
	hub := NewHub()
	ch1, cancel1 := hub.Subscribe("s1")
	defer cancel1()
	ch2, cancel2 := hub.Subscribe("s2")
	defer cancel2()

	hub.Publish(models.Event{Type: models.EventJobUpdate, SessionID: "s1"})

	select {
	case event := <-ch1:
		assert.Equal(t, models.EventJobUpdate, event.Type)
		assert.False(t, event.Time.IsZero(), "publish stamps a missing time")
	default:
		t.Fatal("s1 subscriber received nothing")
	}

	select {
	case <-ch2:
		t.Fatal("s2 subscriber received an s1 event")
	default:
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("s1")
	require.Equal(t, 1, hub.SubscriberCount("s1"))

	cancel()
	assert.Equal(t, 0, hub.SubscriberCount("s1"))

	_, open := <-ch
	assert.False(t, open, "cancel closes the channel")

	// Publishing after cancel is harmless.
	hub.Publish(models.Event{Type: models.EventJobUpdate, SessionID: "s1"})
}

func TestHubPrunesSlowSubscriber(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe("s1")
	defer cancel()

	// Fill the buffer without draining; the next publish prunes.
	for i := 0; i <= subscriberBuffer; i++ {
		hub.Publish(models.Event{Type: models.EventJobUpdate, SessionID: "s1"})
	}
	assert.Equal(t, 0, hub.SubscriberCount("s1"))
}

func TestMultiPublisherFansOut(t *testing.T) {
	hub1 := NewHub()
	hub2 := NewHub()
	ch1, cancel1 := hub1.Subscribe("s1")
	defer cancel1()
	ch2, cancel2 := hub2.Subscribe("s1")
	defer cancel2()

	multi := MultiPublisher{hub1, hub2, NopPublisher{}}
	multi.Publish(models.Event{Type: models.EventItineraryReady, SessionID: "s1"})

	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)
}
