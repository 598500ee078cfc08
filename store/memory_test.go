package store

import (
	"context"
	"testing"

	"tripflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	session := &models.Session{ID: "s1", State: models.StateReceived, Utterance: "trip to Paris"}
	require.NoError(t, m.PutSession(ctx, session))

	got, err := m.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "trip to Paris", got.Utterance)

	// The returned session is a copy; mutating it does not write back.
	got.Utterance = "changed"
	again, err := m.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "trip to Paris", again.Utterance)

	require.NoError(t, m.DeleteSession(ctx, "s1"))
	_, err = m.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreJobRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.GetJob(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	job := &models.Job{ID: "j1", SessionID: "s1", Status: models.JobPending}
	require.NoError(t, m.PutJob(ctx, job))

	got, err := m.GetJob(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, models.JobPending, got.Status)
}

func TestMemoryStoreAcquireJobIsExclusive(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	require.NoError(t, m.AcquireJob(ctx, "s1", "j1"))

	// A second job cannot claim the same session.
	assert.ErrorIs(t, m.AcquireJob(ctx, "s1", "j2"), ErrJobConflict)

	// The holder can re-acquire its own claim.
	assert.NoError(t, m.AcquireJob(ctx, "s1", "j1"))

	// Release by a non-holder is a no-op.
	require.NoError(t, m.ReleaseJob(ctx, "s1", "j2"))
	assert.ErrorIs(t, m.AcquireJob(ctx, "s1", "j2"), ErrJobConflict)

	// Release by the holder frees the session.
	require.NoError(t, m.ReleaseJob(ctx, "s1", "j1"))
	assert.NoError(t, m.AcquireJob(ctx, "s1", "j2"))
}
