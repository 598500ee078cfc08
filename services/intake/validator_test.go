package intake

import (
	"context"
	"strings"
	"testing"
	"time"

	"tripflow/models"
	"tripflow/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

func newTestService() *DefaultSlotFillService {
	svc := NewDefaultSlotFillService(intelligence.NewFallbackLanguageService())
	svc.Now = func() time.Time { return testNow }
	return svc
}

func TestCheckAsksFieldsInPriorityOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	session := &models.Session{ID: "s1"}

	require.NoError(t, svc.Check(ctx, session))
	assert.False(t, session.Valid)
	assert.Equal(t, models.FieldSource, session.PendingField)
	assert.Equal(t, models.AwaitingSlotFill, session.Awaiting)
	assert.NotEmpty(t, session.Question)
	require.Len(t, session.Transcript, 1)
	assert.Equal(t, "assistant", session.Transcript[0].Role)

	// Destination present skips straight from source to dates.
	session = &models.Session{ID: "s2", Intent: models.TripIntent{Destination: "Paris", PartySize: 2}}
	require.NoError(t, svc.Check(ctx, session))
	assert.Equal(t, models.FieldSource, session.PendingField)
	svc.ConsumeReply(ctx, session, "New York")
	require.NoError(t, svc.Check(ctx, session))
	assert.Equal(t, models.FieldStartDate, session.PendingField)
}

func TestOnlyMissingSourceDefaultsWithoutAsking(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	start := time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC)
	session := &models.Session{ID: "s1", Intent: models.TripIntent{
		Destination: "Paris", StartDate: &start, EndDate: &end, PartySize: 2,
	}}

	require.NoError(t, svc.Check(ctx, session))
	assert.True(t, session.Valid)
	assert.Equal(t, "New York", session.Intent.Source)
	assert.Equal(t, models.AwaitingNone, session.Awaiting)
	assert.Empty(t, session.Question)
	assert.Empty(t, session.Transcript, "no question was asked")
}

func TestFiveMissingFieldsTakeFiveReplies(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	session := &models.Session{ID: "s1"}

	replies := []string{"New York", "Paris", "2026-12-20", "2026-12-27", "two of us"}
	rounds := 0
	require.NoError(t, svc.Check(ctx, session))
	for !session.Valid {
		require.Less(t, rounds, len(replies), "more rounds than replies")
		svc.ConsumeReply(ctx, session, replies[rounds])
		require.NoError(t, svc.Check(ctx, session))
		rounds++
	}

	assert.Equal(t, len(replies), rounds)
	assert.Equal(t, "New York", session.Intent.Source)
	assert.Equal(t, "Paris", session.Intent.Destination)
	assert.Equal(t, 2, session.Intent.PartySize)
	assert.Equal(t, 7, session.Intent.Nights())
	assert.Equal(t, models.AwaitingNone, session.Awaiting)
	assert.Empty(t, session.PendingField)
}

func TestFlexibleReplySubstitutesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	session := &models.Session{ID: "s1", Intent: models.TripIntent{Source: "Boston", PartySize: 2}}

	require.NoError(t, svc.Check(ctx, session))
	require.Equal(t, models.FieldDestination, session.PendingField)
	svc.ConsumeReply(ctx, session, "surprise me")
	assert.Equal(t, "Paris", session.Intent.Destination)

	require.NoError(t, svc.Check(ctx, session))
	require.Equal(t, models.FieldStartDate, session.PendingField)
	svc.ConsumeReply(ctx, session, "whatever works")
	require.NotNil(t, session.Intent.StartDate)
	wantStart := testNow.Add(28 * 24 * time.Hour)
	assert.Equal(t, wantStart.Year(), session.Intent.StartDate.Year())
	assert.Equal(t, wantStart.Month(), session.Intent.StartDate.Month())
	assert.Equal(t, wantStart.Day(), session.Intent.StartDate.Day())

	require.NoError(t, svc.Check(ctx, session))
	require.Equal(t, models.FieldEndDate, session.PendingField)
	svc.ConsumeReply(ctx, session, "no preference")
	require.NotNil(t, session.Intent.EndDate)
	assert.Equal(t, 7, session.Intent.Nights())

	require.NoError(t, svc.Check(ctx, session))
	assert.True(t, session.Valid)
}

func TestUnparseableReplyReAsksSameField(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	session := &models.Session{ID: "s1", Intent: models.TripIntent{
		Source: "Boston", Destination: "Paris", PartySize: 2,
	}}

	require.NoError(t, svc.Check(ctx, session))
	require.Equal(t, models.FieldStartDate, session.PendingField)

	svc.ConsumeReply(ctx, session, "hmm not sure yet")
	assert.True(t, strings.HasPrefix(session.Question, "Sorry, I didn't quite catch that."))
	assert.Nil(t, session.Intent.StartDate)

	// Check keeps asking for the same field with the clarification.
	require.NoError(t, svc.Check(ctx, session))
	assert.Equal(t, models.FieldStartDate, session.PendingField)
	assert.True(t, strings.HasPrefix(session.Question, "Sorry, I didn't quite catch that."))

	// A good reply then advances normally.
	svc.ConsumeReply(ctx, session, "2026-12-20")
	require.NoError(t, svc.Check(ctx, session))
	assert.Equal(t, models.FieldEndDate, session.PendingField)
}

func TestPastStartDateRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	session := &models.Session{ID: "s1", Intent: models.TripIntent{
		Source: "Boston", Destination: "Paris", PartySize: 2,
	}}

	require.NoError(t, svc.Check(ctx, session))
	require.Equal(t, models.FieldStartDate, session.PendingField)

	svc.ConsumeReply(ctx, session, "2026-01-15")
	assert.Nil(t, session.Intent.StartDate)
	assert.True(t, strings.HasPrefix(session.Question, "Sorry, I didn't quite catch that."))
}

func TestEndDateMustFollowStartDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	start := time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC)
	session := &models.Session{ID: "s1", Intent: models.TripIntent{
		Source: "Boston", Destination: "Paris", PartySize: 2, StartDate: &start,
	}}

	require.NoError(t, svc.Check(ctx, session))
	require.Equal(t, models.FieldEndDate, session.PendingField)

	svc.ConsumeReply(ctx, session, "2026-12-18")
	assert.Nil(t, session.Intent.EndDate)

	svc.ConsumeReply(ctx, session, "2026-12-27")
	require.NotNil(t, session.Intent.EndDate)
	assert.Equal(t, 7, session.Intent.Nights())
}

func TestReplyWithNothingPendingIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	session := &models.Session{ID: "s1"}

	svc.ConsumeReply(ctx, session, "Paris")
	assert.Empty(t, session.Intent.Destination)
	assert.Empty(t, session.Transcript)
}
