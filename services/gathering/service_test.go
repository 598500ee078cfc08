package gathering

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStagesFillsResourcesFromSyntheticFallback(t *testing.T) {
	ctx := context.Background()
	svc := NewDefaultGatheringService(time.Second)
	session := &models.Session{ID: "s1", Intent: testIntent()}

	err := svc.RunStages(ctx, session, []string{
		StageTransportAir, StageTransportGround, StageLodging, StagePOI, StageDining, StageBudget,
	})
	require.NoError(t, err)

	assert.Len(t, session.Resources.Flights, 6)
	assert.NotNil(t, session.Resources.Lodging)
	assert.NotEmpty(t, session.Resources.POIs)
	assert.NotEmpty(t, session.Resources.Dining)
	assert.NotNil(t, session.Resources.Route)
	require.NotNil(t, session.Resources.Budget)
	assert.True(t, session.Resources.Budget.Synthetic)
	assert.Greater(t, session.Resources.Budget.Total, 0.0)
}

type failingFlightProvider struct{}

func (failingFlightProvider) SearchFlights(ctx context.Context, intent models.TripIntent) ([]models.Flight, error) {
	return nil, errors.New("upstream unavailable")
}

type fixedLodgingProvider struct{ options []models.Lodging }

func (p fixedLodgingProvider) SearchLodging(ctx context.Context, intent models.TripIntent) ([]models.Lodging, error) {
	return p.options, nil
}

func TestProviderErrorFallsBackToSynthetic(t *testing.T) {
	ctx := context.Background()
	svc := NewDefaultGatheringService(time.Second)
	svc.Flights = failingFlightProvider{}
	session := &models.Session{ID: "s1", Intent: testIntent()}

	require.NoError(t, svc.RunStages(ctx, session, []string{StageTransportAir}))
	require.Len(t, session.Resources.Flights, 6)
	assert.True(t, session.Resources.Flights[0].Synthetic)
}

func TestRealProviderResultWins(t *testing.T) {
	ctx := context.Background()
	svc := NewDefaultGatheringService(time.Second)
	svc.Lodgings = fixedLodgingProvider{options: []models.Lodging{
		{Name: "Hotel Lumiere", NightlyRate: 210, Rating: 4.8},
	}}
	session := &models.Session{ID: "s1", Intent: testIntent()}

	require.NoError(t, svc.RunStages(ctx, session, []string{StageLodging}))
	require.NotNil(t, session.Resources.Lodging)
	assert.Equal(t, "Hotel Lumiere", session.Resources.Lodging.Name)
	assert.False(t, session.Resources.Lodging.Synthetic)
}

func TestRankLodgingHonorsPreferences(t *testing.T) {
	options := []models.Lodging{
		{Name: "Hostel", NightlyRate: 40, Rating: 3.8, Tier: "budget"},
		{Name: "Boutique", NightlyRate: 180, Rating: 4.9, Tier: "mid"},
		{Name: "Palace", NightlyRate: 400, Rating: 4.5, Tier: "luxury"},
	}

	budget := testIntent()
	budget.Preferences = []string{"budget"}
	assert.Equal(t, "Hostel", rankLodging(options, budget).Name)

	luxury := testIntent()
	luxury.Preferences = []string{"luxury"}
	assert.Equal(t, "Palace", rankLodging(options, luxury).Name)

	neutral := testIntent()
	assert.Equal(t, "Boutique", rankLodging(options, neutral).Name)
}
