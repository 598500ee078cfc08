package intelligence

import (
	"testing"
	"time"

	"tripflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicExtract(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	intent := HeuristicExtract("I want to visit Paris from New York for 2 people, we love good food and museums", now)
	assert.Equal(t, "Paris", intent.Destination)
	assert.Equal(t, "New York", intent.Source)
	assert.Equal(t, 2, intent.PartySize)
	assert.Contains(t, intent.Preferences, "food")
	assert.Contains(t, intent.Preferences, "museums")
}

func TestHeuristicExtractDateRange(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	intent := HeuristicExtract("Trip to Rome 12/20/2026 to 12/27/2026", now)
	require.NotNil(t, intent.StartDate)
	require.NotNil(t, intent.EndDate)
	assert.Equal(t, time.December, intent.StartDate.Month())
	assert.Equal(t, 20, intent.StartDate.Day())
	assert.Equal(t, 27, intent.EndDate.Day())
}

func TestHeuristicExtractEmptyUtterance(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	intent := HeuristicExtract("plan something nice", now)
	assert.Empty(t, intent.Source)
	assert.Empty(t, intent.Destination)
	assert.Zero(t, intent.PartySize)
}

func TestHeuristicFlexible(t *testing.T) {
	assert.True(t, HeuristicFlexible("whatever you think is best"))
	assert.True(t, HeuristicFlexible("I'm flexible on dates"))
	assert.True(t, HeuristicFlexible("Surprise me!"))
	assert.False(t, HeuristicFlexible("December 20"))
	assert.False(t, HeuristicFlexible("Paris"))
}

func TestFallbackQuestionCoversAllFields(t *testing.T) {
	for _, field := range models.RequiredFields {
		assert.NotEmpty(t, FallbackQuestion(field), field)
	}
}

func TestRenderItineraryText(t *testing.T) {
	it := &models.Itinerary{
		Summary: models.TripSummary{
			Destination: "Paris", StartDate: "2026-12-20", EndDate: "2026-12-23",
			Days: 4, TotalCost: 3200,
		},
		Days: []models.ItineraryDay{
			{Day: 1, Date: "2026-12-20", Activities: []models.Activity{
				{Time: "15:00", Title: "Check in at Riverside Boutique"},
			}},
		},
		Highlights: []string{"National Museum: worth the visit"},
	}

	text := RenderItineraryText(it)
	assert.Contains(t, text, "Trip to Paris")
	assert.Contains(t, text, "Day 1 (2026-12-20)")
	assert.Contains(t, text, "Check in at Riverside Boutique")
	assert.Contains(t, text, "Highlights: National Museum")
}
