package itinerary

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

func testSession() *models.Session {
	start := time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.December, 23, 0, 0, 0, 0, time.UTC)
	return &models.Session{
		ID: "s1",
		Intent: models.TripIntent{
			Source:      "New York",
			Destination: "Paris",
			StartDate:   &start,
			EndDate:     &end,
			PartySize:   2,
		},
		Resources: models.GatheredResources{
			Flights: []models.Flight{
				{
					Airline: "Northline", FlightNo: "NO210",
					From: "New York", To: "Paris",
					Departure: start.Add(8 * time.Hour), Arrival: start.Add(16 * time.Hour),
					Price: 420, Direction: models.DirectionOutbound,
				},
				{
					Airline: "Northline", FlightNo: "NO211",
					From: "Paris", To: "New York",
					Departure: end.Add(17 * time.Hour), Arrival: end.Add(25 * time.Hour),
					Price: 380, Direction: models.DirectionInbound,
				},
			},
			Lodging: &models.Lodging{Name: "Riverside Boutique", NightlyRate: 175},
			POIs: []models.PointOfInterest{
				{Name: "National Museum", Category: "museum"},
				{Name: "Old Town Square", Category: "landmark"},
				{Name: "Botanical Gardens", Category: "nature"},
				{Name: "City Art Gallery", Category: "museum"},
			},
			Dining: []models.DiningOption{
				{Name: "La Petite Table", Cuisine: "french"},
				{Name: "Harbor Grill", Cuisine: "seafood"},
				{Name: "Noodle House", Cuisine: "asian"},
			},
			Budget: &models.BudgetEstimate{Total: 3200, Currency: "USD"},
		},
	}
}

func newAssembler() *DefaultAssemblerService {
	return NewDefaultAssemblerService(intelligence.NewFallbackLanguageService(), intelligence.NullGeocoder{})
}

func TestAssembleCoversEveryTripDay(t *testing.T) {
	session := testSession()
	require.NoError(t, newAssembler().Assemble(context.Background(), session))

	it := session.Itinerary
	require.NotNil(t, it)
	require.Len(t, it.Days, 4) // Dec 20-23 inclusive

	assert.Equal(t, "Paris", it.Summary.Destination)
	assert.Equal(t, "2026-12-20", it.Summary.StartDate)
	assert.Equal(t, "2026-12-23", it.Summary.EndDate)
	assert.Equal(t, 3200.0, it.Summary.TotalCost)

	for i, day := range it.Days {
		assert.Equal(t, i+1, day.Day)
		assert.NotEmpty(t, day.Activities, "day %d has no activities", day.Day)
	}
	assert.NotEmpty(t, session.ItineraryText)
}

func TestAssembleFirstAndLastDayStructure(t *testing.T) {
	session := testSession()
	require.NoError(t, newAssembler().Assemble(context.Background(), session))
	days := session.Itinerary.Days

	first := days[0]
	require.GreaterOrEqual(t, len(first.Activities), 3)
	assert.Equal(t, models.ActivityTransport, first.Activities[0].Kind)
	assert.Contains(t, first.Activities[0].Title, "NO210")
	assert.Equal(t, models.ActivityLodging, first.Activities[1].Kind)
	assert.Contains(t, first.Activities[1].Title, "Check in at Riverside Boutique")

	last := days[len(days)-1]
	kinds := make([]string, 0, len(last.Activities))
	titles := make([]string, 0, len(last.Activities))
	for _, act := range last.Activities {
		kinds = append(kinds, act.Kind)
		titles = append(titles, act.Title)
	}
	assert.Contains(t, kinds, models.ActivityTransport)
	assert.Contains(t, strings.Join(titles, "\n"), "Check out from Riverside Boutique")
}

func TestAssembleMiddleDaysHaveMealsAndAttractions(t *testing.T) {
	session := testSession()
	require.NoError(t, newAssembler().Assemble(context.Background(), session))
	days := session.Itinerary.Days

	for _, day := range days[1 : len(days)-1] {
		var meals, attractions int
		for _, act := range day.Activities {
			switch act.Kind {
			case models.ActivityMeal:
				meals++
			case models.ActivityAttraction:
				attractions++
			}
		}
		assert.GreaterOrEqual(t, meals, 3, "day %d wants breakfast, lunch and dinner", day.Day)
		assert.GreaterOrEqual(t, attractions, 1, "day %d wants at least one attraction", day.Day)
	}
}

func TestAssembleNeverRepeatsAttractionsOrRestaurants(t *testing.T) {
	session := testSession()
	require.NoError(t, newAssembler().Assemble(context.Background(), session))

	seenAttractions := map[string]int{}
	seenDinners := map[string]int{}
	for _, day := range session.Itinerary.Days {
		for _, act := range day.Activities {
			switch act.Kind {
			case models.ActivityAttraction:
				seenAttractions[act.Title]++
			case models.ActivityMeal:
				if act.Review != nil { // resource-backed dining, not generic meals
					seenDinners[act.Title]++
				}
			}
		}
	}
	for name, count := range seenAttractions {
		assert.Equal(t, 1, count, "attraction %q scheduled more than once", name)
	}
	for name, count := range seenDinners {
		assert.Equal(t, 1, count, "restaurant %q scheduled more than once", name)
	}
}

func TestAssembleHighlightsOnlyScheduledResources(t *testing.T) {
	session := testSession()
	// Give every POI a review; only scheduled ones may surface.
	for i := range session.Resources.POIs {
		session.Resources.POIs[i].Review = &models.ReviewInsight{
			Sentiment: "positive",
			Strengths: []string{"worth the visit"},
		}
	}
	require.NoError(t, newAssembler().Assemble(context.Background(), session))

	scheduled := map[string]bool{}
	for _, day := range session.Itinerary.Days {
		for _, act := range day.Activities {
			scheduled[act.Title] = true
		}
	}
	for _, h := range session.Itinerary.Highlights {
		name := strings.SplitN(h, ":", 2)[0]
		assert.True(t, scheduled[name], "highlight %q references unscheduled resource", h)
	}
}

func TestAssembleSingleDayTrip(t *testing.T) {
	session := testSession()
	start := *session.Intent.StartDate
	session.Intent.EndDate = &start
	require.NoError(t, newAssembler().Assemble(context.Background(), session))

	require.Len(t, session.Itinerary.Days, 1)
	titles := make([]string, 0)
	for _, act := range session.Itinerary.Days[0].Activities {
		titles = append(titles, act.Title)
	}
	joined := strings.Join(titles, "\n")
	assert.Contains(t, joined, "Check in at Riverside Boutique")
	assert.Contains(t, joined, "Check out from Riverside Boutique")
	assert.Contains(t, joined, "Depart for New York")
}

func TestAssembleSelectedFlightDrivesArrival(t *testing.T) {
	session := testSession()
	idx := 0
	session.SelectedFlight = &idx
	require.NoError(t, newAssembler().Assemble(context.Background(), session))

	first := session.Itinerary.Days[0].Activities[0]
	assert.Contains(t, first.Title, "Northline NO210")
	assert.Equal(t, "16:00", first.Time) // arrival time of the chosen flight
}

func TestAssembleSelectedFlightDrivesDeparture(t *testing.T) {
	session := testSession()
	end := *session.Intent.EndDate
	// A second, pricier return option; the traveler picks it anyway.
	session.Resources.Flights = append(session.Resources.Flights, models.Flight{
		Airline: "Westward", FlightNo: "WD44",
		From: "Paris", To: "New York",
		Departure: end.Add(20 * time.Hour), Arrival: end.Add(28 * time.Hour),
		Price: 510, Direction: models.DirectionInbound,
	})
	idx := 2
	session.SelectedFlight = &idx
	require.NoError(t, newAssembler().Assemble(context.Background(), session))

	days := session.Itinerary.Days
	last := days[len(days)-1]
	var departure *models.Activity
	for i := range last.Activities {
		if last.Activities[i].Kind == models.ActivityTransport {
			departure = &last.Activities[i]
		}
	}
	require.NotNil(t, departure)
	assert.Contains(t, departure.Title, "Westward WD44")
	assert.Equal(t, "20:00", departure.Time)
}
