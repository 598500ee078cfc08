package planner

import (
	"testing"

	"tripflow/models"
	"tripflow/services/gathering"

	"github.com/stretchr/testify/assert"
)

func feedbackSession() *models.Session {
	idx := 0
	return &models.Session{
		ID: "s1",
		Resources: models.GatheredResources{
			Flights: []models.Flight{{Airline: "Northline", Direction: models.DirectionOutbound}},
			Lodging: &models.Lodging{Name: "Boutique"},
			Route:   &models.RouteInfo{Mode: "train"},
		},
		SelectedFlight: &idx,
		Itinerary:      &models.Itinerary{},
	}
}

func TestApplyFeedbackFlightComplaint(t *testing.T) {
	session := feedbackSession()
	rerun := applyFeedback(session, FeedbackTransport, "the flight lands too late")

	assert.Equal(t, []string{gathering.StageTransportAir}, rerun)
	assert.Nil(t, session.Resources.Flights)
	assert.Nil(t, session.SelectedFlight)
	assert.NotNil(t, session.Resources.Route, "ground route untouched")
}

func TestApplyFeedbackGroundComplaint(t *testing.T) {
	session := feedbackSession()
	rerun := applyFeedback(session, FeedbackTransport, "the train takes too long")

	assert.Equal(t, []string{gathering.StageTransportGround}, rerun)
	assert.Nil(t, session.Resources.Route)
	assert.NotNil(t, session.Resources.Flights, "flights untouched")
}

func TestApplyFeedbackLodging(t *testing.T) {
	session := feedbackSession()
	rerun := applyFeedback(session, FeedbackLodging, "hotel is too far out")

	assert.Equal(t, []string{gathering.StageLodging}, rerun)
	assert.Nil(t, session.Resources.Lodging)
}

func TestApplyFeedbackScheduleOnlyReassembles(t *testing.T) {
	session := feedbackSession()
	rerun := applyFeedback(session, FeedbackSchedule, "mornings are too packed")

	assert.Empty(t, rerun)
	assert.NotNil(t, session.Resources.Flights)
	assert.NotNil(t, session.Resources.Lodging)
}

func TestValidFeedbackCategory(t *testing.T) {
	for _, c := range []string{
		FeedbackTransport, FeedbackLodging, FeedbackActivities,
		FeedbackDining, FeedbackSchedule, FeedbackBudget,
	} {
		assert.True(t, ValidFeedbackCategory(c), c)
	}
	assert.False(t, ValidFeedbackCategory("weather"))
	assert.False(t, ValidFeedbackCategory(""))
}
