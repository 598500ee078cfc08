package planner

import (
	"testing"

	"tripflow/models"
	"tripflow/services/gathering"

	"github.com/stretchr/testify/assert"
)

func TestSelectStagesDefaults(t *testing.T) {
	intent := models.TripIntent{Source: "New York", Destination: "Paris"}
	stages := SelectStages(intent, "I want to go on a trip")

	assert.Contains(t, stages, gathering.StageTransportAir, "differing source and destination implies air")
	assert.Contains(t, stages, gathering.StageLodging)
	assert.Contains(t, stages, gathering.StagePOI)
	assert.Contains(t, stages, gathering.StageBudget, "budget always runs")
	assert.NotContains(t, stages, gathering.StageTransportGround)
}

func TestSelectStagesKeywordCues(t *testing.T) {
	intent := models.TripIntent{Source: "Munich", Destination: "Vienna"}

	stages := SelectStages(intent, "we'd like to take the train and find great restaurants")
	assert.Contains(t, stages, gathering.StageTransportGround)
	assert.Contains(t, stages, gathering.StageDining)

	stages = SelectStages(intent, "skip lodging, we are staying with friends")
	assert.NotContains(t, stages, gathering.StageLodging)
}

func TestSelectStagesFoodPreferenceAddsDining(t *testing.T) {
	intent := models.TripIntent{
		Source: "New York", Destination: "Paris",
		Preferences: []string{"food"},
	}
	stages := SelectStages(intent, "plan my trip")
	assert.Contains(t, stages, gathering.StageDining)
}

func TestSelectStagesOrderedByTopology(t *testing.T) {
	intent := models.TripIntent{Source: "New York", Destination: "Paris"}
	stages := SelectStages(intent, "flights, a hotel, museums, restaurants and the budget please")

	// Budget sorts last regardless of cue order in the utterance.
	assert.Equal(t, gathering.StageBudget, stages[len(stages)-1])
}
