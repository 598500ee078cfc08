package planner

import (
	"strings"

	"tripflow/models"
	"tripflow/services/gathering"
)

// DefaultStages is the fixed fallback stage set used when classification
// cannot run.
var DefaultStages = []string{
	gathering.StageTransportAir,
	gathering.StageLodging,
	gathering.StagePOI,
	gathering.StageBudget,
}

var stageCues = map[string][]string{
	gathering.StageTransportAir:    {"flight", "fly", "plane", "airport"},
	gathering.StageTransportGround: {"train", "bus", "drive", "driving", "car", "road trip"},
	gathering.StageDining:          {"food", "restaurant", "dining", "eat", "cuisine"},
	gathering.StagePOI:             {"museum", "sight", "attraction", "activities", "things to do", "see", "visit"},
	gathering.StageLodging:         {"hotel", "stay", "hostel", "accommodation", "lodging"},
	gathering.StageBudget:          {"budget", "cost", "cheap", "price", "afford"},
}

var lodgingOptOuts = []string{"no hotel", "skip lodging", "no accommodation", "staying with"}
var poiOptOuts = []string{"no sightseeing", "skip attractions"}

// SelectStages chooses which gathering stages apply to a validated
// intent, combining keyword cues, implicit signals and defaults. The
// output is ordered by registry topology and advisory only.
func SelectStages(intent models.TripIntent, utterance string) []string {
	lower := strings.ToLower(utterance)

	selected := map[string]bool{}
	for stage, cues := range stageCues {
		for _, cue := range cues {
			if strings.Contains(lower, cue) {
				selected[stage] = true
				break
			}
		}
	}

	// A differing source and destination implies air travel.
	if !strings.EqualFold(strings.TrimSpace(intent.Source), strings.TrimSpace(intent.Destination)) {
		selected[gathering.StageTransportAir] = true
	}

	// Lodging and points of interest are included unless explicitly
	// opted out.
	if !containsAny(lower, lodgingOptOuts) {
		selected[gathering.StageLodging] = true
	}
	if !containsAny(lower, poiOptOuts) {
		selected[gathering.StagePOI] = true
	}
	if intent.HasPreference("food") {
		selected[gathering.StageDining] = true
	}

	// Budget always runs; it aggregates whatever the other stages found.
	selected[gathering.StageBudget] = true

	ordered := make([]string, 0, len(selected))
	for _, stage := range []string{
		gathering.StageTransportAir,
		gathering.StageTransportGround,
		gathering.StageLodging,
		gathering.StagePOI,
		gathering.StageDining,
		gathering.StageBudget,
	} {
		if selected[stage] {
			ordered = append(ordered, stage)
		}
	}
	if len(ordered) == 0 {
		return append([]string(nil), DefaultStages...)
	}
	return ordered
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
