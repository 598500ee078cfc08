package planner

import (
	"strings"

	"tripflow/models"
	"tripflow/services/gathering"
)

// Feedback categories.
const (
	FeedbackTransport  = "transport"
	FeedbackLodging    = "lodging"
	FeedbackActivities = "activities"
	FeedbackDining     = "dining"
	FeedbackSchedule   = "schedule"
	FeedbackBudget     = "budget"
)

// ValidFeedbackCategory reports whether the category is recognized.
func ValidFeedbackCategory(category string) bool {
	switch category {
	case FeedbackTransport, FeedbackLodging, FeedbackActivities,
		FeedbackDining, FeedbackSchedule, FeedbackBudget:
		return true
	}
	return false
}

// applyFeedback clears the relevant resource fields and returns the
// stage subset to rerun. The assembler always re-executes afterwards,
// so an empty rerun list still regenerates the schedule.
func applyFeedback(session *models.Session, category, detail string) []string {
	switch category {
	case FeedbackTransport:
		if strings.Contains(strings.ToLower(detail), "flight") {
			session.Resources.Flights = nil
			session.SelectedFlight = nil
			return []string{gathering.StageTransportAir}
		}
		session.Resources.Route = nil
		return []string{gathering.StageTransportGround}
	case FeedbackLodging:
		session.Resources.Lodging = nil
		return []string{gathering.StageLodging}
	case FeedbackActivities:
		// Additive re-ranking; existing resources stay.
		return []string{gathering.StagePOI}
	case FeedbackDining:
		return []string{gathering.StageDining}
	case FeedbackSchedule:
		// Reassembly only.
		return nil
	case FeedbackBudget:
		return []string{gathering.StageBudget}
	}
	return nil
}
