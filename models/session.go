package models

import "time"

// Awaiting markers: what human input, if any, the session is suspended on.
const (
	AwaitingNone            = "none"
	AwaitingSlotFill        = "slot_fill"
	AwaitingFlightSelection = "flight_selection"
)

// Pipeline states for the planner state machine.
const (
	StateReceived   = "received"
	StateExtracting = "extracting"
	StateSlotFill   = "slot_fill"
	StateSelecting  = "selecting"
	StateGathering  = "gathering"
	StateAssembling = "assembling"
	StateComplete   = "complete"
	StateReplanning = "replanning"
	StateFailed     = "failed"
)

// Message is one transcript entry.
type Message struct {
	Role string    `bson:"role" json:"role"` // user, assistant
	Text string    `bson:"text" json:"text"`
	Time time.Time `bson:"time" json:"time"`
}

// Session is the durable record of one planning conversation. It holds
// context between pipeline suspensions the same way a booking session
// holds context between matching and confirmation.
type Session struct {
	ID                 string            `bson:"id" json:"sessionId"`
	State              string            `bson:"state" json:"state"`
	Intent             TripIntent        `bson:"intent" json:"intent"`
	Valid              bool              `bson:"valid" json:"valid"`
	MissingFields      []string          `bson:"missingFields,omitempty" json:"missingFields,omitempty"`
	PendingField       string            `bson:"pendingField,omitempty" json:"pendingField,omitempty"`
	Utterance          string            `bson:"utterance" json:"utterance"`
	Transcript         []Message         `bson:"transcript,omitempty" json:"transcript,omitempty"`
	Stages             []string          `bson:"stages,omitempty" json:"stages,omitempty"`
	StagesPending      []string          `bson:"stagesPending,omitempty" json:"stagesPending,omitempty"`
	Resources          GatheredResources `bson:"resources" json:"resources"`
	SelectedFlight     *int              `bson:"selectedFlight,omitempty" json:"selectedFlight,omitempty"`
	Itinerary          *Itinerary        `bson:"itinerary,omitempty" json:"itinerary,omitempty"`
	ItineraryText      string            `bson:"itineraryText,omitempty" json:"itineraryText,omitempty"`
	Error              string            `bson:"error,omitempty" json:"error,omitempty"`
	Awaiting           string            `bson:"awaiting" json:"awaiting"`
	Question           string            `bson:"question,omitempty" json:"question,omitempty"`
	VisitedPlaces      map[string]bool   `bson:"visitedPlaces,omitempty" json:"visitedPlaces,omitempty"`
	VisitedRestaurants map[string]bool   `bson:"visitedRestaurants,omitempty" json:"visitedRestaurants,omitempty"`
	CurrentDay         int               `bson:"currentDay" json:"currentDay"`
	TotalDays          int               `bson:"totalDays" json:"totalDays"`
	ActiveJobID        string            `bson:"activeJobId,omitempty" json:"activeJobId,omitempty"`
	CreatedAt          time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// AppendMessage records a transcript entry.
func (s *Session) AppendMessage(role, text string) {
	s.Transcript = append(s.Transcript, Message{Role: role, Text: text, Time: time.Now()})
}

// HasItinerary reports whether a completed itinerary exists, the
// precondition for feedback.
func (s *Session) HasItinerary() bool {
	return s.Itinerary != nil
}

// SessionSnapshot is the boundary view of a session.
type SessionSnapshot struct {
	SessionID     string     `json:"sessionId"`
	State         string     `json:"state"`
	Awaiting      string     `json:"awaiting"`
	Question      string     `json:"question,omitempty"`
	Valid         bool       `json:"valid"`
	MissingFields []string   `json:"missingFields,omitempty"`
	Intent        TripIntent `json:"intent"`
	FlightOptions []Flight   `json:"flightOptions,omitempty"`
	Itinerary     *Itinerary `json:"itinerary,omitempty"`
	ItineraryText string     `json:"itineraryText,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// Snapshot builds the boundary view exposed by the session endpoint.
func (s *Session) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		SessionID:     s.ID,
		State:         s.State,
		Awaiting:      s.Awaiting,
		Question:      s.Question,
		Valid:         s.Valid,
		MissingFields: s.MissingFields,
		Intent:        s.Intent,
		Itinerary:     s.Itinerary,
		ItineraryText: s.ItineraryText,
		Error:         s.Error,
	}
	if s.Awaiting == AwaitingFlightSelection {
		snap.FlightOptions = s.Resources.Flights
	}
	return snap
}
