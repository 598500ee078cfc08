package models

// Activity kinds.
const (
	ActivityTransport  = "transport"
	ActivityLodging    = "lodging"
	ActivityMeal       = "meal"
	ActivityAttraction = "attraction"
)

type Activity struct {
	Time   string         `bson:"time" json:"time"` // HH:MM
	Kind   string         `bson:"kind" json:"kind"`
	Title  string         `bson:"title" json:"title"`
	Detail string         `bson:"detail,omitempty" json:"detail,omitempty"`
	Lat    float64        `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng    float64        `bson:"lng,omitempty" json:"lng,omitempty"`
	Review *ReviewInsight `bson:"review,omitempty" json:"review,omitempty"`
}

type ItineraryDay struct {
	Day        int        `bson:"day" json:"day"` // 1-based
	Date       string     `bson:"date" json:"date"`
	Activities []Activity `bson:"activities" json:"activities"`
}

type TripSummary struct {
	Destination string  `bson:"destination" json:"destination"`
	StartDate   string  `bson:"startDate" json:"startDate"`
	EndDate     string  `bson:"endDate" json:"endDate"`
	Days        int     `bson:"days" json:"days"`
	TotalCost   float64 `bson:"totalCost" json:"totalCost"`
}

// Itinerary is the assembled day-by-day schedule.
type Itinerary struct {
	Summary    TripSummary    `bson:"summary" json:"summary"`
	Days       []ItineraryDay `bson:"days" json:"days"`
	Highlights []string       `bson:"highlights,omitempty" json:"highlights,omitempty"`
}
