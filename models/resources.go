package models

import "time"

// Flight directions.
const (
	DirectionOutbound = "outbound"
	DirectionInbound  = "inbound"
)

// ReviewInsight carries distilled review sentiment for a resource. It is
// populated lazily, during itinerary assembly.
type ReviewInsight struct {
	Sentiment  string   `bson:"sentiment" json:"sentiment"`
	Strengths  []string `bson:"strengths,omitempty" json:"strengths,omitempty"`
	Weaknesses []string `bson:"weaknesses,omitempty" json:"weaknesses,omitempty"`
}

type Flight struct {
	Airline   string         `bson:"airline" json:"airline"`
	FlightNo  string         `bson:"flightNo" json:"flightNo"`
	From      string         `bson:"from" json:"from"`
	To        string         `bson:"to" json:"to"`
	Departure time.Time      `bson:"departure" json:"departure"`
	Arrival   time.Time      `bson:"arrival" json:"arrival"`
	Price     float64        `bson:"price" json:"price"`
	Direction string         `bson:"direction" json:"direction"`
	Synthetic bool           `bson:"synthetic" json:"synthetic"`
	Review    *ReviewInsight `bson:"review,omitempty" json:"review,omitempty"`
}

type Lodging struct {
	Name        string         `bson:"name" json:"name"`
	Area        string         `bson:"area" json:"area"`
	NightlyRate float64        `bson:"nightlyRate" json:"nightlyRate"`
	Rating      float64        `bson:"rating" json:"rating"`
	Tier        string         `bson:"tier" json:"tier"` // budget, mid, luxury
	Synthetic   bool           `bson:"synthetic" json:"synthetic"`
	Review      *ReviewInsight `bson:"review,omitempty" json:"review,omitempty"`
}

type PointOfInterest struct {
	Name        string         `bson:"name" json:"name"`
	Category    string         `bson:"category" json:"category"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	EntryFee    float64        `bson:"entryFee" json:"entryFee"`
	Lat         float64        `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng         float64        `bson:"lng,omitempty" json:"lng,omitempty"`
	Synthetic   bool           `bson:"synthetic" json:"synthetic"`
	Review      *ReviewInsight `bson:"review,omitempty" json:"review,omitempty"`
}

type DiningOption struct {
	Name       string         `bson:"name" json:"name"`
	Cuisine    string         `bson:"cuisine" json:"cuisine"`
	PriceLevel int            `bson:"priceLevel" json:"priceLevel"` // 1..4
	Rating     float64        `bson:"rating" json:"rating"`
	Synthetic  bool           `bson:"synthetic" json:"synthetic"`
	Review     *ReviewInsight `bson:"review,omitempty" json:"review,omitempty"`
}

// RouteInfo summarizes ground transport between source and destination.
type RouteInfo struct {
	Mode          string  `bson:"mode" json:"mode"` // train, bus, car
	DurationHours float64 `bson:"durationHours" json:"durationHours"`
	Price         float64 `bson:"price" json:"price"`
	Synthetic     bool    `bson:"synthetic" json:"synthetic"`
}

// BudgetEstimate is the aggregated trip cost breakdown.
type BudgetEstimate struct {
	Transport   float64 `bson:"transport" json:"transport"`
	Lodging     float64 `bson:"lodging" json:"lodging"`
	Dining      float64 `bson:"dining" json:"dining"`
	Attractions float64 `bson:"attractions" json:"attractions"`
	Ground      float64 `bson:"ground" json:"ground"`
	Contingency float64 `bson:"contingency" json:"contingency"`
	Total       float64 `bson:"total" json:"total"`
	Currency    string  `bson:"currency" json:"currency"`
	Synthetic   bool    `bson:"synthetic" json:"synthetic"`
}

// GatheredResources holds everything the gathering stages produce for a
// session.
type GatheredResources struct {
	Flights []Flight          `bson:"flights,omitempty" json:"flights,omitempty"`
	Lodging *Lodging          `bson:"lodging,omitempty" json:"lodging,omitempty"`
	POIs    []PointOfInterest `bson:"pois,omitempty" json:"pois,omitempty"`
	Dining  []DiningOption    `bson:"dining,omitempty" json:"dining,omitempty"`
	Budget  *BudgetEstimate   `bson:"budget,omitempty" json:"budget,omitempty"`
	Route   *RouteInfo        `bson:"route,omitempty" json:"route,omitempty"`
}
