package gathering

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"tripflow/models"
)

// Synthetic placeholder data, deterministic for a given intent so that
// re-running a stage against an unchanged intent yields identical output.

var syntheticAirlines = []string{
	"Atlas Air", "Meridian Airways", "Pacific Crest", "Northline", "Aurora Air", "Skyhaven",
}

var syntheticLodgings = []struct {
	name string
	tier string
	rate float64
}{
	{"Central Plaza Hotel", "mid", 145},
	{"The Grand Meridian", "luxury", 320},
	{"Old Town Hostel", "budget", 48},
	{"Riverside Boutique", "mid", 175},
	{"Imperial Palace Hotel", "luxury", 410},
	{"Budget Stay Inn", "budget", 62},
}

var syntheticPOIs = []struct {
	name     string
	category string
	fee      float64
}{
	{"National Museum", "museum", 18},
	{"Old Town Square", "landmark", 0},
	{"Botanical Gardens", "nature", 12},
	{"City Art Gallery", "museum", 15},
	{"Harbor Promenade", "landmark", 0},
	{"Historic Castle", "landmark", 22},
	{"Riverside Market", "market", 0},
	{"Observation Tower", "viewpoint", 25},
}

var syntheticDining = []struct {
	name    string
	cuisine string
	level   int
}{
	{"La Petite Table", "french", 3},
	{"Harbor Grill", "seafood", 3},
	{"Noodle House", "asian", 1},
	{"Trattoria Bella", "italian", 2},
	{"The Garden Bistro", "vegetarian", 2},
	{"Spice Route", "indian", 2},
}

// intentSeed derives a stable seed from the parts of the intent a stage
// depends on.
func intentSeed(intent models.TripIntent, stage string) int64 {
	h := fnv.New64a()
	h.Write([]byte(stage))
	h.Write([]byte(intent.Source))
	h.Write([]byte(intent.Destination))
	if intent.StartDate != nil {
		h.Write([]byte(intent.StartDate.Format("2006-01-02")))
	}
	if intent.EndDate != nil {
		h.Write([]byte(intent.EndDate.Format("2006-01-02")))
	}
	return int64(h.Sum64())
}

// syntheticFlights builds 3 outbound and 3 inbound candidates, each
// direction sorted ascending by price.
func syntheticFlights(intent models.TripIntent) []models.Flight {
	rng := rand.New(rand.NewSource(intentSeed(intent, StageTransportAir)))

	build := func(direction, from, to string, day *time.Time) []models.Flight {
		flights := make([]models.Flight, 0, 3)
		for i := 0; i < 3; i++ {
			airline := syntheticAirlines[rng.Intn(len(syntheticAirlines))]
			departure := time.Now().Add(24 * time.Hour)
			if day != nil {
				departure = day.Add(time.Duration(7+4*i) * time.Hour)
			}
			duration := time.Duration(2+rng.Intn(9)) * time.Hour
			flights = append(flights, models.Flight{
				Airline:   airline,
				FlightNo:  fmt.Sprintf("%s%d", initials(airline), 100+rng.Intn(900)),
				From:      from,
				To:        to,
				Departure: departure,
				Arrival:   departure.Add(duration),
				Price:     float64(180 + rng.Intn(520)),
				Direction: direction,
				Synthetic: true,
			})
		}
		sort.Slice(flights, func(a, b int) bool { return flights[a].Price < flights[b].Price })
		return flights
	}

	out := build(models.DirectionOutbound, intent.Source, intent.Destination, intent.StartDate)
	in := build(models.DirectionInbound, intent.Destination, intent.Source, intent.EndDate)
	return append(out, in...)
}

func syntheticLodgingOptions(intent models.TripIntent) []models.Lodging {
	rng := rand.New(rand.NewSource(intentSeed(intent, StageLodging)))
	options := make([]models.Lodging, 0, len(syntheticLodgings))
	for _, l := range syntheticLodgings {
		options = append(options, models.Lodging{
			Name:        l.name,
			Area:        intent.Destination,
			NightlyRate: l.rate + float64(rng.Intn(30)),
			Rating:      3.5 + rng.Float64()*1.5,
			Tier:        l.tier,
			Synthetic:   true,
		})
	}
	return options
}

func syntheticPOIOptions(intent models.TripIntent) []models.PointOfInterest {
	pois := make([]models.PointOfInterest, 0, len(syntheticPOIs))
	for _, p := range syntheticPOIs {
		pois = append(pois, models.PointOfInterest{
			Name:      p.name,
			Category:  p.category,
			EntryFee:  p.fee,
			Synthetic: true,
		})
	}
	return pois
}

func syntheticDiningOptions(intent models.TripIntent) []models.DiningOption {
	rng := rand.New(rand.NewSource(intentSeed(intent, StageDining)))
	options := make([]models.DiningOption, 0, len(syntheticDining))
	for _, d := range syntheticDining {
		options = append(options, models.DiningOption{
			Name:       d.name,
			Cuisine:    d.cuisine,
			PriceLevel: d.level,
			Rating:     3.5 + rng.Float64()*1.5,
			Synthetic:  true,
		})
	}
	return options
}

func syntheticRoute(intent models.TripIntent) *models.RouteInfo {
	rng := rand.New(rand.NewSource(intentSeed(intent, StageTransportGround)))
	return &models.RouteInfo{
		Mode:          "train",
		DurationHours: 2 + rng.Float64()*6,
		Price:         float64(40 + rng.Intn(80)),
		Synthetic:     true,
	}
}

func initials(name string) string {
	out := make([]byte, 0, 2)
	for _, word := range []byte(name) {
		if word >= 'A' && word <= 'Z' {
			out = append(out, word)
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) < 2 {
		out = append(out, 'X')
	}
	return string(out)
}
