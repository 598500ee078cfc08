package gathering

import (
	"context"
	"math"

	"tripflow/models"
)

// Historical category-level defaults, used when a gathered item carries
// no price of its own.
const (
	defaultFlightPrice   = 450.0
	defaultNightlyRate   = 120.0
	defaultDiningPerDiem = 35.0
	defaultAttractionFee = 18.0
	defaultGroundCost    = 60.0

	contingencyRate = 0.10
)

// runBudget aggregates every gathered category into a trip estimate:
// cheapest transport x party, lodging x nights, dining per diem x party x
// nights, attraction fees, ground transport, plus a fixed contingency.
func (svc *DefaultGatheringService) runBudget(ctx context.Context, session *models.Session) {
	intent := session.Intent
	res := &session.Resources
	party := float64(intent.PartySize)
	if party < 1 {
		party = 1
	}
	nights := float64(intent.Nights())
	if nights < 1 {
		nights = 1
	}

	transport := cheapestFare(res.Flights, models.DirectionOutbound) +
		cheapestFare(res.Flights, models.DirectionInbound)
	if transport == 0 {
		transport = defaultFlightPrice * 2
	}
	transport *= party

	nightly := defaultNightlyRate
	if res.Lodging != nil && res.Lodging.NightlyRate > 0 {
		nightly = res.Lodging.NightlyRate
	}
	lodging := nightly * nights

	dining := defaultDiningPerDiem * party * nights

	var attractions float64
	for _, poi := range res.POIs {
		fee := poi.EntryFee
		if fee == 0 && poi.Category != "landmark" && poi.Category != "market" {
			fee = defaultAttractionFee
		}
		attractions += fee * party
	}

	ground := defaultGroundCost
	if res.Route != nil && res.Route.Price > 0 {
		ground = res.Route.Price * party
	}

	subtotal := transport + lodging + dining + attractions + ground
	contingency := subtotal * contingencyRate

	synthetic := res.Lodging == nil || res.Lodging.Synthetic
	for _, f := range res.Flights {
		if f.Synthetic {
			synthetic = true
			break
		}
	}

	res.Budget = &models.BudgetEstimate{
		Transport:   round2(transport),
		Lodging:     round2(lodging),
		Dining:      round2(dining),
		Attractions: round2(attractions),
		Ground:      round2(ground),
		Contingency: round2(contingency),
		Total:       round2(subtotal + contingency),
		Currency:    "USD",
		Synthetic:   synthetic,
	}
}

func cheapestFare(flights []models.Flight, direction string) float64 {
	best := 0.0
	for _, f := range flights {
		if f.Direction != direction {
			continue
		}
		if best == 0 || f.Price < best {
			best = f.Price
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
