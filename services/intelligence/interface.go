package intelligence

import (
	"context"

	"tripflow/models"
)

// LanguageService is the contract for every language-model call the
// planner makes. Implementations must be safe for concurrent use.
type LanguageService interface {
	// ExtractIntent turns a raw utterance into a (possibly partial)
	// TripIntent draft.
	ExtractIntent(ctx context.Context, text string) (*models.TripIntent, error)
	// GenerateQuestion produces the next slot-filling question for the
	// given missing field, using what is already known plus the
	// conversation so far.
	GenerateQuestion(ctx context.Context, field string, intent models.TripIntent, history []models.Message) (string, error)
	// ClassifyFlexible reports whether a reply signals indifference
	// ("whatever works") rather than an actual answer.
	ClassifyFlexible(ctx context.Context, text string) (bool, error)
	// ComposeItinerary renders a narrative text for an assembled
	// itinerary.
	ComposeItinerary(ctx context.Context, itinerary *models.Itinerary, intent models.TripIntent) (string, error)
}

// Geocoder resolves a place name to coordinates. Resolve returns ok=false
// when the name cannot be resolved; it never blocks past its context.
type Geocoder interface {
	Resolve(ctx context.Context, name string) (lat, lng float64, ok bool)
}
