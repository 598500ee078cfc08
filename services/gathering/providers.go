package gathering

import (
	"context"

	"tripflow/models"
)

// Provider contracts for each gathering category. Concrete providers are
// injected at wiring time; a nil provider, an error, or an empty result
// all route the stage to its synthetic fallback.

type FlightProvider interface {
	SearchFlights(ctx context.Context, intent models.TripIntent) ([]models.Flight, error)
}

type LodgingProvider interface {
	SearchLodging(ctx context.Context, intent models.TripIntent) ([]models.Lodging, error)
}

type POIProvider interface {
	SearchPOIs(ctx context.Context, intent models.TripIntent) ([]models.PointOfInterest, error)
}

type DiningProvider interface {
	SearchDining(ctx context.Context, intent models.TripIntent) ([]models.DiningOption, error)
}

type RouteProvider interface {
	SearchRoute(ctx context.Context, intent models.TripIntent) (*models.RouteInfo, error)
}
