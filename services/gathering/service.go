package gathering

import (
	"context"
	"sort"
	"sync"
	"time"

	"tripflow/models"
	"tripflow/utils"

	"go.uber.org/zap"
)

// GatheringService runs selected gathering stages against a session.
type GatheringService interface {
	// RunStages executes the selected stages, respecting registry
	// dependencies and running independent stages concurrently. It never
	// fails; every stage degrades to synthetic data.
	RunStages(ctx context.Context, session *models.Session, selected []string) error
	Registry() *Registry
}

// DefaultGatheringService implements GatheringService with pluggable
// providers.
type DefaultGatheringService struct {
	Flights  FlightProvider
	Lodgings LodgingProvider
	POIs     POIProvider
	Dining   DiningProvider
	Routes   RouteProvider

	// Timeout bounds each provider call; expiry converts to the
	// synthetic fallback instead of blocking the pipeline.
	Timeout time.Duration

	registry *Registry
}

func NewDefaultGatheringService(timeout time.Duration) *DefaultGatheringService {
	svc := &DefaultGatheringService{Timeout: timeout}
	svc.registry = svc.buildRegistry()
	return svc
}

func (svc *DefaultGatheringService) Registry() *Registry {
	return svc.registry
}

func (svc *DefaultGatheringService) buildRegistry() *Registry {
	r := NewRegistry()
	r.Register(&Stage{Name: StageTransportAir, Run: svc.runTransportAir})
	r.Register(&Stage{Name: StageTransportGround, Run: svc.runTransportGround})
	r.Register(&Stage{Name: StageLodging, Run: svc.runLodging})
	r.Register(&Stage{Name: StagePOI, Run: svc.runPOI})
	r.Register(&Stage{Name: StageDining, Run: svc.runDining})
	r.Register(&Stage{
		Name: StageBudget,
		DependsOn: []string{
			StageTransportAir, StageTransportGround, StageLodging, StagePOI, StageDining,
		},
		Run: svc.runBudget,
	})
	return r
}

func (svc *DefaultGatheringService) RunStages(ctx context.Context, session *models.Session, selected []string) error {
	batches, err := svc.registry.Plan(selected)
	if err != nil {
		return err
	}
	logger := utils.GetLogger()

	for _, batch := range batches {
		var wg sync.WaitGroup
		for _, stage := range batch {
			wg.Add(1)
			go func(stage *Stage) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						logger.Error("Gathering stage panicked",
							zap.String("sessionId", session.ID),
							zap.String("stage", stage.Name), zap.Any("panic", r))
					}
				}()
				stage.Run(ctx, session)
			}(stage)
		}
		wg.Wait()
	}
	return nil
}

func (svc *DefaultGatheringService) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := svc.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func (svc *DefaultGatheringService) runTransportAir(ctx context.Context, session *models.Session) {
	logger := utils.GetLogger()

	if svc.Flights != nil {
		callCtx, cancel := svc.callCtx(ctx)
		flights, err := svc.Flights.SearchFlights(callCtx, session.Intent)
		cancel()
		if err == nil && len(flights) > 0 {
			sortFlightsByDirection(flights)
			session.Resources.Flights = flights
			return
		}
		if err != nil {
			logger.Warn("Flight provider failed, using synthetic data",
				zap.String("sessionId", session.ID), zap.Error(err))
		}
	}
	session.Resources.Flights = syntheticFlights(session.Intent)
}

func (svc *DefaultGatheringService) runTransportGround(ctx context.Context, session *models.Session) {
	logger := utils.GetLogger()

	if svc.Routes != nil {
		callCtx, cancel := svc.callCtx(ctx)
		route, err := svc.Routes.SearchRoute(callCtx, session.Intent)
		cancel()
		if err == nil && route != nil {
			session.Resources.Route = route
			return
		}
		if err != nil {
			logger.Warn("Route provider failed, using synthetic data",
				zap.String("sessionId", session.ID), zap.Error(err))
		}
	}
	session.Resources.Route = syntheticRoute(session.Intent)
}

func (svc *DefaultGatheringService) runLodging(ctx context.Context, session *models.Session) {
	logger := utils.GetLogger()

	var options []models.Lodging
	if svc.Lodgings != nil {
		callCtx, cancel := svc.callCtx(ctx)
		found, err := svc.Lodgings.SearchLodging(callCtx, session.Intent)
		cancel()
		if err != nil {
			logger.Warn("Lodging provider failed, using synthetic data",
				zap.String("sessionId", session.ID), zap.Error(err))
		} else {
			options = found
		}
	}
	if len(options) == 0 {
		options = syntheticLodgingOptions(session.Intent)
	}

	best := rankLodging(options, session.Intent)
	session.Resources.Lodging = &best
}

// rankLodging picks the best option for the intent: budget preference
// takes the lowest nightly rate, luxury the highest, otherwise the best
// rated.
func rankLodging(options []models.Lodging, intent models.TripIntent) models.Lodging {
	ranked := make([]models.Lodging, len(options))
	copy(ranked, options)

	switch {
	case intent.HasPreference("budget"):
		sort.Slice(ranked, func(a, b int) bool { return ranked[a].NightlyRate < ranked[b].NightlyRate })
	case intent.HasPreference("luxury"):
		sort.Slice(ranked, func(a, b int) bool { return ranked[a].NightlyRate > ranked[b].NightlyRate })
	default:
		sort.Slice(ranked, func(a, b int) bool { return ranked[a].Rating > ranked[b].Rating })
	}
	return ranked[0]
}

func (svc *DefaultGatheringService) runPOI(ctx context.Context, session *models.Session) {
	logger := utils.GetLogger()

	if svc.POIs != nil {
		callCtx, cancel := svc.callCtx(ctx)
		pois, err := svc.POIs.SearchPOIs(callCtx, session.Intent)
		cancel()
		if err == nil && len(pois) > 0 {
			session.Resources.POIs = pois
			return
		}
		if err != nil {
			logger.Warn("POI provider failed, using synthetic data",
				zap.String("sessionId", session.ID), zap.Error(err))
		}
	}
	session.Resources.POIs = syntheticPOIOptions(session.Intent)
}

func (svc *DefaultGatheringService) runDining(ctx context.Context, session *models.Session) {
	logger := utils.GetLogger()

	if svc.Dining != nil {
		callCtx, cancel := svc.callCtx(ctx)
		dining, err := svc.Dining.SearchDining(callCtx, session.Intent)
		cancel()
		if err == nil && len(dining) > 0 {
			session.Resources.Dining = dining
			return
		}
		if err != nil {
			logger.Warn("Dining provider failed, using synthetic data",
				zap.String("sessionId", session.ID), zap.Error(err))
		}
	}
	session.Resources.Dining = syntheticDiningOptions(session.Intent)
}

func sortFlightsByDirection(flights []models.Flight) {
	sort.SliceStable(flights, func(a, b int) bool {
		if flights[a].Direction != flights[b].Direction {
			return flights[a].Direction == models.DirectionOutbound
		}
		return flights[a].Price < flights[b].Price
	})
}
