package service

import (
	"context"
	"strings"

	"fuelroute/internal/domain"
	"fuelroute/internal/provider"
	"fuelroute/internal/repository"
)

// TripService orchestrates a full planning request: geocode the
// endpoints, fetch the route, pull the relevant slice of the station
// catalog, and run the planner. Provider failures are surfaced
// directly; the service does not retry them.
type TripService struct {
	geocoder    provider.Geocoder
	router      provider.RouteProvider
	stationRepo repository.StationRepository
	planner     *Planner
}

// NewTripService creates a new TripService.
func NewTripService(
	geocoder provider.Geocoder,
	router provider.RouteProvider,
	stationRepo repository.StationRepository,
	planner *Planner,
) *TripService {
	return &TripService{
		geocoder:    geocoder,
		router:      router,
		stationRepo: stationRepo,
		planner:     planner,
	}
}

// PlanTripRequest contains the parameters for planning a trip.
type PlanTripRequest struct {
	Start   string
	End     string
	Vehicle domain.VehicleProfile
}

// PlanTripResult contains the planned trip and its route context.
type PlanTripResult struct {
	Start   domain.Coordinate
	End     domain.Coordinate
	Route   *provider.Route
	Plan    *domain.TripPlan
	Summary StopSummary
}

// PlanTrip plans the fuel stops for a trip between two free-text
// locations.
func (s *TripService) PlanTrip(ctx context.Context, req PlanTripRequest) (*PlanTripResult, error) {
	if strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.End) == "" {
		return nil, ErrInvalidLocation
	}
	if req.Vehicle.TankRangeMiles <= 0 || req.Vehicle.FuelEconomyMPG <= 0 {
		return nil, ErrInvalidVehicleProfile
	}

	start, err := s.geocoder.Geocode(ctx, req.Start)
	if err != nil {
		return nil, err
	}

	end, err := s.geocoder.Geocode(ctx, req.End)
	if err != nil {
		return nil, err
	}

	route, err := s.router.Route(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// Coarse spatial prefilter: everything inside the buffered route
	// bounding box. The planner narrows by exact distance.
	bounds := domain.BoundsOf(route.Polyline).Expand(s.planner.policy.BBoxBufferDegrees)
	stations, err := s.stationRepo.QueryBoundingBox(ctx, bounds)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.Plan(ctx, PlanRequest{
		Start:         start,
		End:           end,
		Route:         route.Polyline,
		TotalDistance: route.DistanceMiles,
		Vehicle:       req.Vehicle,
		Stations:      stations,
	})
	if err != nil {
		return nil, err
	}

	return &PlanTripResult{
		Start:   start,
		End:     end,
		Route:   route,
		Plan:    plan,
		Summary: Summarize(plan.FuelStops),
	}, nil
}
