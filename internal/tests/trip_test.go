package tests

import (
	"context"
	"errors"
	"math"
	"testing"

	"fuelroute/internal/domain"
	"fuelroute/internal/geo"
	"fuelroute/internal/provider"
	"fuelroute/internal/service"
)

const milesPerDegree = geo.EarthRadiusMiles * math.Pi / 180

// meridianRoute builds a polyline running due north from (startLat,
// lon) with points every stepMiles.
func meridianRoute(startLat, lon, totalMiles, stepMiles float64) domain.RoutePolyline {
	n := int(totalMiles / stepMiles)
	route := make(domain.RoutePolyline, 0, n+1)
	for i := 0; i <= n; i++ {
		route = append(route, domain.Coordinate{
			Lat: startLat + float64(i)*stepMiles/milesPerDegree,
			Lon: lon,
		})
	}
	return route
}

func newTripFixture() (*service.TripService, *MockGeocoder, *MockRouteProvider, *MockStationRepository) {
	geocoder := NewMockGeocoder()
	routeProvider := NewMockRouteProvider()
	stationRepo := NewMockStationRepository()
	planner := service.NewPlanner(
		service.DistanceFunc(func(_ context.Context, a, b domain.Coordinate) float64 {
			return geo.Miles(a, b)
		}),
		service.DefaultPlannerPolicy(),
	)
	svc := service.NewTripService(geocoder, routeProvider, stationRepo, planner)
	return svc, geocoder, routeProvider, stationRepo
}

func TestPlanTripEndToEnd(t *testing.T) {
	svc, geocoder, routeProvider, stationRepo := newTripFixture()

	route := meridianRoute(35, -100, 900, 10)
	start, end := route[0], route[len(route)-1]
	geocoder.AddLocation("Amarillo, TX", start)
	geocoder.AddLocation("Pierre, SD", end)
	routeProvider.SetRoute(&provider.Route{
		Polyline:      route,
		DistanceMiles: 900,
		Steps: []provider.RouteStep{
			{Name: "US-87 N", Maneuver: "depart", DistanceMiles: 900},
		},
	})
	stationRepo.AddStation(&domain.FuelStation{
		ID:          "st-450",
		Name:        "Midpoint Fuel",
		Lat:         35 + 450/milesPerDegree,
		Lon:         -99.995,
		RetailPrice: 3.00,
	})

	result, err := svc.PlanTrip(context.Background(), service.PlanTripRequest{
		Start:   "Amarillo, TX",
		End:     "Pierre, SD",
		Vehicle: domain.VehicleProfile{TankRangeMiles: 500, FuelEconomyMPG: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Start != start || result.End != end {
		t.Errorf("endpoints = %+v / %+v, want geocoded coordinates", result.Start, result.End)
	}
	if len(result.Plan.FuelStops) != 1 {
		t.Fatalf("expected one fuel stop, got %d", len(result.Plan.FuelStops))
	}
	if result.Plan.FuelStops[0].StationID != "st-450" {
		t.Errorf("stop station = %s, want st-450", result.Plan.FuelStops[0].StationID)
	}
	if math.Abs(result.Plan.TotalCost-270) > 0.05 {
		t.Errorf("TotalCost = %v, want about 270", result.Plan.TotalCost)
	}
	if result.Summary.StopCount != 1 {
		t.Errorf("Summary.StopCount = %d, want 1", result.Summary.StopCount)
	}

	if geocoder.GeocodeCallCount != 2 {
		t.Errorf("GeocodeCallCount = %d, want 2", geocoder.GeocodeCallCount)
	}
	if routeProvider.RouteCallCount != 1 {
		t.Errorf("RouteCallCount = %d, want 1", routeProvider.RouteCallCount)
	}
}

func TestPlanTripCatalogBounds(t *testing.T) {
	svc, geocoder, routeProvider, stationRepo := newTripFixture()

	route := meridianRoute(35, -100, 300, 10)
	geocoder.AddLocation("a", route[0])
	geocoder.AddLocation("b", route[len(route)-1])
	routeProvider.SetRoute(&provider.Route{Polyline: route, DistanceMiles: 300})

	_, err := svc.PlanTrip(context.Background(), service.PlanTripRequest{
		Start:   "a",
		End:     "b",
		Vehicle: domain.VehicleProfile{TankRangeMiles: 500, FuelEconomyMPG: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The catalog query uses the route bounding box buffered by one
	// degree on every side.
	want := domain.BoundsOf(route).Expand(1.0)
	if stationRepo.LastBounds != want {
		t.Errorf("LastBounds = %+v, want %+v", stationRepo.LastBounds, want)
	}
	if stationRepo.QueryBoundingBoxCallCount != 1 {
		t.Errorf("QueryBoundingBoxCallCount = %d, want 1", stationRepo.QueryBoundingBoxCallCount)
	}
}

func TestPlanTripRejectsEmptyLocations(t *testing.T) {
	svc, geocoder, _, _ := newTripFixture()

	for _, req := range []service.PlanTripRequest{
		{Start: "", End: "b", Vehicle: domain.VehicleProfile{TankRangeMiles: 500, FuelEconomyMPG: 10}},
		{Start: "a", End: "   ", Vehicle: domain.VehicleProfile{TankRangeMiles: 500, FuelEconomyMPG: 10}},
	} {
		_, err := svc.PlanTrip(context.Background(), req)
		if !errors.Is(err, service.ErrInvalidLocation) {
			t.Errorf("start=%q end=%q: err = %v, want ErrInvalidLocation", req.Start, req.End, err)
		}
	}
	if geocoder.GeocodeCallCount != 0 {
		t.Errorf("GeocodeCallCount = %d, want 0", geocoder.GeocodeCallCount)
	}
}

func TestPlanTripRejectsInvalidVehicle(t *testing.T) {
	svc, geocoder, _, _ := newTripFixture()

	_, err := svc.PlanTrip(context.Background(), service.PlanTripRequest{
		Start:   "a",
		End:     "b",
		Vehicle: domain.VehicleProfile{TankRangeMiles: 0, FuelEconomyMPG: 10},
	})
	if !errors.Is(err, service.ErrInvalidVehicleProfile) {
		t.Errorf("err = %v, want ErrInvalidVehicleProfile", err)
	}
	if geocoder.GeocodeCallCount != 0 {
		t.Errorf("GeocodeCallCount = %d, want 0", geocoder.GeocodeCallCount)
	}
}

func TestPlanTripGeocodeFailureStopsPipeline(t *testing.T) {
	svc, _, routeProvider, stationRepo := newTripFixture()

	// Unknown locations: the mock returns ErrLocationNotFound.
	_, err := svc.PlanTrip(context.Background(), service.PlanTripRequest{
		Start:   "nowhere",
		End:     "elsewhere",
		Vehicle: domain.VehicleProfile{TankRangeMiles: 500, FuelEconomyMPG: 10},
	})
	if !errors.Is(err, provider.ErrLocationNotFound) {
		t.Fatalf("err = %v, want ErrLocationNotFound", err)
	}
	if routeProvider.RouteCallCount != 0 {
		t.Errorf("RouteCallCount = %d, want 0", routeProvider.RouteCallCount)
	}
	if stationRepo.QueryBoundingBoxCallCount != 0 {
		t.Errorf("QueryBoundingBoxCallCount = %d, want 0", stationRepo.QueryBoundingBoxCallCount)
	}
}

func TestPlanTripRouteFailureStopsPipeline(t *testing.T) {
	svc, geocoder, routeProvider, stationRepo := newTripFixture()

	geocoder.AddLocation("a", domain.Coordinate{Lat: 35, Lon: -100})
	geocoder.AddLocation("b", domain.Coordinate{Lat: 40, Lon: -100})
	routeProvider.RouteError = provider.ErrRouteUnavailable

	_, err := svc.PlanTrip(context.Background(), service.PlanTripRequest{
		Start:   "a",
		End:     "b",
		Vehicle: domain.VehicleProfile{TankRangeMiles: 500, FuelEconomyMPG: 10},
	})
	if !errors.Is(err, provider.ErrRouteUnavailable) {
		t.Fatalf("err = %v, want ErrRouteUnavailable", err)
	}
	if stationRepo.QueryBoundingBoxCallCount != 0 {
		t.Errorf("QueryBoundingBoxCallCount = %d, want 0", stationRepo.QueryBoundingBoxCallCount)
	}
}

func TestPlanTripRepositoryFailurePassesThrough(t *testing.T) {
	svc, geocoder, routeProvider, stationRepo := newTripFixture()

	route := meridianRoute(35, -100, 300, 10)
	geocoder.AddLocation("a", route[0])
	geocoder.AddLocation("b", route[len(route)-1])
	routeProvider.SetRoute(&provider.Route{Polyline: route, DistanceMiles: 300})
	wantErr := errors.New("catalog unavailable")
	stationRepo.QueryBoundingBoxError = wantErr

	_, err := svc.PlanTrip(context.Background(), service.PlanTripRequest{
		Start:   "a",
		End:     "b",
		Vehicle: domain.VehicleProfile{TankRangeMiles: 500, FuelEconomyMPG: 10},
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
