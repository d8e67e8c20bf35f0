package handler

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelroute/internal/domain"
	"fuelroute/internal/service"
)

// Defaults applied when the request omits the vehicle profile.
const (
	defaultTankRangeMiles = 500.0
	defaultFuelEconomyMPG = 10.0
)

// PlanHandler handles HTTP requests for trip planning.
type PlanHandler struct {
	tripService *service.TripService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(tripService *service.TripService) *PlanHandler {
	return &PlanHandler{tripService: tripService}
}

// PlanTripRequest is the HTTP request body for planning a trip.
type PlanTripRequest struct {
	Start       string  `json:"start"`
	End         string  `json:"end"`
	TankRange   float64 `json:"tank_range,omitempty"`   // miles, defaults to 500
	FuelEconomy float64 `json:"fuel_economy,omitempty"` // mpg, defaults to 10
}

// LocationResponse is a lat/lng pair in responses.
type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FuelStopResponse is one fuel stop in the plan response.
type FuelStopResponse struct {
	StationID         string           `json:"station_id"`
	Name              string           `json:"name"`
	Location          LocationResponse `json:"location"`
	Price             float64          `json:"price"`
	DistanceFromStart float64          `json:"distance_from_start"`
	Gallons           float64          `json:"gallons"`
	Cost              float64          `json:"cost"`
}

// StopSummaryResponse aggregates the stops of a plan.
type StopSummaryResponse struct {
	NumberOfStops int     `json:"number_of_stops"`
	TotalGallons  float64 `json:"total_gallons"`
	AveragePrice  float64 `json:"average_price"`
}

// RouteStepResponse is one turn-by-turn instruction.
type RouteStepResponse struct {
	Name          string  `json:"name,omitempty"`
	Maneuver      string  `json:"maneuver"`
	DistanceMiles float64 `json:"distance_miles"`
}

// PlanTripResponse is the HTTP response for planning a trip.
type PlanTripResponse struct {
	RouteCoordinates [][]float64         `json:"route_coordinates"` // [lon, lat] pairs
	FuelStops        []FuelStopResponse  `json:"fuel_stops"`
	TotalCost        float64             `json:"total_cost"`
	TotalDistance    float64             `json:"total_distance"`
	Summary          StopSummaryResponse `json:"summary"`
	Steps            []RouteStepResponse `json:"steps,omitempty"`
}

// PlanTrip handles POST /v1/plans
func (h *PlanHandler) PlanTrip(c *gin.Context) {
	var req PlanTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle := domain.VehicleProfile{
		TankRangeMiles: req.TankRange,
		FuelEconomyMPG: req.FuelEconomy,
	}
	if vehicle.TankRangeMiles == 0 {
		vehicle.TankRangeMiles = defaultTankRangeMiles
	}
	if vehicle.FuelEconomyMPG == 0 {
		vehicle.FuelEconomyMPG = defaultFuelEconomyMPG
	}

	result, err := h.tripService.PlanTrip(c.Request.Context(), service.PlanTripRequest{
		Start:   req.Start,
		End:     req.End,
		Vehicle: vehicle,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	coords := make([][]float64, 0, len(result.Route.Polyline))
	for _, p := range result.Route.Polyline {
		coords = append(coords, p.LonLat())
	}

	stops := make([]FuelStopResponse, 0, len(result.Plan.FuelStops))
	for _, stop := range result.Plan.FuelStops {
		stops = append(stops, FuelStopResponse{
			StationID: stop.StationID,
			Name:      stop.Name,
			Location: LocationResponse{
				Lat: stop.Location.Lat,
				Lng: stop.Location.Lon,
			},
			Price:             stop.Price,
			DistanceFromStart: stop.DistanceFromStart,
			Gallons:           stop.Gallons,
			Cost:              stop.Cost,
		})
	}

	steps := make([]RouteStepResponse, 0, len(result.Route.Steps))
	for _, s := range result.Route.Steps {
		steps = append(steps, RouteStepResponse{
			Name:          s.Name,
			Maneuver:      s.Maneuver,
			DistanceMiles: s.DistanceMiles,
		})
	}

	respondJSON(c, http.StatusOK, PlanTripResponse{
		RouteCoordinates: coords,
		FuelStops:        stops,
		TotalCost:        round4(result.Plan.TotalCost),
		TotalDistance:    result.Plan.TotalDistance,
		Summary: StopSummaryResponse{
			NumberOfStops: result.Summary.StopCount,
			TotalGallons:  result.Summary.TotalGallons,
			AveragePrice:  result.Summary.AveragePrice,
		},
		Steps: steps,
	})
}

// round4 rounds a currency amount to 4 decimal places.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
