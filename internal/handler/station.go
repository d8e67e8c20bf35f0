package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fuelroute/internal/domain"
	"fuelroute/internal/repository"
)

// StationHandler handles HTTP requests for the fuel station catalog.
type StationHandler struct {
	stationRepo repository.StationRepository
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(stationRepo repository.StationRepository) *StationHandler {
	return &StationHandler{stationRepo: stationRepo}
}

// CreateStationRequest is the HTTP request body for registering a station.
type CreateStationRequest struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	RetailPrice float64 `json:"retail_price"`
}

// StationResponse is the HTTP representation of a station.
type StationResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	RetailPrice float64 `json:"retail_price"`
}

// CreateStation handles POST /v1/stations
func (h *StationHandler) CreateStation(c *gin.Context) {
	var req CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}
	if req.RetailPrice < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "retail_price must not be negative"})
		return
	}

	station := &domain.FuelStation{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Lat:         req.Lat,
		Lon:         req.Lng,
		RetailPrice: req.RetailPrice,
	}

	if err := h.stationRepo.Create(c.Request.Context(), station); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, stationResponse(station))
}

// GetStation handles GET /v1/stations/:id
func (h *StationHandler) GetStation(c *gin.Context) {
	station, err := h.stationRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, stationResponse(station))
}

// GetAll handles GET /v1/stations
func (h *StationHandler) GetAll(c *gin.Context) {
	stations, err := h.stationRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]StationResponse, 0, len(stations))
	for _, s := range stations {
		response = append(response, stationResponse(s))
	}

	c.JSON(http.StatusOK, response)
}

func stationResponse(s *domain.FuelStation) StationResponse {
	return StationResponse{
		ID:          s.ID,
		Name:        s.Name,
		Lat:         s.Lat,
		Lng:         s.Lon,
		RetailPrice: s.RetailPrice,
	}
}
