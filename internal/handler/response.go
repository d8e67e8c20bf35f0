package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelroute/internal/provider"
	"fuelroute/internal/repository"
	"fuelroute/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository/provider errors to HTTP
// status codes.
func mapErrorToHTTPStatus(err error) int {
	var stranded *service.StrandedError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidVehicleProfile),
		errors.Is(err, service.ErrEmptyRoute),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, provider.ErrLocationNotFound):
		return http.StatusBadRequest

	// The trip is infeasible with the given vehicle and station data.
	case errors.As(err, &stranded):
		return http.StatusUnprocessableEntity

	// Upstream routing failure
	case errors.Is(err, provider.ErrRouteUnavailable):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
