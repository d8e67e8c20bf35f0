package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"fuelroute/internal/domain"
	"fuelroute/internal/provider"
	"fuelroute/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK GEOCODER
// ──────────────────────────────────────────────

// MockGeocoder is a mock implementation of provider.Geocoder backed by
// a fixed query table.
type MockGeocoder struct {
	mu        sync.RWMutex
	locations map[string]domain.Coordinate

	// Counters for verification
	GeocodeCallCount int32

	// Error injection
	GeocodeError error
}

// NewMockGeocoder creates a new mock geocoder.
func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{
		locations: make(map[string]domain.Coordinate),
	}
}

// AddLocation registers a query result.
func (m *MockGeocoder) AddLocation(query string, coord domain.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[query] = coord
}

func (m *MockGeocoder) Geocode(ctx context.Context, query string) (domain.Coordinate, error) {
	atomic.AddInt32(&m.GeocodeCallCount, 1)
	if m.GeocodeError != nil {
		return domain.Coordinate{}, m.GeocodeError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	coord, ok := m.locations[query]
	if !ok {
		return domain.Coordinate{}, provider.ErrLocationNotFound
	}
	return coord, nil
}

// ──────────────────────────────────────────────
// MOCK ROUTE PROVIDER
// ──────────────────────────────────────────────

// MockRouteProvider is a mock implementation of provider.RouteProvider
// returning a single preset route.
type MockRouteProvider struct {
	mu    sync.RWMutex
	route *provider.Route

	// Counters for verification
	RouteCallCount int32

	// Error injection
	RouteError error
}

// NewMockRouteProvider creates a new mock route provider.
func NewMockRouteProvider() *MockRouteProvider {
	return &MockRouteProvider{}
}

// SetRoute sets the route returned by every Route call.
func (m *MockRouteProvider) SetRoute(route *provider.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = route
}

func (m *MockRouteProvider) Route(ctx context.Context, origin, destination domain.Coordinate) (*provider.Route, error) {
	atomic.AddInt32(&m.RouteCallCount, 1)
	if m.RouteError != nil {
		return nil, m.RouteError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.route == nil {
		return nil, provider.ErrRouteUnavailable
	}
	return m.route, nil
}

// ──────────────────────────────────────────────
// MOCK STATION REPOSITORY
// ──────────────────────────────────────────────

// MockStationRepository is a mock implementation of StationRepository.
type MockStationRepository struct {
	mu       sync.RWMutex
	stations map[string]*domain.FuelStation

	// LastBounds records the bounds of the most recent bounding-box
	// query for verification.
	LastBounds domain.Bounds

	// Counters for verification
	CreateCallCount           int32
	QueryBoundingBoxCallCount int32

	// Error injection
	CreateError           error
	QueryBoundingBoxError error
}

// NewMockStationRepository creates a new mock station repository.
func NewMockStationRepository() *MockStationRepository {
	return &MockStationRepository{
		stations: make(map[string]*domain.FuelStation),
	}
}

// AddStation adds a station to the mock repository.
func (m *MockStationRepository) AddStation(station *domain.FuelStation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stations[station.ID] = station
}

func (m *MockStationRepository) Create(ctx context.Context, station *domain.FuelStation) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stations[station.ID] = station
	return nil
}

func (m *MockStationRepository) GetByID(ctx context.Context, id string) (*domain.FuelStation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	station, ok := m.stations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *station
	return &copy, nil
}

func (m *MockStationRepository) GetAll(ctx context.Context) ([]*domain.FuelStation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.FuelStation, 0, len(m.stations))
	for _, s := range m.stations {
		copy := *s
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockStationRepository) QueryBoundingBox(ctx context.Context, bounds domain.Bounds) ([]*domain.FuelStation, error) {
	atomic.AddInt32(&m.QueryBoundingBoxCallCount, 1)
	m.mu.Lock()
	m.LastBounds = bounds
	m.mu.Unlock()
	if m.QueryBoundingBoxError != nil {
		return nil, m.QueryBoundingBoxError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.FuelStation, 0)
	for _, s := range m.stations {
		if bounds.Contains(s.Coordinate()) {
			copy := *s
			result = append(result, &copy)
		}
	}
	return result, nil
}
