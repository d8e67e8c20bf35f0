package domain

// FuelStation is a fuel station in the catalog. The planner only reads
// snapshots of these; ownership stays with the catalog repository.
type FuelStation struct {
	ID          string
	Name        string
	Lat         float64
	Lon         float64
	RetailPrice float64 // currency per gallon
}

// Coordinate returns the station's position.
func (s *FuelStation) Coordinate() Coordinate {
	return Coordinate{Lat: s.Lat, Lon: s.Lon}
}
