package domain

// VehicleProfile describes the fuel characteristics of the vehicle a
// trip is planned for. Both fields must be positive; the planner
// rejects profiles that are not.
type VehicleProfile struct {
	TankRangeMiles float64 // miles drivable on a full tank
	FuelEconomyMPG float64 // miles per gallon
}
