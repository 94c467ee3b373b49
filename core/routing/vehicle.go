package routing

import "fmt"

// Vehicle describes the limits of a delivery vehicle.
type Vehicle struct {
	Type           string  `json:"type"`
	CapacityKg     float64 `json:"capacity_kg"`
	MaxStops       int     `json:"max_stops"` // distinct stops including the depot
	SpeedKmh       float64 `json:"speed_kmh"`
	EmissionFactor float64 `json:"emission_factor"` // kg CO2 per km, 0 uses the policy factor
}

// Validate checks the vehicle can be routed.
func (v Vehicle) Validate() error {
	if v.Type == "" {
		return fmt.Errorf("vehicle type is required")
	}
	if v.CapacityKg < 0 {
		return fmt.Errorf("vehicle %s: negative capacity", v.Type)
	}
	if v.MaxStops < 1 {
		return fmt.Errorf("vehicle %s: max stops must be at least 1", v.Type)
	}
	if v.SpeedKmh <= 0 {
		return fmt.Errorf("vehicle %s: speed must be positive", v.Type)
	}
	return nil
}

// DefaultVehicles returns the built-in vehicle profiles.
func DefaultVehicles() []Vehicle {
	return []Vehicle{
		{Type: "cargo_bike", CapacityKg: 50, MaxStops: 5, SpeedKmh: 15},
		{Type: "electric_van", CapacityKg: 500, MaxStops: 8, SpeedKmh: 40, EmissionFactor: 0.05},
		{Type: "van", CapacityKg: 1000, MaxStops: 10, SpeedKmh: 50, EmissionFactor: 0.2},
		{Type: "truck", CapacityKg: 3000, MaxStops: 12, SpeedKmh: 45, EmissionFactor: 0.35},
	}
}

// VehicleByType returns the profile named typ from vehicles.
func VehicleByType(vehicles []Vehicle, typ string) (Vehicle, bool) {
	for _, v := range vehicles {
		if v.Type == typ {
			return v, true
		}
	}
	return Vehicle{}, false
}
