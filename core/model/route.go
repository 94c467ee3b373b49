package model

// StopKind distinguishes depot visits from deliveries.
type StopKind string

const (
	StopDepot    StopKind = "depot"
	StopDelivery StopKind = "delivery"
)

// RouteStop is one visit on a route with cumulative totals up to that point.
type RouteStop struct {
	PointID      string      `json:"point_id"`
	Kind         StopKind    `json:"kind"`
	Coordinates  Coordinates `json:"coordinates"`
	LoadKg       float64     `json:"load_kg"`
	DistanceKm   float64     `json:"distance_km"`
	TimeMin      float64     `json:"time_min"`
	WindowMissed bool        `json:"window_missed,omitempty"`
}

// Route is an ordered tour that starts and ends at the depot.
type Route struct {
	ID                  string      `json:"route_id,omitempty"`
	VehicleType         string      `json:"vehicle_type"`
	Stops               []RouteStop `json:"stops"`
	TotalDistanceKm     float64     `json:"total_distance_km"`
	TotalTimeMin        float64     `json:"total_time_min"`
	TotalLoadKg         float64     `json:"total_load_kg"`
	EmissionsSavedKg    float64     `json:"emissions_saved_kg"`
	CapacityUtilization float64     `json:"capacity_utilization"`
	GreenScore          float64     `json:"green_score"`
}

// StopCount returns the number of distinct stops, counting the depot once.
func (r Route) StopCount() int {
	if len(r.Stops) == 0 {
		return 0
	}
	return len(r.Stops) - 1
}

// Deliveries returns the number of delivery stops.
func (r Route) Deliveries() int {
	n := 0
	for _, s := range r.Stops {
		if s.Kind == StopDelivery {
			n++
		}
	}
	return n
}

// StopIDs returns the ordered point identifiers of the route.
func (r Route) StopIDs() []string {
	ids := make([]string, len(r.Stops))
	for i, s := range r.Stops {
		ids[i] = s.PointID
	}
	return ids
}
