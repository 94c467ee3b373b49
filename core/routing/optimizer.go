package routing

import (
	"math"

	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
)

// TimeWindow bounds the arrival time at a point, in minutes after departure.
type TimeWindow struct {
	EarliestMin float64 `json:"earliest_min"`
	LatestMin   float64 `json:"latest_min"`
}

// Contains reports whether an arrival at minute t falls inside the window.
func (w TimeWindow) Contains(t float64) bool {
	return t >= w.EarliestMin && t <= w.LatestMin
}

// Point is a location the optimizer may visit.
type Point struct {
	ID          string            `json:"id"`
	Coordinates model.Coordinates `json:"coordinates"`
	DemandKg    float64           `json:"demand_kg"`
	Priority    int               `json:"priority"` // 1 (highest) to 5
	Window      *TimeWindow       `json:"window,omitempty"`
}

const (
	minPriority     = 1
	maxPriority     = 5
	neutralPriority = 3
)

func (p Point) priority() int {
	if p.Priority < minPriority || p.Priority > maxPriority {
		return neutralPriority
	}
	return p.Priority
}

// Optimizer builds greedy single-vehicle routes.
type Optimizer struct {
	policy policy.Policy
	geo    geo.Model
}

// NewOptimizer returns an Optimizer using the given distance model.
func NewOptimizer(p policy.Policy, g geo.Model) *Optimizer {
	return &Optimizer{policy: p, geo: g}
}

// Build constructs a route for vehicle starting and ending at depot.
// Points are considered in input order; on equal adjusted distance the first
// one wins.
func (o *Optimizer) Build(depot Point, points []Point, vehicle Vehicle) model.Route {
	route, _ := o.build(depot, points, nil, vehicle)
	return route
}

func (o *Optimizer) build(depot Point, points []Point, served []bool, vehicle Vehicle) (model.Route, []bool) {
	if served == nil {
		served = make([]bool, len(points))
	}
	route := model.Route{VehicleType: vehicle.Type}
	route.Stops = append(route.Stops, model.RouteStop{
		PointID:     depot.ID,
		Kind:        model.StopDepot,
		Coordinates: depot.Coordinates,
	})

	current := depot.Coordinates
	var load, dist, minutes float64
	for len(route.Stops) < vehicle.MaxStops {
		best := -1
		bestAdj := math.Inf(1)
		bestRaw := 0.0
		for i, p := range points {
			if served[i] || load+p.DemandKg > vehicle.CapacityKg {
				continue
			}
			raw := o.geo.Distance(current, p.Coordinates)
			adj := raw * (float64(p.priority()) / o.policy.PriorityDivisor)
			if adj < bestAdj {
				best, bestAdj, bestRaw = i, adj, raw
			}
		}
		if best < 0 {
			break
		}
		p := points[best]
		served[best] = true
		load += p.DemandKg
		dist += bestRaw
		minutes += travelMinutes(bestRaw, vehicle.SpeedKmh)
		stop := model.RouteStop{
			PointID:     p.ID,
			Kind:        model.StopDelivery,
			Coordinates: p.Coordinates,
			LoadKg:      load,
			DistanceKm:  dist,
			TimeMin:     minutes,
		}
		if p.Window != nil && !p.Window.Contains(minutes) {
			stop.WindowMissed = true
		}
		route.Stops = append(route.Stops, stop)
		current = p.Coordinates
	}

	back := o.geo.Distance(current, depot.Coordinates)
	dist += back
	minutes += travelMinutes(back, vehicle.SpeedKmh)
	route.Stops = append(route.Stops, model.RouteStop{
		PointID:     depot.ID,
		Kind:        model.StopDepot,
		Coordinates: depot.Coordinates,
		LoadKg:      load,
		DistanceKm:  dist,
		TimeMin:     minutes,
	})

	route.TotalDistanceKm = geo.Round(dist, 2)
	route.TotalTimeMin = geo.Round(minutes, 1)
	route.TotalLoadKg = load
	if vehicle.CapacityKg > 0 {
		route.CapacityUtilization = geo.Round(load/vehicle.CapacityKg*100, 1)
	}
	route.EmissionsSavedKg = o.geo.WithEmissionFactor(vehicle.EmissionFactor).CO2Savings(dist)
	// A route that delivers nothing scores zero.
	if route.Deliveries() > 0 {
		route.GreenScore = GreenScore(o.policy, route)
	}
	return route, served
}

func travelMinutes(km, speedKmh float64) float64 {
	if speedKmh <= 0 {
		return 0
	}
	return km / speedKmh * 60
}

// FleetPlan is the result of routing several vehicles over one point set.
type FleetPlan struct {
	Routes   []model.Route `json:"routes"`
	Unserved []string      `json:"unserved"`
}

// BuildFleet routes vehicles one after another, each over the points the
// previous vehicles left unserved. Vehicles that would serve nothing are
// omitted.
func (o *Optimizer) BuildFleet(depot Point, points []Point, vehicles []Vehicle) FleetPlan {
	plan := FleetPlan{Routes: []model.Route{}, Unserved: []string{}}
	served := make([]bool, len(points))
	for _, v := range vehicles {
		if allServed(served) {
			break
		}
		route, next := o.build(depot, points, append([]bool(nil), served...), v)
		if route.Deliveries() == 0 {
			continue
		}
		served = next
		plan.Routes = append(plan.Routes, route)
	}
	for i, p := range points {
		if !served[i] {
			plan.Unserved = append(plan.Unserved, p.ID)
		}
	}
	return plan
}

func allServed(served []bool) bool {
	for _, s := range served {
		if !s {
			return false
		}
	}
	return true
}
