// Package impact rolls up distance, CO2 and utilisation figures across
// matches and routes.
package impact

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
)

// MatchSummary aggregates a set of matches.
type MatchSummary struct {
	Matches         int     `json:"matches"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalCO2SavedKg float64 `json:"total_co2_saved_kg"`
	TotalCapacityKg float64 `json:"total_capacity_kg"`
	AvgDistanceKm   float64 `json:"avg_distance_km"`
	AvgMatchScore   float64 `json:"avg_match_score"`
}

// VehicleBreakdown aggregates the routes of one vehicle type.
type VehicleBreakdown struct {
	VehicleType            string  `json:"vehicle_type"`
	Routes                 int     `json:"routes"`
	DistanceKm             float64 `json:"distance_km"`
	EmissionsSavedKg       float64 `json:"emissions_saved_kg"`
	AvgCapacityUtilization float64 `json:"avg_capacity_utilization"`
	AvgGreenScore          float64 `json:"avg_green_score"`
}

// Projection extrapolates daily totals over a month.
type Projection struct {
	Days             float64 `json:"days"`
	DistanceKm       float64 `json:"distance_km"`
	EmissionsSavedKg float64 `json:"emissions_saved_kg"`
	Deliveries       int     `json:"deliveries"`
}

// RouteReport aggregates a set of routes.
type RouteReport struct {
	Routes                 int                `json:"routes"`
	Deliveries             int                `json:"deliveries"`
	TotalDistanceKm        float64            `json:"total_distance_km"`
	TotalEmissionsSavedKg  float64            `json:"total_emissions_saved_kg"`
	TotalLoadKg            float64            `json:"total_load_kg"`
	AvgCapacityUtilization float64            `json:"avg_capacity_utilization"`
	AvgGreenScore          float64            `json:"avg_green_score"`
	ByVehicle              []VehicleBreakdown `json:"by_vehicle"`
	Monthly                Projection         `json:"monthly_projection"`
}

// Aggregator builds impact reports.
type Aggregator struct {
	days float64
}

// NewAggregator returns an Aggregator projecting over the policy horizon.
func NewAggregator(p policy.Policy) Aggregator {
	return Aggregator{days: p.MonthlyProjectionDays}
}

// FromMatches summarises matches. Averages are 0 for an empty input.
func (a Aggregator) FromMatches(matches []model.Match) MatchSummary {
	s := MatchSummary{Matches: len(matches)}
	dists := make([]float64, len(matches))
	scores := make([]float64, len(matches))
	for i, m := range matches {
		s.TotalDistanceKm += m.DistanceKm
		s.TotalCO2SavedKg += m.CO2SavingsKg
		s.TotalCapacityKg += m.CapacityKg
		dists[i] = m.DistanceKm
		scores[i] = m.MatchScore
	}
	s.TotalDistanceKm = geo.Round(s.TotalDistanceKm, 2)
	s.TotalCO2SavedKg = geo.Round(s.TotalCO2SavedKg, 2)
	s.AvgDistanceKm = geo.Round(mean(dists), 2)
	s.AvgMatchScore = geo.Round(mean(scores), 4)
	return s
}

// FromRoutes summarises routes with a per-vehicle breakdown sorted by type.
func (a Aggregator) FromRoutes(routes []model.Route) RouteReport {
	r := RouteReport{Routes: len(routes), ByVehicle: []VehicleBreakdown{}}
	utils := make([]float64, len(routes))
	greens := make([]float64, len(routes))
	type acc struct {
		b      VehicleBreakdown
		utils  []float64
		greens []float64
	}
	byType := map[string]*acc{}
	for i, rt := range routes {
		r.Deliveries += rt.Deliveries()
		r.TotalDistanceKm += rt.TotalDistanceKm
		r.TotalEmissionsSavedKg += rt.EmissionsSavedKg
		r.TotalLoadKg += rt.TotalLoadKg
		utils[i] = rt.CapacityUtilization
		greens[i] = rt.GreenScore

		v := byType[rt.VehicleType]
		if v == nil {
			v = &acc{b: VehicleBreakdown{VehicleType: rt.VehicleType}}
			byType[rt.VehicleType] = v
		}
		v.b.Routes++
		v.b.DistanceKm += rt.TotalDistanceKm
		v.b.EmissionsSavedKg += rt.EmissionsSavedKg
		v.utils = append(v.utils, rt.CapacityUtilization)
		v.greens = append(v.greens, rt.GreenScore)
	}
	for _, v := range byType {
		v.b.DistanceKm = geo.Round(v.b.DistanceKm, 2)
		v.b.EmissionsSavedKg = geo.Round(v.b.EmissionsSavedKg, 2)
		v.b.AvgCapacityUtilization = geo.Round(mean(v.utils), 1)
		v.b.AvgGreenScore = geo.Round(mean(v.greens), 1)
		r.ByVehicle = append(r.ByVehicle, v.b)
	}
	sort.Slice(r.ByVehicle, func(i, j int) bool { return r.ByVehicle[i].VehicleType < r.ByVehicle[j].VehicleType })

	r.TotalDistanceKm = geo.Round(r.TotalDistanceKm, 2)
	r.TotalEmissionsSavedKg = geo.Round(r.TotalEmissionsSavedKg, 2)
	r.AvgCapacityUtilization = geo.Round(mean(utils), 1)
	r.AvgGreenScore = geo.Round(mean(greens), 1)
	r.Monthly = Projection{
		Days:             a.days,
		DistanceKm:       geo.Round(r.TotalDistanceKm*a.days, 2),
		EmissionsSavedKg: geo.Round(r.TotalEmissionsSavedKg*a.days, 2),
		Deliveries:       int(float64(r.Deliveries) * a.days),
	}
	return r
}

// mean is stat.Mean with a 0 result for empty input.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
