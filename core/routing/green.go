package routing

import (
	"math"

	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
)

// GreenBreakdown exposes the normalised components of a green score.
type GreenBreakdown struct {
	DistanceEfficiency float64 `json:"distance_efficiency"`
	CapacityScore      float64 `json:"capacity_score"`
	EmissionsScore     float64 `json:"emissions_score"`
	TimeEfficiency     float64 `json:"time_efficiency"`
	Total              float64 `json:"total"`
}

// Green computes the green score components of a route against the fixed
// reference distance and time of the policy.
func Green(p policy.Policy, r model.Route) GreenBreakdown {
	b := GreenBreakdown{
		DistanceEfficiency: math.Max(0, 100-r.TotalDistanceKm/p.MaxReasonableDistanceKm*100),
		CapacityScore:      r.CapacityUtilization,
		EmissionsScore:     math.Min(100, r.EmissionsSavedKg*10),
		TimeEfficiency:     math.Max(0, 100-r.TotalTimeMin/p.MaxReasonableTimeMin*100),
	}
	w := p.GreenWeights
	b.Total = geo.Round(w.Distance*b.DistanceEfficiency+
		w.Capacity*b.CapacityScore+
		w.Emissions*b.EmissionsScore+
		w.Time*b.TimeEfficiency, 1)
	return b
}

// GreenScore returns the weighted 0-100 green score of a route.
func GreenScore(p policy.Policy, r model.Route) float64 {
	return Green(p, r).Total
}
