package routing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
)

// AssignedStop is one item delivered to one recipient.
type AssignedStop struct {
	ItemID        string  `json:"item_id"`
	ItemName      string  `json:"item_name"`
	Category      string  `json:"category"`
	RecipientID   string  `json:"ngo_id"`
	RecipientName string  `json:"ngo_name"`
	WeightKg      float64 `json:"weight_kg"`
	DistanceKm    float64 `json:"distance_km"`
	CO2SavingsKg  float64 `json:"co2_savings_kg"`
}

// AssignedRoute groups the stops committed to one vehicle.
type AssignedRoute struct {
	RouteID           string         `json:"route_id"`
	VehicleType       string         `json:"vehicle_type"`
	Stops             []AssignedStop `json:"stops"`
	LoadKg            float64        `json:"load_kg"`
	TotalDistanceKm   float64        `json:"total_distance_km"`
	TotalCO2SavingsKg float64        `json:"total_co2_savings_kg"`
}

// AssignmentStats summarises an assignment.
type AssignmentStats struct {
	TotalDistanceKm       float64 `json:"total_distance_km"`
	TotalCO2SavingsKg     float64 `json:"total_co2_savings_kg"`
	AvgDistancePerRouteKm float64 `json:"avg_distance_per_route_km"`
	AvgStopsPerRoute      float64 `json:"avg_stops_per_route"`
}

// Assignment is the output of the global greedy assignment.
type Assignment struct {
	Routes     []AssignedRoute `json:"routes"`
	Unassigned []string        `json:"unassigned"`
	Stats      AssignmentStats `json:"stats"`
}

// Assigner commits (item, recipient, vehicle) triples greedily.
type Assigner struct {
	policy        policy.Policy
	geo           geo.Model
	defaultWeight float64
}

// NewAssigner returns an Assigner. Items without a weight count as
// defaultWeightKg.
func NewAssigner(p policy.Policy, g geo.Model, defaultWeightKg float64) *Assigner {
	return &Assigner{policy: p, geo: g, defaultWeight: defaultWeightKg}
}

// Assign scans every unused item, unused recipient and vehicle on each
// iteration and commits the single triple with the lowest
// distance - w*co2 score, where w is the policy's assignment CO2 weight.
// A triple is feasible when the recipient accepts the item's category and
// the vehicle still has room for the item. Each iteration costs
// O(items*recipients*vehicles) and there are at most len(items) iterations.
// At most min(len(vehicles), len(items)) vehicles are used.
func (a *Assigner) Assign(items []model.InventoryItem, recipients []model.Recipient, vehicles []Vehicle) Assignment {
	out := Assignment{Routes: []AssignedRoute{}, Unassigned: []string{}}
	n := len(vehicles)
	if len(items) < n {
		n = len(items)
	}
	if n == 0 || len(recipients) == 0 {
		for _, it := range items {
			out.Unassigned = append(out.Unassigned, it.ID)
		}
		return out
	}

	dist := a.distanceMatrix(items, recipients)
	routes := make([]AssignedRoute, n)
	for v := range routes {
		routes[v] = AssignedRoute{RouteID: fmt.Sprintf("R%d", v+1), VehicleType: vehicles[v].Type}
	}
	usedItems := make([]bool, len(items))
	usedRecipients := make([]bool, len(recipients))

	for assigned := 0; assigned < len(items); assigned++ {
		bestItem, bestRec, bestRoute := -1, -1, -1
		bestScore := math.Inf(1)
		for i, it := range items {
			if usedItems[i] {
				continue
			}
			w := it.Weight(a.defaultWeight)
			for j, r := range recipients {
				if usedRecipients[j] || !r.Accepts(it.Category) {
					continue
				}
				d := dist.At(i, j)
				score := d - a.policy.AssignmentCO2Weight*a.geo.CO2Savings(d)
				for v := range routes {
					if routes[v].LoadKg+w > vehicles[v].CapacityKg {
						continue
					}
					if score < bestScore {
						bestScore = score
						bestItem, bestRec, bestRoute = i, j, v
					}
				}
			}
		}
		if bestItem < 0 {
			break
		}
		it, r := items[bestItem], recipients[bestRec]
		d := dist.At(bestItem, bestRec)
		stop := AssignedStop{
			ItemID:        it.ID,
			ItemName:      it.Name,
			Category:      it.Category,
			RecipientID:   r.ID,
			RecipientName: r.Name,
			WeightKg:      it.Weight(a.defaultWeight),
			DistanceKm:    geo.Round(d, 2),
			CO2SavingsKg:  a.geo.CO2Savings(d),
		}
		rt := &routes[bestRoute]
		rt.Stops = append(rt.Stops, stop)
		rt.LoadKg += stop.WeightKg
		rt.TotalDistanceKm += d
		rt.TotalCO2SavingsKg += stop.CO2SavingsKg
		usedItems[bestItem] = true
		usedRecipients[bestRec] = true
	}

	for _, rt := range routes {
		if len(rt.Stops) == 0 {
			continue
		}
		rt.TotalDistanceKm = geo.Round(rt.TotalDistanceKm, 2)
		rt.TotalCO2SavingsKg = geo.Round(rt.TotalCO2SavingsKg, 2)
		out.Routes = append(out.Routes, rt)
	}
	for i, it := range items {
		if !usedItems[i] {
			out.Unassigned = append(out.Unassigned, it.ID)
		}
	}
	out.Stats = Statistics(out.Routes)
	return out
}

func (a *Assigner) distanceMatrix(items []model.InventoryItem, recipients []model.Recipient) *mat.Dense {
	m := mat.NewDense(len(items), len(recipients), nil)
	for i, it := range items {
		for j, r := range recipients {
			m.Set(i, j, a.geo.Distance(it.Coordinates, r.Coordinates))
		}
	}
	return m
}

// Statistics aggregates assigned routes. All values are 0 for no routes.
func Statistics(routes []AssignedRoute) AssignmentStats {
	if len(routes) == 0 {
		return AssignmentStats{}
	}
	var dist, co2 float64
	stops := 0
	for _, r := range routes {
		dist += r.TotalDistanceKm
		co2 += r.TotalCO2SavingsKg
		stops += len(r.Stops)
	}
	n := float64(len(routes))
	return AssignmentStats{
		TotalDistanceKm:       geo.Round(dist, 2),
		TotalCO2SavingsKg:     geo.Round(co2, 2),
		AvgDistancePerRouteKm: geo.Round(dist/n, 2),
		AvgStopsPerRoute:      geo.Round(float64(stops)/n, 2),
	}
}
