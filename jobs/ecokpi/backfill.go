// Package ecokpi derives per-recipient delivery KPIs from planned routes.
package ecokpi

import (
	"time"

	coremetrics "github.com/ishantk2507/ZeroWasteAI/core/metrics"
	"github.com/ishantk2507/ZeroWasteAI/core/metrics/eco"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

// Deliveries splits a route into per-stop deliveries. Each stop gets the leg
// leading to it and the matching share of the route's CO2 savings.
func Deliveries(r model.Route) []coremetrics.DeliveryEvent {
	var out []coremetrics.DeliveryEvent
	prev := 0.0
	for _, s := range r.Stops {
		leg := s.DistanceKm - prev
		prev = s.DistanceKm
		if s.Kind != model.StopDelivery {
			continue
		}
		co2 := 0.0
		if r.TotalDistanceKm > 0 {
			co2 = r.EmissionsSavedKg * leg / r.TotalDistanceKm
		}
		out = append(out, coremetrics.DeliveryEvent{RecipientID: s.PointID, DistanceKm: leg, CO2SavedKg: co2})
	}
	return out
}

// Backfill replays routes delivered on day at into the store.
func Backfill(store eco.Store, routes []model.Route, at time.Time) (int, error) {
	n := 0
	for _, r := range routes {
		for _, d := range Deliveries(r) {
			rec := eco.Record{
				RecipientID: d.RecipientID,
				Date:        eco.Day(at),
				Deliveries:  1,
				DistanceKm:  d.DistanceKm,
				CO2SavedKg:  d.CO2SavedKg,
			}
			if err := store.Add(rec); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
