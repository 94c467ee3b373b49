package metrics

import (
	"context"

	"github.com/ishantk2507/ZeroWasteAI/core/events"
	coremetrics "github.com/ishantk2507/ZeroWasteAI/core/metrics"
	"github.com/ishantk2507/ZeroWasteAI/infra/logger"
	"github.com/ishantk2507/ZeroWasteAI/jobs/ecokpi"
	"github.com/ishantk2507/ZeroWasteAI/internal/eventbus"
)

// StartEventCollector subscribes to the bus and records metrics for events.
// It stops when the context is canceled or the bus is closed, after which the
// returned channel is closed. Events already buffered when the bus closes are
// still recorded.
func StartEventCollector(ctx context.Context, bus *eventbus.Bus[events.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("event-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := record(sink, ev); err != nil {
					log.Warnf("record %s: %v", ev.Kind(), err)
				}
			}
		}
	}()
	return done
}

func record(sink coremetrics.MetricsSink, ev events.Event) error {
	switch e := ev.(type) {
	case events.ItemEvaluatedEvent:
		m := coremetrics.MatchEvent{
			ItemID:   e.ItemID,
			Category: e.Category,
			Level:    e.Level,
			Status:   e.Status,
			Matches:  e.Matches,
			Time:     e.Time,
		}
		if e.Best != nil {
			m.BestRecipientID = e.Best.RecipientID
			m.BestDistanceKm = e.Best.DistanceKm
			m.BestCO2Kg = e.Best.CO2SavingsKg
			m.BestScore = e.Best.MatchScore
		}
		return sink.RecordMatch(m)
	case events.RoutePlannedEvent:
		r := e.Route
		if rec, ok := sink.(coremetrics.RouteRecorder); ok {
			if err := rec.RecordRoute(coremetrics.RouteEvent{
				PlanID:           e.PlanID,
				RouteID:          r.ID,
				VehicleType:      r.VehicleType,
				Stops:            r.StopCount(),
				Deliveries:       r.Deliveries(),
				DistanceKm:       r.TotalDistanceKm,
				LoadKg:           r.TotalLoadKg,
				EmissionsSavedKg: r.EmissionsSavedKg,
				Utilization:      r.CapacityUtilization,
				GreenScore:       r.GreenScore,
				Time:             e.Time,
			}); err != nil {
				return err
			}
		}
		if rec, ok := sink.(coremetrics.DeliveryRecorder); ok {
			for _, d := range ecokpi.Deliveries(r) {
				d.Time = e.Time
				if err := rec.RecordDelivery(d); err != nil {
					return err
				}
			}
		}
	case events.ImpactEvent:
		if rec, ok := sink.(coremetrics.ImpactRecorder); ok {
			return rec.RecordImpact(coremetrics.ImpactEvent{
				PlanID:           e.PlanID,
				Routes:           e.Report.Routes,
				Deliveries:       e.Report.Deliveries,
				DistanceKm:       e.Report.TotalDistanceKm,
				EmissionsSavedKg: e.Report.TotalEmissionsSavedKg,
				AvgGreenScore:    e.Report.AvgGreenScore,
				Time:             e.Time,
			})
		}
	}
	return nil
}
