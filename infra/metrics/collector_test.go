package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ishantk2507/ZeroWasteAI/core/events"
	"github.com/ishantk2507/ZeroWasteAI/core/impact"
	coremetrics "github.com/ishantk2507/ZeroWasteAI/core/metrics"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/internal/eventbus"
)

type captureSink struct {
	mu         sync.Mutex
	matches    []coremetrics.MatchEvent
	routes     []coremetrics.RouteEvent
	impacts    []coremetrics.ImpactEvent
	deliveries []coremetrics.DeliveryEvent
}

func (c *captureSink) RecordMatch(ev coremetrics.MatchEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matches = append(c.matches, ev)
	return nil
}

func (c *captureSink) RecordRoute(ev coremetrics.RouteEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes = append(c.routes, ev)
	return nil
}

func (c *captureSink) RecordImpact(ev coremetrics.ImpactEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.impacts = append(c.impacts, ev)
	return nil
}

func (c *captureSink) RecordDelivery(ev coremetrics.DeliveryEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deliveries = append(c.deliveries, ev)
	return nil
}

func (c *captureSink) counts() (int, int, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.matches), len(c.routes), len(c.impacts), len(c.deliveries)
}

func testRoute() model.Route {
	return model.Route{
		ID:          "R1",
		VehicleType: "van",
		Stops: []model.RouteStop{
			{PointID: "depot", Kind: model.StopDepot},
			{PointID: "n1", Kind: model.StopDelivery, DistanceKm: 10},
			{PointID: "n2", Kind: model.StopDelivery, DistanceKm: 25},
			{PointID: "depot", Kind: model.StopDepot, DistanceKm: 40},
		},
		TotalDistanceKm:  40,
		EmissionsSavedKg: 4,
	}
}

func TestStartEventCollector(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := eventbus.New[events.Event]()
	defer bus.Close()
	sink := &captureSink{}
	StartEventCollector(ctx, bus, sink)

	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	bus.Publish(events.ItemEvaluatedEvent{
		ItemID: "p1", Category: "Dairy", Status: "matches_found", Matches: 1, Time: now,
		Best: &model.Match{RecipientID: "n1", DistanceKm: 11, CO2SavingsKg: 3.08, MatchScore: 0.8},
	})
	bus.Publish(events.RoutePlannedEvent{PlanID: "plan", Route: testRoute(), Time: now})
	bus.Publish(events.ImpactEvent{PlanID: "plan", Report: impact.RouteReport{Routes: 1, TotalEmissionsSavedKg: 4}, Time: now})

	assert.Eventually(t, func() bool {
		m, r, i, d := sink.counts()
		return m == 1 && r == 1 && i == 1 && d == 2
	}, time.Second, 10*time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, "n1", sink.matches[0].BestRecipientID)
	assert.Equal(t, 3, sink.routes[0].Stops)
	assert.Equal(t, 2, sink.routes[0].Deliveries)
	assert.Equal(t, 4.0, sink.impacts[0].EmissionsSavedKg)
	assert.Equal(t, now, sink.deliveries[1].Time)
}

func TestStartEventCollectorStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	bus := eventbus.New[events.Event]()
	defer bus.Close()
	done := StartEventCollector(ctx, bus, coremetrics.NopSink{})
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}

	_, ok := <-StartEventCollector(context.Background(), nil, coremetrics.NopSink{})
	assert.False(t, ok)
}

func TestStartEventCollectorDrainsOnClose(t *testing.T) {
	bus := eventbus.New[events.Event]()
	sink := &captureSink{}
	done := StartEventCollector(context.Background(), bus, sink)
	for i := 0; i < 5; i++ {
		bus.Publish(events.ItemEvaluatedEvent{ItemID: "p", Status: "no_matches"})
	}
	bus.Close()
	<-done
	m, _, _, _ := sink.counts()
	assert.Equal(t, 5, m)
}
