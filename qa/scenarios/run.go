package scenarios

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ishantk2507/ZeroWasteAI/app"
	"github.com/ishantk2507/ZeroWasteAI/config"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	coremqtt "github.com/ishantk2507/ZeroWasteAI/core/mqtt"
	"github.com/ishantk2507/ZeroWasteAI/core/prediction"
	"github.com/ishantk2507/ZeroWasteAI/infra/logger"
	"github.com/ishantk2507/ZeroWasteAI/infra/metrics"
	"github.com/ishantk2507/ZeroWasteAI/infra/mqtt"
)

func RunScenario(t *testing.T, sc *Scenario) {
	now, err := sc.Clock()
	if err != nil {
		t.Fatal(err)
	}
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	pub := mqtt.NewMockPublisher()

	cfg := config.Default()
	cfg.Routing.Depot = model.Coordinates{Lat: sc.Depot[0], Lon: sc.Depot[1]}
	svc, err := app.New(cfg,
		app.WithClock(func() time.Time { return now }),
		app.WithRiskEstimator(prediction.MockRiskEstimator{Default: 0.5}),
		app.WithSink(sink),
		app.WithPublisher(pub),
		app.WithLogger(logger.NopLogger{}),
	)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	ctx := context.Background()
	svc.Start(ctx)

	snap := sc.Snapshot(now)
	for _, it := range snap.Items {
		res := svc.EvaluateItem(ctx, snap, it.ID)
		if want, ok := sc.Expected.Statuses[it.ID]; ok && res.Status != want {
			t.Errorf("scenario %s item %s: expected status %s, got %s", sc.Name, it.ID, want, res.Status)
		}
	}
	if got := svc.Stats().SuccessfulMatches; got != sc.Expected.Matched {
		t.Errorf("scenario %s expected %d matched, got %d", sc.Name, sc.Expected.Matched, got)
	}

	plan := svc.PlanRoutes(ctx, snap)
	var planned []string
	for _, e := range plan.Plan.Entries {
		planned = append(planned, e.ItemID)
	}
	if !sameSet(planned, sc.Expected.Plan) {
		t.Errorf("scenario %s expected plan %v, got %v", sc.Name, sc.Expected.Plan, planned)
	}
	if len(plan.Routes) != sc.Expected.Routes {
		t.Errorf("scenario %s expected %d routes, got %d", sc.Name, sc.Expected.Routes, len(plan.Routes))
	}
	if sc.Expected.Vehicles != nil {
		var vehicles []string
		for _, r := range plan.Routes {
			vehicles = append(vehicles, r.VehicleType)
		}
		if !sameSet(vehicles, sc.Expected.Vehicles) {
			t.Errorf("scenario %s expected vehicles %v, got %v", sc.Name, sc.Expected.Vehicles, vehicles)
		}
	}
	if !sameSet(plan.Unserved, sc.Expected.Unserved) {
		t.Errorf("scenario %s expected unserved %v, got %v", sc.Name, sc.Expected.Unserved, plan.Unserved)
	}

	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := int(counterSum(t, reg, "zerowaste_item_evaluations_total")); got != len(snap.Items) {
		t.Errorf("scenario %s expected %d evaluations recorded, got %d", sc.Name, len(snap.Items), got)
	}
	if got := len(pub.ByKind(coremqtt.KindRoute)); got != sc.Expected.Routes {
		t.Errorf("scenario %s expected %d route reports, got %d", sc.Name, sc.Expected.Routes, got)
	}
}

func counterSum(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var sum float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a = append([]string(nil), a...)
	b = append([]string(nil), b...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
