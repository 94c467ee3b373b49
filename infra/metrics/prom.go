package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/ishantk2507/ZeroWasteAI/core/metrics"
)

// PromSink records redistribution activity in Prometheus metrics.
type PromSink struct {
	evaluations   *prometheus.CounterVec
	matchDistance *prometheus.HistogramVec
	routes        *prometheus.CounterVec
	routeDistance *prometheus.HistogramVec
	co2           prometheus.Gauge
}

var distanceBuckets = []float64{5, 10, 25, 50, 75, 100, 150, 200, 500}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The HTTP endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.evaluations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zerowaste_item_evaluations_total",
		Help: "Items evaluated by category and outcome status",
	}, []string{"category", "status"})); err != nil {
		return nil, err
	}
	if s.matchDistance, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zerowaste_match_distance_km",
		Help:    "Distance to the best matched recipient",
		Buckets: distanceBuckets,
	}, []string{"category"})); err != nil {
		return nil, err
	}
	if s.routes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zerowaste_routes_total",
		Help: "Delivery routes planned per vehicle type",
	}, []string{"vehicle_type"})); err != nil {
		return nil, err
	}
	if s.routeDistance, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zerowaste_route_distance_km",
		Help:    "Total distance of planned routes",
		Buckets: distanceBuckets,
	}, []string{"vehicle_type"})); err != nil {
		return nil, err
	}
	if s.co2, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zerowaste_plan_co2_saved_kg",
		Help: "CO2 saved by the latest route plan",
	})); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordMatch counts the evaluation and observes the best match distance.
func (s *PromSink) RecordMatch(ev coremetrics.MatchEvent) error {
	s.evaluations.WithLabelValues(ev.Category, ev.Status).Inc()
	if ev.Matches > 0 {
		s.matchDistance.WithLabelValues(ev.Category).Observe(ev.BestDistanceKm)
	}
	return nil
}

// RecordRoute counts the route and observes its distance.
func (s *PromSink) RecordRoute(ev coremetrics.RouteEvent) error {
	s.routes.WithLabelValues(ev.VehicleType).Inc()
	s.routeDistance.WithLabelValues(ev.VehicleType).Observe(ev.DistanceKm)
	return nil
}

// RecordImpact sets the CO2 gauge to the plan total.
func (s *PromSink) RecordImpact(ev coremetrics.ImpactEvent) error {
	s.co2.Set(ev.EmissionsSavedKg)
	return nil
}
