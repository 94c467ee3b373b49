package metrics

import "time"

// MatchEvent describes the outcome of one item evaluation.
type MatchEvent struct {
	ItemID          string
	Category        string
	Level           string
	Status          string
	Matches         int
	BestRecipientID string
	BestDistanceKm  float64
	BestCO2Kg       float64
	BestScore       float64
	Time            time.Time
}

// MetricsSink records item evaluations.
type MetricsSink interface {
	RecordMatch(ev MatchEvent) error
}

// RouteEvent describes a planned delivery route.
type RouteEvent struct {
	PlanID           string
	RouteID          string
	VehicleType      string
	Stops            int
	Deliveries       int
	DistanceKm       float64
	LoadKg           float64
	EmissionsSavedKg float64
	Utilization      float64
	GreenScore       float64
	Time             time.Time
}

// RouteRecorder records planned routes.
type RouteRecorder interface {
	RecordRoute(ev RouteEvent) error
}

// ImpactEvent summarises a planning run.
type ImpactEvent struct {
	PlanID           string
	Routes           int
	Deliveries       int
	DistanceKm       float64
	EmissionsSavedKg float64
	AvgGreenScore    float64
	Time             time.Time
}

// ImpactRecorder records planning summaries.
type ImpactRecorder interface {
	RecordImpact(ev ImpactEvent) error
}

// DeliveryEvent is one drop at a recipient.
type DeliveryEvent struct {
	RecipientID string
	DistanceKm  float64
	CO2SavedKg  float64
	Time        time.Time
}

// DeliveryRecorder records individual deliveries.
type DeliveryRecorder interface {
	RecordDelivery(ev DeliveryEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordMatch(MatchEvent) error       { return nil }
func (NopSink) RecordRoute(RouteEvent) error       { return nil }
func (NopSink) RecordImpact(ImpactEvent) error     { return nil }
func (NopSink) RecordDelivery(DeliveryEvent) error { return nil }
