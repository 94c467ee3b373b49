package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/ishantk2507/ZeroWasteAI/core/metrics"
	"github.com/ishantk2507/ZeroWasteAI/core/metrics/eco"
)

// EcoSink stores deliveries as per-recipient daily KPIs and mirrors the
// current day in Prometheus gauges.
type EcoSink struct {
	store      eco.Store
	deliveries *prometheus.GaugeVec
	distance   *prometheus.GaugeVec
	co2        *prometheus.GaugeVec
}

// NewEcoSink creates a sink with Prometheus gauges registered on reg.
func NewEcoSink(store eco.Store, reg prometheus.Registerer) (*EcoSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &EcoSink{store: store}
	var err error
	if s.deliveries, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "recipient_daily_deliveries",
		Help: "Deliveries per recipient and day",
	}, []string{"recipient_id", "day"})); err != nil {
		return nil, err
	}
	if s.distance, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "recipient_daily_distance_km",
		Help: "Distance driven to a recipient per day",
	}, []string{"recipient_id", "day"})); err != nil {
		return nil, err
	}
	if s.co2, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "recipient_daily_co2_saved_kg",
		Help: "CO2 saved by deliveries to a recipient per day",
	}, []string{"recipient_id", "day"})); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordMatch is a no-op; only deliveries feed the KPIs.
func (s *EcoSink) RecordMatch(coremetrics.MatchEvent) error { return nil }

// RecordDelivery adds the delivery to the store and refreshes the gauges.
func (s *EcoSink) RecordDelivery(ev coremetrics.DeliveryEvent) error {
	rec := eco.Record{
		RecipientID: ev.RecipientID,
		Date:        ev.Time,
		Deliveries:  1,
		DistanceKm:  ev.DistanceKm,
		CO2SavedKg:  ev.CO2SavedKg,
	}
	if err := s.store.Add(rec); err != nil {
		return err
	}
	records, err := s.store.Query(ev.RecipientID, ev.Time, ev.Time)
	if err != nil || len(records) == 0 {
		return err
	}
	day := eco.Day(ev.Time).Format("2006-01-02")
	r := records[0]
	s.deliveries.WithLabelValues(ev.RecipientID, day).Set(float64(r.Deliveries))
	s.distance.WithLabelValues(ev.RecipientID, day).Set(r.DistanceKm)
	s.co2.WithLabelValues(ev.RecipientID, day).Set(r.CO2SavedKg)
	return nil
}

// Close closes the store when it holds resources.
func (s *EcoSink) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
