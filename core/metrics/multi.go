package metrics

import (
	"errors"
	"io"
)

// MultiSink fans events out to several sinks. Optional recorders are only
// called on sinks that implement them.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordMatch forwards to all sinks, returning the first error encountered.
func (m *MultiSink) RecordMatch(ev MatchEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordMatch(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRoute forwards route events.
func (m *MultiSink) RecordRoute(ev RouteEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RouteRecorder); ok {
			if err := rec.RecordRoute(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordImpact forwards impact summaries.
func (m *MultiSink) RecordImpact(ev ImpactEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ImpactRecorder); ok {
			if err := rec.RecordImpact(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordDelivery forwards delivery events.
func (m *MultiSink) RecordDelivery(ev DeliveryEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DeliveryRecorder); ok {
			if err := rec.RecordDelivery(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink implementing io.Closer.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
