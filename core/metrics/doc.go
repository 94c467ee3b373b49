// Package metrics defines the sinks that record redistribution activity.
// Sinks such as PromSink, InfluxSink and EcoSink (see infra/metrics)
// implement MetricsSink plus any of the optional recorder interfaces and can
// be combined with NewMultiSink. NewMetricsSink returns a MultiSink
// automatically when multiple sinks are configured.
package metrics
