package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ishantk2507/ZeroWasteAI/core/factory"
	coremetrics "github.com/ishantk2507/ZeroWasteAI/core/metrics"
	"github.com/ishantk2507/ZeroWasteAI/core/metrics/eco"
	"github.com/ishantk2507/ZeroWasteAI/infra/kpi"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		s, err := NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})

	_ = coremetrics.RegisterMetricsSink("eco", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			SQLitePath string `json:"sqlite_path"`
			RedisAddr  string `json:"redis_addr"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		var store eco.Store = eco.NewMemoryStore()
		s, err := kpi.Open(c.SQLitePath, c.RedisAddr)
		if err != nil {
			return nil, err
		}
		if s != nil {
			store = s
		}
		sink, err := NewEcoSink(store, prometheus.DefaultRegisterer)
		if err != nil {
			return nil, err
		}
		return sink, nil
	})
}
