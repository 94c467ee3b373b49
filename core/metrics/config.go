package metrics

import (
	"fmt"

	"github.com/ishantk2507/ZeroWasteAI/core/factory"
)

// Config defines settings for metrics sinks. The flat fields cover the
// built-in sinks; Sinks lists additional registered ones.
type Config struct {
	PrometheusEnabled bool                   `json:"prometheus_enabled"`
	PrometheusAddr    string                 `json:"prometheus_addr"`
	InfluxEnabled     bool                   `json:"influx_enabled"`
	InfluxURL         string                 `json:"influx_url"`
	InfluxToken       string                 `json:"influx_token"`
	InfluxOrg         string                 `json:"influx_org"`
	InfluxBucket      string                 `json:"influx_bucket"`
	EcoEnabled        bool                   `json:"eco_enabled"`
	EcoSQLitePath     string                 `json:"eco_sqlite_path"`
	EcoRedisAddr      string                 `json:"eco_redis_addr"`
	Sinks             []factory.ModuleConfig `json:"sinks"`
}

// ModuleConfigs expands the flat settings into factory configurations,
// followed by the explicit Sinks entries.
func (c Config) ModuleConfigs() []factory.ModuleConfig {
	var out []factory.ModuleConfig
	if c.PrometheusEnabled {
		out = append(out, factory.ModuleConfig{Type: "prometheus"})
	}
	if c.InfluxEnabled {
		out = append(out, factory.ModuleConfig{Type: "influx", Conf: map[string]any{
			"url":    c.InfluxURL,
			"token":  c.InfluxToken,
			"org":    c.InfluxOrg,
			"bucket": c.InfluxBucket,
		}})
	}
	if c.EcoEnabled {
		out = append(out, factory.ModuleConfig{Type: "eco", Conf: map[string]any{
			"sqlite_path": c.EcoSQLitePath,
			"redis_addr":  c.EcoRedisAddr,
		}})
	}
	return append(out, c.Sinks...)
}

// SetDefaults fills the Prometheus address.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9100"
	}
}

// Validate checks enabled sinks have their endpoints.
func (c Config) Validate() error {
	if c.InfluxEnabled && c.InfluxURL == "" {
		return fmt.Errorf("influx_url is required when influx is enabled")
	}
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("sinks[%d]: type is required", i)
		}
	}
	return nil
}
