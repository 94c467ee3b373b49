package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishantk2507/ZeroWasteAI/core/policy"
	"github.com/ishantk2507/ZeroWasteAI/core/routing"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `policy:
  thresholds:
    critical: 12
  categories:
    Dairy:
      max_distance_km: 80
      min_freshness: 15
      min_days: 3
      tier: 1
routing:
  depot:
    latitude: 28.6139
    longitude: 77.209
  default_item_weight_kg: 5
  vehicles:
    - type: van
      capacity_kg: 800
      max_stops: 6
      speed_kmh: 40
data:
  inventory_path: inv.csv
metrics:
  prometheus_enabled: true
  sinks:
    - type: nop
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "cli"
  qos:
    matches: 1
logging:
  level: DEBUG
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	def := policy.Default()
	assert.Equal(t, 12.0, cfg.Policy.Thresholds.Critical)
	assert.Equal(t, def.Thresholds.Warning, cfg.Policy.Thresholds.Warning, "unset keys keep defaults")
	assert.Equal(t, 80.0, cfg.Policy.Categories["Dairy"].MaxDistanceKm)
	assert.Equal(t, def.Categories["Meat"], cfg.Policy.Categories["Meat"])
	assert.Equal(t, def.EmissionFactorKgPerKm, cfg.Policy.EmissionFactorKgPerKm)

	assert.Equal(t, 28.6139, cfg.Routing.Depot.Lat)
	assert.Equal(t, 5.0, cfg.Routing.DefaultItemWeightKg)
	assert.Equal(t, []routing.Vehicle{{Type: "van", CapacityKg: 800, MaxStops: 6, SpeedKmh: 40}}, cfg.Routing.Vehicles)
	assert.Equal(t, "depot", cfg.Routing.DepotID)

	assert.Equal(t, "inv.csv", cfg.Data.InventoryPath)
	assert.Equal(t, "data/recipients.csv", cfg.Data.RecipientsPath)

	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, ":9100", cfg.Metrics.PrometheusAddr)
	require.Len(t, cfg.Metrics.Sinks, 1)
	assert.Equal(t, "nop", cfg.Metrics.Sinks[0].Type)

	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, "cli", cfg.MQTT.ClientID)
	assert.Equal(t, byte(1), cfg.MQTT.QoS["matches"])
	assert.Equal(t, "zerowaste", cfg.MQTT.TopicPrefix)

	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadPartialCategoryKeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `policy:
  categories:
    Meat:
      max_distance_km: 60
    Spices:
      min_days: 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	def := policy.Default()
	meat := cfg.Policy.Categories["Meat"]
	assert.Equal(t, 60.0, meat.MaxDistanceKm)
	assert.Equal(t, def.Categories["Meat"].MinFreshness, meat.MinFreshness)
	assert.Equal(t, def.Categories["Meat"].MinDays, meat.MinDays)
	assert.Equal(t, 1, meat.Tier)
	assert.Equal(t, 0.9, cfg.Policy.TierMultiplier("Meat"))
	assert.Equal(t, def.Categories["Dairy"], cfg.Policy.Categories["Dairy"])

	spices := cfg.Policy.Categories["Spices"]
	assert.Equal(t, 30, spices.MinDays)
	assert.Equal(t, def.DefaultCategory.MaxDistanceKm, spices.MaxDistanceKm)
	assert.Equal(t, def.DefaultCategory.Tier, spices.Tier)
}

func TestLoadRejectsCategoryTier(t *testing.T) {
	path := writeFile(t, "config.yaml", `policy:
  categories:
    Meat:
      tier: 7
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadJSONWithEnvOverride(t *testing.T) {
	path := writeFile(t, "config.json", `{"routing":{"default_item_weight_kg":7},"logging":{"level":"warn"}}`)
	t.Setenv("ZW_ROUTING__DEFAULT_ITEM_WEIGHT_KG", "9")
	t.Setenv("ZW_POLICY__MATCH_WEIGHTS__DISTANCE", "0.4")
	t.Setenv("ZW_MQTT__TOPIC_PREFIX", "food")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9.0, cfg.Routing.DefaultItemWeightKg)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "food", cfg.MQTT.TopicPrefix)
	assert.Equal(t, "food/requests", cfg.MQTT.RequestTopic)
	assert.Len(t, cfg.Routing.Vehicles, len(routing.DefaultVehicles()))
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, policy.Default().Thresholds, cfg.Policy.Thresholds)
	assert.Equal(t, Default().Routing, cfg.Routing)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", "a = 1"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "policy:\n  match_weights:\n    distance: 0.9\n"))
	assert.ErrorContains(t, err, "policy")

	_, err = Load(writeFile(t, "lvl.yaml", "logging:\n  level: loud\n"))
	assert.ErrorContains(t, err, "logging.level")

	_, err = Load(writeFile(t, "veh.yaml", "routing:\n  vehicles:\n    - type: van\n      capacity_kg: 10\n      max_stops: 0\n      speed_kmh: 10\n"))
	assert.ErrorContains(t, err, "routing")

	_, err = Load(writeFile(t, "mqtt.yaml", "mqtt:\n  enabled: true\n"))
	assert.ErrorContains(t, err, "mqtt.broker")

	_, err = Load(writeFile(t, "influx.yaml", "metrics:\n  influx_enabled: true\n"))
	assert.ErrorContains(t, err, "influx_url")
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("ZW_MQTT__CLIENT_ID", "")
	require.NoError(t, os.Unsetenv("ZW_MQTT__CLIENT_ID"))
	t.Setenv("ZW_LOGGING__LEVEL", "error")

	env := writeFile(t, ".env", "ZW_MQTT__CLIENT_ID=from-dotenv\nZW_LOGGING__LEVEL=debug\n")
	require.NoError(t, LoadDotEnv(env))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.MQTT.ClientID)
	assert.Equal(t, "error", cfg.Logging.Level)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, LoadDotEnv(""))
}
