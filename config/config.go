package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ishantk2507/ZeroWasteAI/core/factory"
	"github.com/ishantk2507/ZeroWasteAI/core/metrics"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
	"github.com/ishantk2507/ZeroWasteAI/infra/mqtt"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore, e.g. ZW_POLICY__THRESHOLDS__CRITICAL=12.
const EnvPrefix = "ZW_"

type Config struct {
	Policy  policy.Policy  `json:"policy"`
	Routing RoutingConfig  `json:"routing"`
	Data    DataConfig     `json:"data"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
	Logging LoggingConfig  `json:"logging"`
	// Prediction selects the spoilage risk estimator (heuristic, mock, none).
	Prediction factory.ModuleConfig `json:"prediction"`
}

// Default returns a configuration with every section defaulted.
func Default() *Config {
	cfg := &Config{Policy: policy.Default()}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills unset values in every section.
func (c *Config) SetDefaults() {
	c.Routing.SetDefaults()
	c.Data.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	if err := c.Routing.Validate(); err != nil {
		return fmt.Errorf("routing: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// Load reads the configuration file at path, applies ZW_ environment
// overrides and validates the result. An empty path loads defaults and the
// environment only. Policy values start from policy.Default, so a file only
// needs the keys it changes.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := &Config{Policy: policy.Default()}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := mergeCategories(k, &cfg.Policy); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

const categoriesKey = "policy.categories"

// mergeCategories re-decodes every configured category over its default
// entry. Map values are decoded from zero, so without this a partial entry
// would lose the default thresholds and tier. Unknown categories start from
// the default category.
func mergeCategories(k *koanf.Koanf, p *policy.Policy) error {
	defaults := policy.Default()
	if p.Categories == nil {
		p.Categories = map[string]policy.CategoryPolicy{}
	}
	for _, name := range k.MapKeys(categoriesKey) {
		c, ok := defaults.Categories[name]
		if !ok {
			c = p.DefaultCategory
		}
		if err := k.UnmarshalWithConf(categoriesKey+"."+name, &c, koanf.UnmarshalConf{Tag: "json"}); err != nil {
			return fmt.Errorf("decode category %s: %w", name, err)
		}
		p.Categories[name] = c
	}
	return nil
}
