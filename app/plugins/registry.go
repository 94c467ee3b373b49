// Package plugins registers the pluggable spoilage risk estimators.
package plugins

import (
	"github.com/ishantk2507/ZeroWasteAI/core/factory"
	"github.com/ishantk2507/ZeroWasteAI/core/prediction"
)

var estimators = factory.NewRegistry[prediction.RiskEstimator]()

// RegisterEstimator adds a risk estimator factory identified by name.
func RegisterEstimator(name string, f factory.Factory[prediction.RiskEstimator]) error {
	return estimators.Register(name, f)
}

// NewEstimator builds the configured estimator. An empty type selects the
// heuristic estimator; "none" returns nil so the analyzer falls back to its
// default model risk.
func NewEstimator(cfg factory.ModuleConfig) (prediction.RiskEstimator, error) {
	if cfg.Type == "" {
		cfg.Type = "heuristic"
	}
	return estimators.Create(cfg)
}

// Estimators lists the registered estimator types.
func Estimators() []string { return estimators.Types() }
