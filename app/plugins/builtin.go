package plugins

import (
	"fmt"

	"github.com/ishantk2507/ZeroWasteAI/core/factory"
	"github.com/ishantk2507/ZeroWasteAI/core/prediction"
)

func init() {
	_ = RegisterEstimator("none", func(map[string]any) (prediction.RiskEstimator, error) {
		return nil, nil
	})
	_ = RegisterEstimator("heuristic", func(conf map[string]any) (prediction.RiskEstimator, error) {
		var c struct {
			HorizonDays float64 `json:"horizon_days"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		h := prediction.NewHeuristicEstimator()
		if c.HorizonDays > 0 {
			h.HorizonDays = c.HorizonDays
		}
		return h, nil
	})
	_ = RegisterEstimator("mock", func(conf map[string]any) (prediction.RiskEstimator, error) {
		var c struct {
			Default float64            `json:"default"`
			Risk    map[string]float64 `json:"risk"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Default < 0 || c.Default > 1 {
			return nil, fmt.Errorf("mock estimator: default %v out of range", c.Default)
		}
		return prediction.MockRiskEstimator{Default: c.Default, Risk: c.Risk}, nil
	})
}
