package prediction

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

// DefaultModelRisk is used when no estimator is available or it fails.
const DefaultModelRisk = 0.5

// Recommendation texts.
const (
	RecommendUrgent      = "URGENT: Immediate redistribution recommended"
	RecommendWarning     = "WARNING: Plan for redistribution within 24 hours"
	RecommendMonitor     = "MONITOR: Regular monitoring required"
	RecommendTemperature = "Check storage temperature conditions"
	RecommendHumidity    = "Adjust humidity levels"
	RecommendPrioritize  = "Prioritize for immediate redistribution"
)

// Factors are the individual risk contributions, each roughly in [0,1].
type Factors struct {
	Temperature float64 `json:"temperature_risk"`
	Humidity    float64 `json:"humidity_risk"`
	Time        float64 `json:"time_risk"`
	Model       float64 `json:"model_risk"`
}

// Analysis is the spoilage risk of one item.
type Analysis struct {
	ItemID          string   `json:"product_id"`
	OverallRisk     float64  `json:"overall_risk"`
	Factors         Factors  `json:"risk_factors"`
	ModelFallback   bool     `json:"model_fallback,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// Analyzer combines estimator output with condition factors.
type Analyzer struct {
	est RiskEstimator
}

// NewAnalyzer returns an Analyzer. est may be nil.
func NewAnalyzer(est RiskEstimator) Analyzer { return Analyzer{est: est} }

// Analyze computes the risk factors for item with the given days until expiry.
func (a Analyzer) Analyze(item model.InventoryItem, daysUntilExpiry int) Analysis {
	res := Analysis{ItemID: item.ID}
	modelRisk := DefaultModelRisk
	if a.est == nil {
		res.ModelFallback = true
	} else if p, err := a.est.PredictRisk(FeaturesFor(item, daysUntilExpiry)); err != nil {
		res.ModelFallback = true
	} else {
		modelRisk = p
	}
	res.Factors = Factors{
		Temperature: math.Abs(item.Temperature-20) / 40,
		Humidity:    math.Abs(item.Humidity-60) / 100,
		Time:        math.Max(0, 1-float64(daysUntilExpiry)/30),
		Model:       modelRisk,
	}
	f := res.Factors
	res.OverallRisk = stat.Mean([]float64{f.Temperature, f.Humidity, f.Time, f.Model}, nil)
	res.Recommendations = recommend(res)
	return res
}

func recommend(a Analysis) []string {
	recs := []string{}
	switch {
	case a.OverallRisk > 0.7:
		recs = append(recs, RecommendUrgent)
	case a.OverallRisk > 0.5:
		recs = append(recs, RecommendWarning)
	case a.OverallRisk > 0.3:
		recs = append(recs, RecommendMonitor)
	}
	if a.Factors.Temperature > 0.6 {
		recs = append(recs, RecommendTemperature)
	}
	if a.Factors.Humidity > 0.6 {
		recs = append(recs, RecommendHumidity)
	}
	if a.Factors.Time > 0.6 {
		recs = append(recs, RecommendPrioritize)
	}
	return recs
}
