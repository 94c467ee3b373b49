package prediction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

func TestAnalyzeIdealConditions(t *testing.T) {
	a := NewAnalyzer(MockRiskEstimator{Default: 0})
	item := model.InventoryItem{ID: "p1", Category: model.CategoryPantry, Temperature: 20, Humidity: 60}
	res := a.Analyze(item, 30)
	assert.Equal(t, 0.0, res.OverallRisk)
	assert.Empty(t, res.Recommendations)
	assert.False(t, res.ModelFallback)
}

func TestAnalyzeUrgent(t *testing.T) {
	a := NewAnalyzer(MockRiskEstimator{Risk: map[string]float64{model.CategoryMeat: 1}})
	item := model.InventoryItem{ID: "p2", Category: model.CategoryMeat, Temperature: 50, Humidity: 0}
	res := a.Analyze(item, 0)
	// temperature 0.75, humidity 0.6, time 1, model 1
	assert.InDelta(t, 0.75, res.Factors.Temperature, 1e-9)
	assert.InDelta(t, 0.6, res.Factors.Humidity, 1e-9)
	assert.InDelta(t, 0.8375, res.OverallRisk, 1e-9)
	assert.Equal(t, []string{RecommendUrgent, RecommendTemperature, RecommendPrioritize}, res.Recommendations)
}

func TestAnalyzeFallsBackWithoutModel(t *testing.T) {
	item := model.InventoryItem{ID: "p3", Category: model.CategoryFruit, Temperature: 20, Humidity: 60}
	res := NewAnalyzer(nil).Analyze(item, 15)
	assert.True(t, res.ModelFallback)
	assert.Equal(t, DefaultModelRisk, res.Factors.Model)
	// (0 + 0 + 0.5 + 0.5) / 4
	assert.InDelta(t, 0.25, res.OverallRisk, 1e-9)
	assert.Empty(t, res.Recommendations)

	res = NewAnalyzer(MockRiskEstimator{Err: errors.New("down")}).Analyze(item, 15)
	assert.True(t, res.ModelFallback)
	assert.Equal(t, DefaultModelRisk, res.Factors.Model)
}

func TestAnalyzeWarningAndMonitorBands(t *testing.T) {
	item := model.InventoryItem{ID: "p4", Category: model.CategoryDairy, Temperature: 20, Humidity: 60}
	res := NewAnalyzer(MockRiskEstimator{Default: 1}).Analyze(item, 0)
	// (0 + 0 + 1 + 1) / 4 = 0.5 is not above the warning band.
	assert.Equal(t, []string{RecommendMonitor, RecommendPrioritize}, res.Recommendations)

	item.Temperature = 44
	res = NewAnalyzer(MockRiskEstimator{Default: 1}).Analyze(item, 0)
	// (0.6 + 0 + 1 + 1) / 4 = 0.65
	assert.Equal(t, []string{RecommendWarning, RecommendPrioritize}, res.Recommendations)
}
