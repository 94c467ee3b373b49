package prediction

import (
	"errors"
	"testing"

	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

func TestMockRiskEstimator_PredictRisk(t *testing.T) {
	est := MockRiskEstimator{Risk: map[string]float64{model.CategoryDairy: 0.9}, Default: 0.2}
	v, err := est.PredictRisk(Features{CategoryCode: CategoryCode(model.CategoryDairy)})
	if err != nil || v != 0.9 {
		t.Fatalf("expected configured value, got %v (%v)", v, err)
	}
	v, err = est.PredictRisk(Features{CategoryCode: -1})
	if err != nil || v != 0.2 {
		t.Fatalf("expected default value, got %v (%v)", v, err)
	}
}

func TestMockRiskEstimator_Error(t *testing.T) {
	est := MockRiskEstimator{Err: errors.New("model unavailable")}
	if _, err := est.PredictRisk(Features{}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := (MockRiskEstimator{Default: 2}).PredictRisk(Features{}); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestCodes(t *testing.T) {
	if CategoryCode(model.CategoryPantry) != 7 || CategoryCode("Spices") != -1 {
		t.Fatalf("unexpected category codes")
	}
	if StorageCode(model.StorageFrozen) != 2 || StorageCode("Cellar") != -1 {
		t.Fatalf("unexpected storage codes")
	}
}
