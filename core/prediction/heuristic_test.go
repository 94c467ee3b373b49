package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

func TestHeuristicEstimator(t *testing.T) {
	h := NewHeuristicEstimator()
	cases := []struct {
		name string
		f    Features
		want float64
	}{
		{"fresh and cold", Features{DaysUntilExpiry: 30, Temperature: 2, StorageCode: StorageCode(model.StorageRefrigerated)}, 0},
		{"expired", Features{DaysUntilExpiry: -2, Temperature: 2, StorageCode: StorageCode(model.StorageRefrigerated)}, 0.6},
		{"halfway", Features{DaysUntilExpiry: 7, Temperature: 20, StorageCode: StorageCode(model.StorageAmbient)}, 0.3},
		{"warm fridge", Features{DaysUntilExpiry: 14, Temperature: 9, StorageCode: StorageCode(model.StorageRefrigerated)}, 0.2},
		{"thawed", Features{DaysUntilExpiry: 0, Temperature: 5, StorageCode: StorageCode(model.StorageFrozen)}, 1},
		{"unknown storage", Features{DaysUntilExpiry: 14, Temperature: 40, StorageCode: -1}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := h.PredictRisk(c.f)
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestHeuristicEstimatorZeroHorizon(t *testing.T) {
	got, err := HeuristicEstimator{}.PredictRisk(Features{DaysUntilExpiry: 7, StorageCode: -1})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got, 1e-9)
}
