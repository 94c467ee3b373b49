package prediction

import "math"

// TempRange is an ideal storage temperature band in Celsius.
type TempRange struct {
	Min float64
	Max float64
}

// DefaultStorageRanges maps storage codes to their ideal temperature band.
var DefaultStorageRanges = map[int]TempRange{
	0: {Min: 10, Max: 25},   // Ambient
	1: {Min: 0, Max: 4},     // Refrigerated
	2: {Min: -25, Max: -15}, // Frozen
}

// HeuristicEstimator scores risk from time pressure and temperature abuse:
// 0.6 * time risk + 0.4 * temperature risk. Time risk grows linearly as
// expiry approaches within HorizonDays. Temperature risk is the deviation
// from the storage band, saturating at 10 degrees.
type HeuristicEstimator struct {
	HorizonDays float64
	Ranges      map[int]TempRange
}

// NewHeuristicEstimator returns an estimator with a 14 day horizon and the
// default storage bands.
func NewHeuristicEstimator() HeuristicEstimator {
	return HeuristicEstimator{HorizonDays: 14, Ranges: DefaultStorageRanges}
}

// PredictRisk implements RiskEstimator.
func (h HeuristicEstimator) PredictRisk(f Features) (float64, error) {
	horizon := h.HorizonDays
	if horizon <= 0 {
		horizon = 14
	}
	timeRisk := 1 - math.Min(math.Max(float64(f.DaysUntilExpiry), 0)/horizon, 1)

	tempRisk := 0.0
	if r, ok := h.Ranges[f.StorageCode]; ok {
		dev := math.Max(0, f.Temperature-r.Max) + math.Max(0, r.Min-f.Temperature)
		tempRisk = math.Min(dev/10, 1)
	}
	return 0.6*timeRisk + 0.4*tempRisk, nil
}
