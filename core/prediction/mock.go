package prediction

import "fmt"

// MockRiskEstimator returns deterministic risk values keyed by category.
type MockRiskEstimator struct {
	Risk    map[string]float64
	Default float64
	Err     error
}

// PredictRisk returns the configured value for the feature category, the
// default otherwise, or Err when set.
func (m MockRiskEstimator) PredictRisk(f Features) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if f.CategoryCode >= 0 && f.CategoryCode < len(categoryCodes) {
		if v, ok := m.Risk[categoryCodes[f.CategoryCode]]; ok {
			return v, nil
		}
	}
	if m.Default < 0 || m.Default > 1 {
		return 0, fmt.Errorf("default risk %v out of range", m.Default)
	}
	return m.Default, nil
}
