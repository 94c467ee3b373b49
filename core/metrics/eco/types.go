package eco

import "time"

// Record aggregates delivery KPIs for a recipient and day.
type Record struct {
	RecipientID string
	Date        time.Time
	Deliveries  int
	DistanceKm  float64
	CO2SavedKg  float64
}

// AvgDistanceKm returns the mean distance per delivery.
func (r Record) AvgDistanceKm() float64 {
	if r.Deliveries == 0 {
		return 0
	}
	return r.DistanceKm / float64(r.Deliveries)
}

// CO2PerKm returns the CO2 saved per kilometre driven.
func (r Record) CO2PerKm() float64 {
	if r.DistanceKm == 0 {
		return 0
	}
	return r.CO2SavedKg / r.DistanceKm
}
