// Package geo computes great-circle distances and the CO2 avoided by serving
// a recipient directly instead of through a standard distribution route.
package geo

import (
	"math"

	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
)

// Model converts coordinates into distances and distances into CO2 savings.
type Model struct {
	RadiusKm       float64
	EmissionFactor float64 // kg CO2 per km
	Inefficiency   float64 // standard route length relative to the direct one
}

// NewModel builds a Model from the policy constants.
func NewModel(p policy.Policy) Model {
	return Model{
		RadiusKm:       p.EarthRadiusKm,
		EmissionFactor: p.EmissionFactorKgPerKm,
		Inefficiency:   p.InefficiencyFactor,
	}
}

// WithEmissionFactor returns a copy using factor when it is positive.
func (m Model) WithEmissionFactor(factor float64) Model {
	if factor > 0 {
		m.EmissionFactor = factor
	}
	return m
}

// Distance returns the haversine distance between a and b in kilometres.
func (m Model) Distance(a, b model.Coordinates) float64 {
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	dLat := lat2 - lat1
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return m.RadiusKm * c
}

// CO2Savings returns the kg of CO2 avoided over distanceKm, rounded to
// two decimals.
func (m Model) CO2Savings(distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	standard := distanceKm * m.Inefficiency * m.EmissionFactor
	direct := distanceKm * m.EmissionFactor
	return Round(standard-direct, 2)
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
