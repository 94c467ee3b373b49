package policy

import (
	"fmt"
	"math"

	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

// CategoryPolicy combines the redistribution constraints of a category with
// its perishability tier (1 = most perishable, 4 = least).
type CategoryPolicy struct {
	model.ConstraintProfile `json:",squash" mapstructure:",squash"`
	Tier                    int `json:"tier"`
}

// Thresholds are the upper bounds of each warning level.
type Thresholds struct {
	Critical float64 `json:"critical"`
	Warning  float64 `json:"warning"`
	Monitor  float64 `json:"monitor"`
}

// MatchWeights weight the recipient sub-scores.
type MatchWeights struct {
	Distance      float64 `json:"distance"`
	Capacity      float64 `json:"capacity"`
	CategoryFocus float64 `json:"category_focus"`
}

// GreenWeights weight the route green score components.
type GreenWeights struct {
	Distance  float64 `json:"distance"`
	Capacity  float64 `json:"capacity"`
	Emissions float64 `json:"emissions"`
	Time      float64 `json:"time"`
}

// Policy is the canonical set of tunables.
type Policy struct {
	EarthRadiusKm         float64 `json:"earth_radius_km"`
	EmissionFactorKgPerKm float64 `json:"emission_factor_kg_per_km"`
	InefficiencyFactor    float64 `json:"inefficiency_factor"`

	Thresholds Thresholds `json:"thresholds"`
	// TierMultipliers scales freshness by perishability tier. Missing tiers use 1.
	TierMultipliers map[int]float64 `json:"tier_multipliers"`

	Categories      map[string]CategoryPolicy `json:"categories"`
	DefaultCategory CategoryPolicy            `json:"default_category"`

	MatchWeights          MatchWeights `json:"match_weights"`
	UrgencyMultiplier     float64      `json:"urgency_multiplier"`
	MinRequiredCapacityKg float64      `json:"min_required_capacity_kg"`
	CapacityScaleKg       float64      `json:"capacity_scale_kg"`
	CategoryFocusK        float64      `json:"category_focus_k"`

	PriorityDivisor     float64 `json:"priority_divisor"`
	AssignmentCO2Weight float64 `json:"assignment_co2_weight"`

	GreenWeights            GreenWeights `json:"green_weights"`
	MaxReasonableDistanceKm float64      `json:"max_reasonable_distance_km"`
	MaxReasonableTimeMin    float64      `json:"max_reasonable_time_min"`

	MonthlyProjectionDays float64 `json:"monthly_projection_days"`
}

// Default returns the canonical constant set.
func Default() Policy {
	cat := func(maxKm, minFresh float64, minDays, tier int) CategoryPolicy {
		return CategoryPolicy{
			ConstraintProfile: model.ConstraintProfile{MaxDistanceKm: maxKm, MinFreshness: minFresh, MinDays: minDays},
			Tier:              tier,
		}
	}
	return Policy{
		EarthRadiusKm:         6371,
		EmissionFactorKgPerKm: 0.2,
		InefficiencyFactor:    1.4,
		Thresholds:            Thresholds{Critical: 10, Warning: 20, Monitor: 30},
		TierMultipliers:       map[int]float64{1: 0.9, 4: 1.1},
		Categories: map[string]CategoryPolicy{
			model.CategoryMeat:          cat(50, 20, 2, 1),
			model.CategorySeafood:       cat(50, 20, 2, 1),
			model.CategoryDairy:         cat(100, 15, 3, 1),
			model.CategoryBakery:        cat(75, 15, 1, 2),
			model.CategoryFruit:         cat(150, 10, 2, 2),
			model.CategoryVegetable:     cat(150, 10, 2, 2),
			model.CategoryFrozenDessert: cat(200, 5, 5, 3),
			model.CategoryPantry:        cat(500, 5, 7, 4),
		},
		DefaultCategory:         cat(200, 10, 3, 3),
		MatchWeights:            MatchWeights{Distance: 0.4, Capacity: 0.3, CategoryFocus: 0.3},
		UrgencyMultiplier:       1.2,
		MinRequiredCapacityKg:   10,
		CapacityScaleKg:         200,
		CategoryFocusK:          0.2,
		PriorityDivisor:         3.0,
		AssignmentCO2Weight:     0.1,
		GreenWeights:            GreenWeights{Distance: 0.3, Capacity: 0.3, Emissions: 0.2, Time: 0.2},
		MaxReasonableDistanceKm: 100,
		MaxReasonableTimeMin:    240,
		MonthlyProjectionDays:   30,
	}
}

// Category returns the policy for category, falling back to the default.
func (p Policy) Category(category string) CategoryPolicy {
	if c, ok := p.Categories[category]; ok {
		return c
	}
	return p.DefaultCategory
}

// Tier returns the perishability tier of category.
func (p Policy) Tier(category string) int {
	return p.Category(category).Tier
}

// TierMultiplier returns the freshness multiplier for category.
func (p Policy) TierMultiplier(category string) float64 {
	if m, ok := p.TierMultipliers[p.Tier(category)]; ok {
		return m
	}
	return 1
}

const weightTolerance = 1e-9

// Validate checks internal consistency of the constants.
func (p Policy) Validate() error {
	if p.EarthRadiusKm <= 0 {
		return fmt.Errorf("earth radius must be positive")
	}
	if p.EmissionFactorKgPerKm < 0 {
		return fmt.Errorf("emission factor must not be negative")
	}
	if p.InefficiencyFactor <= 1 {
		return fmt.Errorf("inefficiency factor must be greater than 1, got %v", p.InefficiencyFactor)
	}
	t := p.Thresholds
	if !(t.Critical < t.Warning && t.Warning < t.Monitor) {
		return fmt.Errorf("thresholds must increase: %v/%v/%v", t.Critical, t.Warning, t.Monitor)
	}
	mw := p.MatchWeights
	if s := mw.Distance + mw.Capacity + mw.CategoryFocus; math.Abs(s-1) > weightTolerance {
		return fmt.Errorf("match weights sum to %v, want 1", s)
	}
	gw := p.GreenWeights
	if s := gw.Distance + gw.Capacity + gw.Emissions + gw.Time; math.Abs(s-1) > weightTolerance {
		return fmt.Errorf("green weights sum to %v, want 1", s)
	}
	if p.UrgencyMultiplier < 1 {
		return fmt.Errorf("urgency multiplier must be at least 1")
	}
	if p.CapacityScaleKg <= 0 {
		return fmt.Errorf("capacity scale must be positive")
	}
	if p.PriorityDivisor <= 0 {
		return fmt.Errorf("priority divisor must be positive")
	}
	if p.MaxReasonableDistanceKm <= 0 || p.MaxReasonableTimeMin <= 0 {
		return fmt.Errorf("green score references must be positive")
	}
	if err := validateCategory("default", p.DefaultCategory); err != nil {
		return err
	}
	for name, c := range p.Categories {
		if err := validateCategory(name, c); err != nil {
			return err
		}
	}
	return nil
}

func validateCategory(name string, c CategoryPolicy) error {
	if c.MaxDistanceKm <= 0 {
		return fmt.Errorf("category %s: max distance must be positive", name)
	}
	if c.MinFreshness < 0 || c.MinFreshness > 100 {
		return fmt.Errorf("category %s: min freshness out of range", name)
	}
	if c.MinDays < 0 {
		return fmt.Errorf("category %s: negative min days", name)
	}
	if c.Tier < 1 || c.Tier > 4 {
		return fmt.Errorf("category %s: tier %d out of range 1-4", name, c.Tier)
	}
	return nil
}
