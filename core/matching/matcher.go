// Package matching ranks recipients for an eligible inventory item.
//
// Each reachable recipient gets three sub-scores in [0,1]: proximity relative
// to the category's maximum distance, usable capacity, and category focus,
// which rewards recipients that accept few categories. The weighted sum is
// boosted for critical items.
package matching

import (
	"math"
	"sort"

	"github.com/ishantk2507/ZeroWasteAI/core/eligibility"
	"github.com/ishantk2507/ZeroWasteAI/core/freshness"
	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
)

// Status and reason codes of a match result.
const (
	StatusMatchesFound = "matches_found"
	StatusNoMatches    = "no_matches"
	StatusNoReachable  = "no_reachable"

	ReasonCategoryIncompatible = "category_incompatible"
	ReasonBeyondMaxDistance    = "beyond_max_distance"
)

// Recommendations attached to the stats.
const (
	RecommendProceed      = "proceed"
	RecommendExpandSearch = "expand_search"
)

// Urgency labels attached to the stats.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
)

// Stats summarises a ranked match list.
type Stats struct {
	TotalMatches             int             `json:"total_matches"`
	TotalCapacityKg          float64         `json:"total_capacity_kg"`
	AvgDistanceKm            float64         `json:"avg_distance_km"`
	TotalPotentialCO2Savings float64         `json:"total_potential_co2_savings"`
	Recommendation           string          `json:"recommendation"`
	ItemFreshness            float64         `json:"item_freshness"`
	WarningLevel             freshness.Level `json:"warning_level"`
	DaysRemaining            int             `json:"days_remaining"`
	Urgency                  string          `json:"urgency"`
}

// Reach describes why no compatible recipient could be scored.
type Reach struct {
	CompatibleRecipients int     `json:"compatible_recipients"`
	NearestDistanceKm    float64 `json:"nearest_distance_km,omitempty"`
	MaxDistanceKm        float64 `json:"max_distance_km"`
}

// Result is the outcome of matching one item.
type Result struct {
	Status  string        `json:"status"`
	Reason  string        `json:"reason,omitempty"`
	Matches []model.Match `json:"matches"`
	Stats   Stats         `json:"stats"`
	Reach   *Reach        `json:"reach,omitempty"`
}

// Found reports whether at least one recipient was matched.
func (r Result) Found() bool { return r.Status == StatusMatchesFound }

// Best returns the highest ranked match.
func (r Result) Best() (model.Match, bool) {
	if len(r.Matches) == 0 {
		return model.Match{}, false
	}
	return r.Matches[0], true
}

// Matcher scores recipients using the policy weights.
type Matcher struct {
	policy policy.Policy
	geo    geo.Model
	table  eligibility.Table
}

// NewMatcher returns a Matcher sharing the given distance model and table.
func NewMatcher(p policy.Policy, g geo.Model, table eligibility.Table) *Matcher {
	return &Matcher{policy: p, geo: g, table: table}
}

// Match ranks recipients for item. The recipient slice is not modified.
func (m *Matcher) Match(item model.InventoryItem, f freshness.Result, recipients []model.Recipient) Result {
	limits := m.table.Lookup(item.Category)
	res := Result{Matches: []model.Match{}}
	res.Stats = m.baseStats(f)

	compatible := 0
	nearest := math.Inf(1)
	for _, r := range recipients {
		if !r.Accepts(item.Category) {
			continue
		}
		compatible++
		d := m.geo.Distance(item.Coordinates, r.Coordinates)
		nearest = math.Min(nearest, d)
		if d > limits.MaxDistanceKm {
			continue
		}
		res.Matches = append(res.Matches, m.score(r, d, limits.MaxDistanceKm, f.Level))
	}

	switch {
	case compatible == 0:
		res.Status = StatusNoMatches
		res.Reason = ReasonCategoryIncompatible
		res.Reach = &Reach{MaxDistanceKm: limits.MaxDistanceKm}
		return res
	case len(res.Matches) == 0:
		res.Status = StatusNoReachable
		res.Reason = ReasonBeyondMaxDistance
		res.Reach = &Reach{
			CompatibleRecipients: compatible,
			NearestDistanceKm:    geo.Round(nearest, 2),
			MaxDistanceKm:        limits.MaxDistanceKm,
		}
		return res
	}

	sort.SliceStable(res.Matches, func(i, j int) bool {
		return res.Matches[i].MatchScore > res.Matches[j].MatchScore
	})
	res.Status = StatusMatchesFound
	res.Stats = m.stats(res.Matches, f)
	return res
}

func (m *Matcher) score(r model.Recipient, distance, maxDistance float64, level freshness.Level) model.Match {
	w := m.policy.MatchWeights
	ds := DistanceScore(distance, maxDistance)
	cs := m.CapacityScore(r.CapacityKg)
	fs := m.FocusScore(len(r.AcceptedCategories))
	score := w.Distance*ds + w.Capacity*cs + w.CategoryFocus*fs
	if level == freshness.LevelCritical {
		score *= m.policy.UrgencyMultiplier
	}
	return model.Match{
		RecipientID:        r.ID,
		RecipientName:      r.Name,
		Location:           r.Location,
		CapacityKg:         r.CapacityKg,
		DistanceKm:         geo.Round(distance, 2),
		CO2SavingsKg:       m.geo.CO2Savings(distance),
		MatchScore:         geo.Round(score, 4),
		DistanceScore:      ds,
		CapacityScore:      cs,
		CategoryFocusScore: fs,
	}
}

// DistanceScore is 1 at distance 0 and falls linearly to 0 at maxDistance.
func DistanceScore(distance, maxDistance float64) float64 {
	if maxDistance <= 0 {
		return 0
	}
	return clamp01(1 - distance/maxDistance)
}

// CapacityScore normalises usable capacity above the required minimum.
func (m *Matcher) CapacityScore(capacityKg float64) float64 {
	return clamp01((capacityKg - m.policy.MinRequiredCapacityKg) / m.policy.CapacityScaleKg)
}

// FocusScore rewards recipients that accept few categories.
func (m *Matcher) FocusScore(categories int) float64 {
	return 1 / (1 + m.policy.CategoryFocusK*float64(categories))
}

func (m *Matcher) baseStats(f freshness.Result) Stats {
	s := Stats{
		Recommendation: RecommendExpandSearch,
		ItemFreshness:  f.Score,
		WarningLevel:   f.Level,
		DaysRemaining:  f.DaysRemaining,
		Urgency:        UrgencyMedium,
	}
	if f.Level.Urgent() {
		s.Urgency = UrgencyHigh
	}
	return s
}

func (m *Matcher) stats(matches []model.Match, f freshness.Result) Stats {
	s := m.baseStats(f)
	s.TotalMatches = len(matches)
	var dist float64
	for _, mt := range matches {
		s.TotalCapacityKg += mt.CapacityKg
		s.TotalPotentialCO2Savings += mt.CO2SavingsKg
		dist += mt.DistanceKm
	}
	if len(matches) > 0 {
		s.AvgDistanceKm = geo.Round(dist/float64(len(matches)), 2)
		s.Recommendation = RecommendProceed
	}
	s.TotalPotentialCO2Savings = geo.Round(s.TotalPotentialCO2Savings, 2)
	return s
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
