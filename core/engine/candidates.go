package engine

import (
	"fmt"
	"sort"

	"github.com/ishantk2507/ZeroWasteAI/core/freshness"
	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

// Candidate recommendations.
const (
	RecommendNothing = "No items currently need redistribution"
	RecommendBatch   = "Consider batch redistribution to optimize logistics"
	RecommendPlan    = "Monitor items and plan ahead for redistribution"
)

const batchThreshold = 10

// Candidate is an item that needs attention.
type Candidate struct {
	Item      model.InventoryItem `json:"item"`
	Freshness freshness.Result    `json:"freshness"`
}

// CandidateSummary describes a candidate list.
type CandidateSummary struct {
	TotalCandidates  int                     `json:"total_candidates"`
	ByLevel          map[freshness.Level]int `json:"by_warning_level"`
	ByCategory       map[string]int          `json:"by_category"`
	AvgDaysRemaining float64                 `json:"avg_days_remaining"`
	UrgentItems      int                     `json:"urgent_items"`
	Recommendation   string                  `json:"recommendation"`
}

// CandidateReport lists candidates from most to least urgent.
type CandidateReport struct {
	Candidates []Candidate      `json:"candidates"`
	Summary    CandidateSummary `json:"summary"`
}

// Candidates returns the items whose warning level is at least as urgent as
// maxLevel, ordered by level and then by ascending freshness.
func (e *Engine) Candidates(s model.Snapshot, maxLevel freshness.Level) CandidateReport {
	limit := maxLevel.Priority()
	rep := CandidateReport{Candidates: []Candidate{}}
	for _, it := range s.Items {
		f := e.Freshness(it)
		if f.Level.Priority() <= limit {
			rep.Candidates = append(rep.Candidates, Candidate{Item: it, Freshness: f})
		}
	}
	sort.SliceStable(rep.Candidates, func(i, j int) bool {
		a, b := rep.Candidates[i].Freshness, rep.Candidates[j].Freshness
		if a.Level.Priority() != b.Level.Priority() {
			return a.Level.Priority() < b.Level.Priority()
		}
		return a.Score < b.Score
	})
	rep.Summary = summarize(rep.Candidates)
	return rep
}

func summarize(cands []Candidate) CandidateSummary {
	s := CandidateSummary{
		TotalCandidates: len(cands),
		ByLevel:         map[freshness.Level]int{},
		ByCategory:      map[string]int{},
	}
	days := 0
	for _, c := range cands {
		s.ByLevel[c.Freshness.Level]++
		s.ByCategory[c.Item.Category]++
		days += c.Freshness.DaysRemaining
		if c.Freshness.Level == freshness.LevelCritical {
			s.UrgentItems++
		}
	}
	if len(cands) > 0 {
		s.AvgDaysRemaining = geo.Round(float64(days)/float64(len(cands)), 2)
	}
	switch {
	case len(cands) == 0:
		s.Recommendation = RecommendNothing
	case s.UrgentItems > 0:
		s.Recommendation = fmt.Sprintf("URGENT: %d items need immediate redistribution", s.UrgentItems)
	case len(cands) > batchThreshold:
		s.Recommendation = RecommendBatch
	default:
		s.Recommendation = RecommendPlan
	}
	return s
}
