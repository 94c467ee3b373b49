// Package monitor provides the running statistics accumulator kept by a
// calling session across per-item evaluations.
//
// A Stats value is not safe for concurrent mutation. Concurrent workers
// should each own one and combine them with Merge.
package monitor

import "github.com/ishantk2507/ZeroWasteAI/core/freshness"

// CategoryStats counts items of one category.
type CategoryStats struct {
	Total               int `json:"total"`
	NeedsRedistribution int `json:"needs_redistribution"`
	SuccessfullyMatched int `json:"successfully_matched"`
}

// Stats counts processed items, matches and breakdowns by level and category.
type Stats struct {
	ItemsProcessed    int                       `json:"total_items_processed"`
	SuccessfulMatches int                       `json:"successful_matches"`
	ByLevel           map[freshness.Level]int   `json:"items_by_warning_level"`
	ByCategory        map[string]*CategoryStats `json:"items_by_category"`
}

// New returns an empty accumulator.
func New() Stats {
	return Stats{
		ByLevel:    map[freshness.Level]int{},
		ByCategory: map[string]*CategoryStats{},
	}
}

// Record counts one evaluated item.
func (s *Stats) Record(category string, level freshness.Level, needsRedistribution, matched bool) {
	s.init()
	s.ItemsProcessed++
	s.ByLevel[level]++
	c := s.category(category)
	c.Total++
	if needsRedistribution {
		c.NeedsRedistribution++
	}
	if matched {
		s.SuccessfulMatches++
		c.SuccessfullyMatched++
	}
}

// Merge adds other into s.
func (s *Stats) Merge(other Stats) {
	s.init()
	s.ItemsProcessed += other.ItemsProcessed
	s.SuccessfulMatches += other.SuccessfulMatches
	for l, n := range other.ByLevel {
		s.ByLevel[l] += n
	}
	for name, o := range other.ByCategory {
		c := s.category(name)
		c.Total += o.Total
		c.NeedsRedistribution += o.NeedsRedistribution
		c.SuccessfullyMatched += o.SuccessfullyMatched
	}
}

// Clone returns a deep copy of s.
func (s Stats) Clone() Stats {
	out := New()
	out.Merge(s)
	return out
}

// MatchRate returns the share of processed items that were matched.
func (s Stats) MatchRate() float64 {
	if s.ItemsProcessed == 0 {
		return 0
	}
	return float64(s.SuccessfulMatches) / float64(s.ItemsProcessed)
}

func (s *Stats) init() {
	if s.ByLevel == nil {
		s.ByLevel = map[freshness.Level]int{}
	}
	if s.ByCategory == nil {
		s.ByCategory = map[string]*CategoryStats{}
	}
}

func (s *Stats) category(name string) *CategoryStats {
	c := s.ByCategory[name]
	if c == nil {
		c = &CategoryStats{}
		s.ByCategory[name] = c
	}
	return c
}
