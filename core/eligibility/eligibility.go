// Package eligibility looks up category constraints and decides whether an
// item may be redistributed.
package eligibility

import (
	"github.com/ishantk2507/ZeroWasteAI/core/freshness"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
)

// Status and reason codes reported for ineligible items.
const (
	StatusNotRedistributable = "not_redistributable"
	ReasonBelowMinimum       = "below_minimum_criteria"
)

// Names of the thresholds an item can fail.
const (
	FailedFreshness = "freshness"
	FailedDays      = "days"
)

// Table maps categories to constraint profiles.
type Table struct {
	profiles map[string]model.ConstraintProfile
	fallback model.ConstraintProfile
}

// NewTable extracts the constraint table from the policy.
func NewTable(p policy.Policy) Table {
	profiles := make(map[string]model.ConstraintProfile, len(p.Categories))
	for name, c := range p.Categories {
		profiles[name] = c.ConstraintProfile
	}
	return Table{profiles: profiles, fallback: p.DefaultCategory.ConstraintProfile}
}

// Lookup returns the profile for category or the default profile.
func (t Table) Lookup(category string) model.ConstraintProfile {
	if c, ok := t.profiles[category]; ok {
		return c
	}
	return t.fallback
}

// Details explains an eligibility decision.
type Details struct {
	Freshness            float64  `json:"freshness"`
	DaysRemaining        int      `json:"days_remaining"`
	MinFreshnessRequired float64  `json:"min_freshness_required"`
	MinDaysRequired      int      `json:"min_days_required"`
	Failed               []string `json:"failed,omitempty"`
}

// Decision is the outcome of the gate.
type Decision struct {
	Eligible    bool                    `json:"eligible"`
	Status      string                  `json:"status,omitempty"`
	Reason      string                  `json:"reason,omitempty"`
	Details     Details                 `json:"details"`
	Constraints model.ConstraintProfile `json:"constraints"`
}

// Gate applies the constraint table to freshness results.
type Gate struct {
	table Table
}

// NewGate returns a Gate over table.
func NewGate(table Table) Gate { return Gate{table: table} }

// Table returns the constraint table used by the gate.
func (g Gate) Table() Table { return g.table }

// Check decides whether item qualifies given its freshness.
func (g Gate) Check(item model.InventoryItem, f freshness.Result) Decision {
	c := g.table.Lookup(item.Category)
	d := Decision{
		Eligible:    true,
		Constraints: c,
		Details: Details{
			Freshness:            f.Score,
			DaysRemaining:        f.DaysRemaining,
			MinFreshnessRequired: c.MinFreshness,
			MinDaysRequired:      c.MinDays,
		},
	}
	if f.Score < c.MinFreshness {
		d.Details.Failed = append(d.Details.Failed, FailedFreshness)
	}
	if f.DaysRemaining < c.MinDays {
		d.Details.Failed = append(d.Details.Failed, FailedDays)
	}
	if len(d.Details.Failed) > 0 {
		d.Eligible = false
		d.Status = StatusNotRedistributable
		d.Reason = ReasonBelowMinimum
	}
	return d
}
