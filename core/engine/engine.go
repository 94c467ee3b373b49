// Package engine runs the full redistribution pipeline for inventory items:
// freshness, eligibility, recipient matching and spoilage risk.
package engine

import (
	"time"

	"github.com/ishantk2507/ZeroWasteAI/core/eligibility"
	"github.com/ishantk2507/ZeroWasteAI/core/freshness"
	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/matching"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/monitor"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
	"github.com/ishantk2507/ZeroWasteAI/core/prediction"
)

// Item level statuses. Matching and eligibility statuses are passed through
// unchanged.
const (
	StatusNotFound       = "not_found"
	StatusNoActionNeeded = "no_action_needed"
	StatusSuccess        = "success"
)

// ItemResult is the outcome of evaluating one item.
type ItemResult struct {
	Status      string                `json:"status"`
	Reason      string                `json:"reason,omitempty"`
	Message     string                `json:"message,omitempty"`
	Item        model.InventoryItem   `json:"item_details"`
	Freshness   freshness.Result      `json:"monitoring"`
	Eligibility *eligibility.Decision `json:"eligibility,omitempty"`
	Match       *matching.Result      `json:"match,omitempty"`
	Risk        *prediction.Analysis  `json:"risk,omitempty"`
}

// Engine wires the core components together.
type Engine struct {
	policy    policy.Policy
	freshness *freshness.Evaluator
	gate      eligibility.Gate
	matcher   *matching.Matcher
	risk      prediction.Analyzer
}

// New builds an Engine from the policy. now may be nil and est may be nil.
func New(p policy.Policy, now func() time.Time, est prediction.RiskEstimator) *Engine {
	g := geo.NewModel(p)
	table := eligibility.NewTable(p)
	return &Engine{
		policy:    p,
		freshness: freshness.NewEvaluator(p, now),
		gate:      eligibility.NewGate(table),
		matcher:   matching.NewMatcher(p, g, table),
		risk:      prediction.NewAnalyzer(est),
	}
}

// Freshness evaluates an item.
func (e *Engine) Freshness(item model.InventoryItem) freshness.Result {
	return e.freshness.Evaluate(item.StockDate, item.ExpiryDate, item.Category)
}

// Evaluate runs the pipeline for item against recipients and returns the
// result with the statistics delta it produced.
func (e *Engine) Evaluate(item model.InventoryItem, recipients []model.Recipient) (ItemResult, monitor.Stats) {
	delta := monitor.New()
	f := e.Freshness(item)
	res := ItemResult{Item: item, Freshness: f}
	if f.Level == freshness.LevelGood {
		res.Status = StatusNoActionNeeded
		return res, delta
	}

	risk := e.risk.Analyze(item, f.DaysRemaining)
	res.Risk = &risk

	dec := e.gate.Check(item, f)
	res.Eligibility = &dec
	if !dec.Eligible {
		res.Status = dec.Status
		res.Reason = dec.Reason
		delta.Record(item.Category, f.Level, true, false)
		return res, delta
	}

	m := e.matcher.Match(item, f, recipients)
	res.Match = &m
	if m.Found() {
		res.Status = StatusSuccess
	} else {
		res.Status = m.Status
		res.Reason = m.Reason
	}
	delta.Record(item.Category, f.Level, true, m.Found())
	return res, delta
}

// RunForItem looks up id in the snapshot and evaluates it.
func (e *Engine) RunForItem(s model.Snapshot, id string) (ItemResult, monitor.Stats) {
	item, ok := s.FindItem(id)
	if !ok {
		return ItemResult{Status: StatusNotFound, Message: "Product not found"}, monitor.New()
	}
	return e.Evaluate(item, s.Recipients)
}

// AnalyzeRisk returns the spoilage risk of an item.
func (e *Engine) AnalyzeRisk(item model.InventoryItem) prediction.Analysis {
	return e.risk.Analyze(item, e.Freshness(item).DaysRemaining)
}
