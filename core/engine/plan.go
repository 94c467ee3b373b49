package engine

import (
	"math"
	"sort"

	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

// DefaultPlanThreshold is the minimum priority score for planned items.
const DefaultPlanThreshold = 0.7

var tierWeights = map[int]float64{1: 1.0, 2: 0.8, 3: 0.6, 4: 0.4}

const (
	unknownCategoryWeight = 0.5
	hotTemperatureC       = 25
	humidHumidity         = 80
	adverseCondition      = 0.5
)

// PlanEntry is an item scheduled for redistribution to its best recipient.
type PlanEntry struct {
	ItemID        string      `json:"item_id"`
	ProductName   string      `json:"product_name"`
	Category      string      `json:"category"`
	PriorityScore float64     `json:"priority_score"`
	BestMatch     model.Match `json:"best_match"`
}

// SkippedItem is a high-priority item that could not be planned.
type SkippedItem struct {
	ItemID        string  `json:"item_id"`
	PriorityScore float64 `json:"priority_score"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason"`
}

// PlanSummary totals a plan.
type PlanSummary struct {
	TotalItems      int     `json:"total_items_to_redistribute"`
	TotalCO2Savings float64 `json:"total_co2_savings"`
	AvgDistanceKm   float64 `json:"avg_distance"`
}

// Plan is a prioritised redistribution plan.
type Plan struct {
	Entries []PlanEntry   `json:"entries"`
	Skipped []SkippedItem `json:"skipped"`
	Summary PlanSummary   `json:"summary"`
}

// Priority scores how urgently item should leave stock, in [0,1]. It mixes
// time to expiry, category perishability and storage conditions.
func (e *Engine) Priority(item model.InventoryItem) float64 {
	days := e.Freshness(item).DaysRemaining
	expiry := math.Max(0, 1-float64(days)/30)
	category := unknownCategoryWeight
	if c, ok := e.policy.Categories[item.Category]; ok {
		if w, ok := tierWeights[c.Tier]; ok {
			category = w
		}
	}
	condition := 0.0
	if item.Temperature > hotTemperatureC || item.Humidity > humidHumidity {
		condition = adverseCondition
	}
	return geo.Round(math.Min(1, 0.5*expiry+0.3*category+0.2*condition), 4)
}

// Plan assigns every item with priority at least minPriority to its best
// recipient, highest priority first. Items failing eligibility or without a
// reachable recipient are reported as skipped.
func (e *Engine) Plan(s model.Snapshot, minPriority float64) Plan {
	type scored struct {
		item     model.InventoryItem
		priority float64
	}
	var queue []scored
	for _, it := range s.Items {
		if p := e.Priority(it); p >= minPriority {
			queue = append(queue, scored{item: it, priority: p})
		}
	}
	sort.SliceStable(queue, func(i, j int) bool { return queue[i].priority > queue[j].priority })

	plan := Plan{Entries: []PlanEntry{}, Skipped: []SkippedItem{}}
	var dist float64
	for _, q := range queue {
		f := e.Freshness(q.item)
		if dec := e.gate.Check(q.item, f); !dec.Eligible {
			plan.Skipped = append(plan.Skipped, SkippedItem{ItemID: q.item.ID, PriorityScore: q.priority, Status: dec.Status, Reason: dec.Reason})
			continue
		}
		m := e.matcher.Match(q.item, f, s.Recipients)
		best, ok := m.Best()
		if !ok {
			plan.Skipped = append(plan.Skipped, SkippedItem{ItemID: q.item.ID, PriorityScore: q.priority, Status: m.Status, Reason: m.Reason})
			continue
		}
		plan.Entries = append(plan.Entries, PlanEntry{
			ItemID:        q.item.ID,
			ProductName:   q.item.Name,
			Category:      q.item.Category,
			PriorityScore: q.priority,
			BestMatch:     best,
		})
		plan.Summary.TotalCO2Savings += best.CO2SavingsKg
		dist += best.DistanceKm
	}
	plan.Summary.TotalItems = len(plan.Entries)
	plan.Summary.TotalCO2Savings = geo.Round(plan.Summary.TotalCO2Savings, 2)
	if len(plan.Entries) > 0 {
		plan.Summary.AvgDistanceKm = geo.Round(dist/float64(len(plan.Entries)), 2)
	}
	return plan
}
