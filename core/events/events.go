package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ishantk2507/ZeroWasteAI/core/impact"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

// Event is implemented by every event published on the bus.
type Event interface {
	Kind() string
}

// NewID returns a random identifier for events and reports.
func NewID() string { return uuid.NewString() }

// ItemEvaluatedEvent is published after an item evaluation.
type ItemEvaluatedEvent struct {
	ID       string       `json:"id"`
	Time     time.Time    `json:"time"`
	ItemID   string       `json:"item_id"`
	Category string       `json:"category"`
	Level    string       `json:"level"`
	Status   string       `json:"status"`
	Reason   string       `json:"reason,omitempty"`
	Matches  int          `json:"matches"`
	Best     *model.Match `json:"best_match,omitempty"`
}

func (ItemEvaluatedEvent) Kind() string { return "item_evaluated" }

// RoutePlannedEvent is published for every non-empty route of a plan.
type RoutePlannedEvent struct {
	ID     string      `json:"id"`
	PlanID string      `json:"plan_id"`
	Time   time.Time   `json:"time"`
	Route  model.Route `json:"route"`
}

func (RoutePlannedEvent) Kind() string { return "route_planned" }

// ImpactEvent carries the aggregated report of a planning run.
type ImpactEvent struct {
	ID     string             `json:"id"`
	PlanID string             `json:"plan_id"`
	Time   time.Time          `json:"time"`
	Report impact.RouteReport `json:"report"`
}

func (ImpactEvent) Kind() string { return "impact" }
