// Package events defines the redistribution events emitted on the event bus.
//
// Available event types:
//   - ItemEvaluatedEvent: an item went through freshness, eligibility and matching
//   - RoutePlannedEvent: a delivery route was built for a vehicle
//   - ImpactEvent: the impact report of a planning run
package events
