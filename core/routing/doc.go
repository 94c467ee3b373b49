// Package routing builds delivery routes with simple greedy policies.
//
// Optimizer constructs a single-vehicle tour from a depot, always moving to
// the feasible point with the lowest priority-adjusted distance. Assigner
// distributes items over several vehicles by repeatedly committing the
// globally cheapest (item, recipient, vehicle) triple. Neither policy
// backtracks, so neither guarantees optimal routes; their scan order and
// tie-breaks are part of the observable behaviour.
package routing
