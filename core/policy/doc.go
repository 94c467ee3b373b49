// Package policy holds the numeric constants shared by the freshness,
// eligibility, matching, routing and impact components. A Policy is built
// once at start-up and passed by value to each component.
package policy
