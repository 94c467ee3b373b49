// Package mqtt defines the contract for publishing redistribution reports to
// dashboards over MQTT.
package mqtt

import "context"

// Report kinds, used as the second topic segment.
const (
	KindMatch  = "matches"
	KindRoute  = "routes"
	KindImpact = "impact"
)

// Publisher publishes JSON reports under <prefix>/<kind>/<key>.
type Publisher interface {
	// PublishReport wraps data in a report envelope and returns its ID.
	PublishReport(ctx context.Context, kind, key string, data any) (reportID string, err error)
}

// Request asks the service to evaluate an item on demand.
type Request struct {
	RequestID string `json:"request_id"`
	ItemID    string `json:"item_id"`
}

// RequestHandler receives decoded requests.
type RequestHandler func(Request)
