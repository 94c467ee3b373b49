package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	var evs = []Event{ItemEvaluatedEvent{}, RoutePlannedEvent{}, ImpactEvent{}}
	seen := map[string]bool{}
	for _, e := range evs {
		seen[e.Kind()] = true
	}
	assert.Len(t, seen, 3)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
