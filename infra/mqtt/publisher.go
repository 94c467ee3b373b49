package mqtt

import (
	"context"
	"fmt"
	"sync"

	coremqtt "github.com/ishantk2507/ZeroWasteAI/core/mqtt"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// Published is a report captured by MockPublisher.
type Published struct {
	ID   string
	Kind string
	Key  string
	Data any
}

// MockPublisher records reports in memory. Kinds listed in Fail return an
// error.
type MockPublisher struct {
	mu      sync.Mutex
	Reports []Published
	Fail    map[string]bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Fail: make(map[string]bool)}
}

// PublishReport records the report or fails for configured kinds.
func (m *MockPublisher) PublishReport(_ context.Context, kind, key string, data any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail[kind] {
		return "", fmt.Errorf("publish %s failed", kind)
	}
	id := fmt.Sprintf("%s-%d", kind, len(m.Reports)+1)
	m.Reports = append(m.Reports, Published{ID: id, Kind: kind, Key: key, Data: data})
	return id, nil
}

// ByKind returns the captured reports of kind.
func (m *MockPublisher) ByKind(kind string) []Published {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Published
	for _, r := range m.Reports {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
